package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает продукт на складе.
// Количество, цена и категория в хранилище могут быть NULL.
type Product struct {
	ID         int64
	Name       string
	Quantity   *int64
	UnitPrice  decimal.NullDecimal
	CategoryID *int64
	CreatedAt  time.Time
}

func NewProduct(name string, quantity *int64, unitPrice decimal.NullDecimal, categoryID *int64) *Product {
	return &Product{
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		CategoryID: categoryID,
	}
}

// ProductOption — пара id/название для выбора продукта в форме удаления.
type ProductOption struct {
	ID   int64
	Name string
}
