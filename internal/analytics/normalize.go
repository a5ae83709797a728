// Package analytics превращает сырые записи склада в строки для отображения
// и считает по ним сводные показатели.
package analytics

import (
	"github.com/shopspring/decimal"
)

// DefaultNoneLabel — метка для продукта без категории.
const DefaultNoneLabel = "none"

// RawCategory — вложенная запись категории, как её возвращает JOIN.
type RawCategory struct {
	Name *string
}

// RawProduct — запись продукта вместе с категорией. Любое поле, кроме ID и Name, может отсутствовать.
type RawProduct struct {
	ID        int64
	Name      string
	Quantity  *int64
	UnitPrice decimal.NullDecimal
	Category  *RawCategory
}

// Row — нормализованная строка, готовая к отображению.
type Row struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  string          `json:"category"`
	Value     decimal.Decimal `json:"value"`
}

// Normalizer подставляет значения по умолчанию вместо отсутствующих полей.
type Normalizer struct {
	noneLabel string
}

func NewNormalizer(noneLabel string) *Normalizer {
	if noneLabel == "" {
		noneLabel = DefaultNoneLabel
	}
	return &Normalizer{noneLabel: noneLabel}
}

// NoneLabel возвращает метку, которой помечаются продукты без категории.
func (n *Normalizer) NoneLabel() string {
	return n.noneLabel
}

// Normalize никогда не отказывает: неполная запись превращается в полную строку.
func (n *Normalizer) Normalize(raw RawProduct) Row {
	var quantity int64
	if raw.Quantity != nil {
		quantity = *raw.Quantity
	}

	price := decimal.Zero
	if raw.UnitPrice.Valid {
		price = raw.UnitPrice.Decimal
	}

	category := n.noneLabel
	if raw.Category != nil && raw.Category.Name != nil {
		category = *raw.Category.Name
	}

	return Row{
		ID:        raw.ID,
		Name:      raw.Name,
		Quantity:  quantity,
		UnitPrice: price,
		Category:  category,
		Value:     price.Mul(decimal.NewFromInt(quantity)),
	}
}

// NormalizeAll сохраняет порядок выборки.
func (n *Normalizer) NormalizeAll(raw []RawProduct) []Row {
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, n.Normalize(r))
	}
	return rows
}
