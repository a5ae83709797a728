package domain

import "time"

// Category описывает категорию продукта
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

func NewCategory(name string, description *string) *Category {
	return &Category{
		Name:        name,
		Description: description,
	}
}
