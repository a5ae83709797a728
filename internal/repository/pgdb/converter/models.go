package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
// quantity, unit_price и category_id допускают NULL.
type ProductModel struct {
	ID         int64               `db:"id"`
	Name       string              `db:"name"`
	Quantity   *int64              `db:"quantity"`
	UnitPrice  decimal.NullDecimal `db:"unit_price"`
	CategoryID *int64              `db:"category_id"`
	CreatedAt  time.Time           `db:"created_at"`
}

// JoinedProductModel — строка LEFT JOIN products и categories.
type JoinedProductModel struct {
	ID           int64               `db:"id"`
	Name         string              `db:"name"`
	Quantity     *int64              `db:"quantity"`
	UnitPrice    decimal.NullDecimal `db:"unit_price"`
	CategoryID   *int64              `db:"category_id"`
	CategoryName *string             `db:"category_name"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID int64      `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
