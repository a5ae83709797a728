package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	ListJoined(ctx context.Context) ([]analytics.RawProduct, error)
	ListOptions(ctx context.Context) ([]domain.ProductOption, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type ReportRepository interface {
	Upload(ctx context.Context, report *domain.Report) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// IdempotencyRepository хранит ответы на запросы записи по ключу идемпотентности.
type IdempotencyRepository interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, resp *StoredResponse) error
	Release(ctx context.Context, key string) error
}
