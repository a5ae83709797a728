package usecase

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// VIEWS

// NoticeLevel — уровень сообщения, показываемого пользователю рядом с видом.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice — сообщение для пользователя (успех записи, пустые данные, ошибка загрузки).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// CategoriesView — состояние экрана категорий.
type CategoriesView struct {
	Categories []CategoryInfo `json:"categories"`
	Notices    []Notice       `json:"notices"`
}

type CategoryInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProductsView — таблица склада и общее количество штук.
type ProductsView struct {
	Rows          []analytics.Row `json:"rows"`
	TotalQuantity int64           `json:"total_quantity"`
	Notices       []Notice        `json:"notices"`
}

// ProductFormView — варианты категорий для формы добавления продукта.
type ProductFormView struct {
	Categories []CategoryOption `json:"categories"`
	Notices    []Notice         `json:"notices"`
}

type CategoryOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DeleteOptionsView — варианты для формы удаления продукта.
type DeleteOptionsView struct {
	Options []DeleteOption `json:"options"`
	Notices []Notice       `json:"notices"`
}

type DeleteOption struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// DashboardView — сводные показатели склада.
type DashboardView struct {
	Summary      analytics.Summary `json:"summary"`
	ProductCount int               `json:"product_count"`
	NoneLabel    string            `json:"none_label"`
	Notices      []Notice          `json:"notices"`
}

// REQUESTS

type CreateCategoryReq struct {
	Name        string
	Description *string
}

type CreateProductReq struct {
	Name       string
	Quantity   *int64
	UnitPrice  decimal.NullDecimal
	CategoryID *int64
}

type DeleteProductReq struct {
	ID        int64
	Confirmed bool
}

// ReportRes — результат выгрузки отчёта в S3.
type ReportRes struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoredResponse — ответ на запрос записи, сохранённый для повтора по ключу идемпотентности.
type StoredResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// EVENTS

type ChangeEventType string

const (
	CategoryCreated ChangeEventType = "category.created"
	CategoryDeleted ChangeEventType = "category.deleted"
	ProductCreated  ChangeEventType = "product.created"
	ProductDeleted  ChangeEventType = "product.deleted"
)

// ChangeEvent — событие об изменении записи в хранилище.
type ChangeEvent struct {
	Type        ChangeEventType
	AggregateID int64
	Fields      map[string]any
	OccurredAt  time.Time
}

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEvent — запись таблицы outbox_events, ожидающая публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   ChangeEventType
	AggregateID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// WriteRawMessageReq — сериализованное событие для публикации. Key — id записи.
type WriteRawMessageReq struct {
	Key       int64
	EventID   string
	EventType ChangeEventType
	Payload   []byte
}

// MAPPERS

func NewChangeEvent(eventType ChangeEventType, aggregateID int64, fields map[string]any) *ChangeEvent {
	return &ChangeEvent{
		Type:        eventType,
		AggregateID: aggregateID,
		Fields:      fields,
		OccurredAt:  time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(event *OutboxEvent) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       event.AggregateID,
		EventID:   event.EventID,
		EventType: event.EventType,
		Payload:   event.Payload,
	}
}

func NewCategoryInfo(c domain.Category) CategoryInfo {
	return CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func NewDeleteOption(o domain.ProductOption) DeleteOption {
	return DeleteOption{
		ID:    o.ID,
		Label: fmt.Sprintf("%s (ID: %d)", o.Name, o.ID),
	}
}

func successNotice(format string, args ...any) Notice {
	return Notice{Level: NoticeSuccess, Message: fmt.Sprintf(format, args...)}
}

func infoNotice(message string) Notice {
	return Notice{Level: NoticeInfo, Message: message}
}

func warningNotice(message string) Notice {
	return Notice{Level: NoticeWarning, Message: message}
}

func fetchErrorNotice(what string) Notice {
	return Notice{Level: NoticeError, Message: fmt.Sprintf("failed to load %s", what)}
}
