package usecase

import (
	"context"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
)

// TxManager выполняет fn в одной транзакции хранилища.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder сохраняет событие об изменении в той же транзакции, что и запись.
type EventRecorder interface {
	Record(ctx context.Context, event *ChangeEvent) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ReportRenderer сериализует строки склада и сводку в файл отчёта.
type ReportRenderer interface {
	Render(rows []analytics.Row, summary analytics.Summary) ([]byte, error)
	ContentType() string
	Extension() string
}

// WriteObserver считает операции записи для метрик.
type WriteObserver interface {
	ObserveWrite(operation string, err error)
}

// NopEventRecorder используется, когда публикация событий отключена.
type NopEventRecorder struct{}

func (NopEventRecorder) Record(context.Context, *ChangeEvent) error { return nil }
