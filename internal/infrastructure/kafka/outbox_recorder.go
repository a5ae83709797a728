package kafka

import (
	"context"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

// OutboxRecorder пишет события изменений в outbox. OutboxWorker затем публикует их в Kafka.
type OutboxRecorder struct {
	repo usecase.OutboxRepository
}

func NewOutboxRecorder(repo usecase.OutboxRepository) *OutboxRecorder {
	return &OutboxRecorder{repo: repo}
}

func (r *OutboxRecorder) Record(ctx context.Context, event *usecase.ChangeEvent) error {
	eventID := uuid.NewString()

	payload, err := EncodeChangeEvent(eventID, event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := r.repo.Create(ctx, &usecase.OutboxEvent{
		EventID:     eventID,
		EventType:   event.Type,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      usecase.Pending,
		CreatedAt:   event.OccurredAt,
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
