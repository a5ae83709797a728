package kafka

import (
	"time"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeChangeEvent сериализует событие в protobuf google.protobuf.Struct.
// Поля записи кладутся во вложенную структуру "fields".
func EncodeChangeEvent(eventID string, event *usecase.ChangeEvent) ([]byte, error) {
	fields := event.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	payload, err := structpb.NewStruct(map[string]any{
		"event_id":     eventID,
		"event_type":   string(event.Type),
		"aggregate_id": event.AggregateID,
		"occurred_at":  event.OccurredAt.UTC().Format(time.RFC3339Nano),
		"fields":       fields,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return proto.Marshal(payload)
}

// DecodeChangeEvent разбирает payload, записанный EncodeChangeEvent.
func DecodeChangeEvent(payload []byte) (*structpb.Struct, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &msg, nil
}
