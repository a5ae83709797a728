package converter

// Состояния записи идемпотентности.
const (
	StatePending   = "pending"
	StateCompleted = "completed"
)

// IdempotencyRedisModel хранится в Redis под ключом idempotency:<key>.
type IdempotencyRedisModel struct {
	State       string `json:"state"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}
