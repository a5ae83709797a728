package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/clients"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// IdempotencyRepo запоминает ответы на запись по заголовку Idempotency-Key,
// чтобы повторная отправка формы не создавала дубликат.
type IdempotencyRepo struct {
	client *clients.RedisClient
	conv   converter.IdempotencyConverter
	ttl    time.Duration
}

func NewIdempotencyRepo(client *clients.RedisClient, conv converter.IdempotencyConverter, ttl time.Duration) *IdempotencyRepo {
	return &IdempotencyRepo{
		client: client,
		conv:   conv,
		ttl:    ttl,
	}
}

// Reserve атомарно занимает ключ. false означает, что запрос с этим ключом уже был.
func (i *IdempotencyRepo) Reserve(ctx context.Context, key string) (bool, error) {
	data, err := json.Marshal(converter.IdempotencyRedisModel{State: converter.StatePending})
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	ok, err := i.client.Client.SetNX(ctx, i.key(key), data, i.ttl).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return ok, nil
}

// Get возвращает сохранённый ответ. Если первый запрос ещё выполняется,
// возвращается e.ErrSubmissionInProgress. Отсутствие ключа — (nil, nil).
func (i *IdempotencyRepo) Get(ctx context.Context, key string) (*usecase.StoredResponse, error) {
	data, err := i.client.Client.Get(ctx, i.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.IdempotencyRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if model.State != converter.StateCompleted {
		return nil, e.ErrSubmissionInProgress
	}

	return i.conv.ToUseCase(&model), nil
}

// Save сохраняет итоговый ответ, TTL отсчитывается заново.
func (i *IdempotencyRepo) Save(ctx context.Context, key string, resp *usecase.StoredResponse) error {
	data, err := json.Marshal(i.conv.ToRedisModel(resp))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := i.client.Client.Set(ctx, i.key(key), data, i.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Release освобождает ключ, чтобы запрос можно было повторить (например, после ошибки сервера).
func (i *IdempotencyRepo) Release(ctx context.Context, key string) error {
	if err := i.client.Client.Del(ctx, i.key(key)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// key возвращает Redis-ключ для ключа идемпотентности
func (i *IdempotencyRepo) key(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}
