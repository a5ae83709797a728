package converter

import "github.com/DRSN-tech/stock-backend/internal/usecase"

// IdempotencyConverter преобразует сохранённый ответ между usecase и моделью Redis.
type IdempotencyConverter struct{}

func (IdempotencyConverter) ToRedisModel(resp *usecase.StoredResponse) *IdempotencyRedisModel {
	return &IdempotencyRedisModel{
		State:       StateCompleted,
		Status:      resp.Status,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}
}

func (IdempotencyConverter) ToUseCase(model *IdempotencyRedisModel) *usecase.StoredResponse {
	return &usecase.StoredResponse{
		Status:      model.Status,
		ContentType: model.ContentType,
		Body:        model.Body,
	}
}
