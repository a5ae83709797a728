package converter

import (
	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
)

// CategoryConverter преобразует Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func (CategoryConverter) ToModel(entity *domain.Category) *CategoryModel {
	if entity == nil {
		return nil
	}
	return &CategoryModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CreatedAt:   entity.CreatedAt,
	}
}

func (CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	if model == nil {
		return nil
	}
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}

// ProductConverter преобразует Product между domain и моделью PostgreSQL.
// NULL-поля переносятся как есть, значения по умолчанию подставляет только analytics.Normalizer.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}
	return &ProductModel{
		ID:         entity.ID,
		Name:       entity.Name,
		Quantity:   entity.Quantity,
		UnitPrice:  entity.UnitPrice,
		CategoryID: entity.CategoryID,
		CreatedAt:  entity.CreatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}
	return &domain.Product{
		ID:         model.ID,
		Name:       model.Name,
		Quantity:   model.Quantity,
		UnitPrice:  model.UnitPrice,
		CategoryID: model.CategoryID,
		CreatedAt:  model.CreatedAt,
	}
}

// ToRaw переводит строку JOIN в сырую запись для нормализации.
// Категория считается присутствующей, только если JOIN нашёл строку categories.
func (ProductConverter) ToRaw(model *JoinedProductModel) analytics.RawProduct {
	raw := analytics.RawProduct{
		ID:        model.ID,
		Name:      model.Name,
		Quantity:  model.Quantity,
		UnitPrice: model.UnitPrice,
	}
	if model.CategoryName != nil {
		raw.Category = &analytics.RawCategory{Name: model.CategoryName}
	}
	return raw
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.ChangeEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}
