package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
)

const (
	opCreateProduct = "create_product"
	opDeleteProduct = "delete_product"
)

// ProductUseCase реализует экран склада: таблица, добавление и удаление продуктов.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	txManager    TxManager
	normalizer   *analytics.Normalizer
	events       EventRecorder
	observer     WriteObserver
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	txManager TxManager,
	normalizer *analytics.Normalizer,
	events EventRecorder,
	observer WriteObserver,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		normalizer:   normalizer,
		events:       events,
		observer:     observer,
		logger:       logger,
	}
}

// ProductsView читает продукты вместе с категориями и нормализует их.
func (p *ProductUseCase) ProductsView(ctx context.Context) *ProductsView {
	const op = "ProductUseCase.ProductsView"

	view := &ProductsView{Rows: []analytics.Row{}, Notices: []Notice{}}

	raw, err := p.productRepo.ListJoined(ctx)
	if err != nil {
		p.logger.Warnf("%v", e.Wrap(op, err))
		view.Notices = append(view.Notices, fetchErrorNotice("products"))
		return view
	}

	view.Rows = p.normalizer.NormalizeAll(raw)
	view.TotalQuantity = analytics.TotalQuantity(view.Rows)
	if len(view.Rows) == 0 {
		view.Notices = append(view.Notices, infoNotice("the warehouse is empty"))
	}

	return view
}

// ProductForm возвращает категории для выбора в форме добавления продукта.
func (p *ProductUseCase) ProductForm(ctx context.Context) *ProductFormView {
	const op = "ProductUseCase.ProductForm"

	view := &ProductFormView{Categories: []CategoryOption{}, Notices: []Notice{}}

	categories, err := p.categoryRepo.List(ctx)
	if err != nil {
		p.logger.Warnf("%v", e.Wrap(op, err))
		view.Notices = append(view.Notices, fetchErrorNotice("categories"))
		return view
	}

	for _, c := range categories {
		view.Categories = append(view.Categories, CategoryOption{ID: c.ID, Name: c.Name})
	}
	if len(view.Categories) == 0 {
		view.Notices = append(view.Notices, warningNotice("add at least one category before adding products"))
	}

	return view
}

// DeleteOptions возвращает продукты, доступные для удаления, с подписью "название (ID: n)".
func (p *ProductUseCase) DeleteOptions(ctx context.Context) *DeleteOptionsView {
	const op = "ProductUseCase.DeleteOptions"

	view := &DeleteOptionsView{Options: []DeleteOption{}, Notices: []Notice{}}

	options, err := p.productRepo.ListOptions(ctx)
	if err != nil {
		p.logger.Warnf("%v", e.Wrap(op, err))
		view.Notices = append(view.Notices, fetchErrorNotice("products"))
		return view
	}

	for _, o := range options {
		view.Options = append(view.Options, NewDeleteOption(o))
	}
	if len(view.Options) == 0 {
		view.Notices = append(view.Notices, infoNotice("no products to delete"))
	}

	return view
}

// CreateProduct проверяет ввод и сохраняет продукт. Значения полей передаются в хранилище без изменений.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductsView, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.Product
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = p.productRepo.Create(ctx, domain.NewProduct(req.Name, req.Quantity, req.UnitPrice, req.CategoryID))
		if err != nil {
			return err
		}

		return p.events.Record(ctx, NewChangeEvent(ProductCreated, created.ID, productFields(created)))
	})
	p.observer.ObserveWrite(opCreateProduct, err)
	if err != nil {
		if errors.Is(err, e.ErrCategoryNotFound) {
			p.logger.Warnf("%s: product %q: %v", op, req.Name, err)
		} else {
			p.logger.Errorf(err, "%s: failed to create product %q", op, req.Name)
		}
		return nil, e.Wrap(op, err)
	}

	view := p.ProductsView(ctx)
	view.Notices = append([]Notice{successNotice("product %q added", created.Name)}, view.Notices...)

	return view, nil
}

// DeleteProduct удаляет продукт только после явного подтверждения.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, req *DeleteProductReq) (*ProductsView, error) {
	const op = "ProductUseCase.DeleteProduct"

	if req.ID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if !req.Confirmed {
		return nil, e.Wrap(op, e.ErrDeleteNotConfirmed)
	}

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		if err := p.productRepo.Delete(ctx, req.ID); err != nil {
			return err
		}

		return p.events.Record(ctx, NewChangeEvent(ProductDeleted, req.ID, nil))
	})
	p.observer.ObserveWrite(opDeleteProduct, err)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			p.logger.Warnf("%s: product %d: %v", op, req.ID, err)
		} else {
			p.logger.Errorf(err, "%s: failed to delete product %d", op, req.ID)
		}
		return nil, e.Wrap(op, err)
	}

	view := p.ProductsView(ctx)
	view.Notices = append([]Notice{successNotice("product %d deleted", req.ID)}, view.Notices...)

	return view, nil
}

// validateProduct проверяет корректность входных данных запроса на добавление продукта.
func validateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.CategoryID == nil {
		return e.ErrCategoryRequired
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		return e.ErrNegativeQuantity
	}

	if req.UnitPrice.Valid && req.UnitPrice.Decimal.IsNegative() {
		return e.ErrNegativePrice
	}

	return nil
}

func productFields(p *domain.Product) map[string]any {
	fields := map[string]any{"name": p.Name}
	if p.Quantity != nil {
		fields["quantity"] = *p.Quantity
	}
	if p.UnitPrice.Valid {
		fields["unit_price"] = p.UnitPrice.Decimal.String()
	}
	if p.CategoryID != nil {
		fields["category_id"] = *p.CategoryID
	}
	return fields
}
