package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
)

const (
	opCreateCategory = "create_category"
	opDeleteCategory = "delete_category"
)

// CategoryUseCase реализует экран категорий: список, добавление, удаление.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	txManager    TxManager
	events       EventRecorder
	observer     WriteObserver
	logger       logger.Logger
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	txManager TxManager,
	events EventRecorder,
	observer WriteObserver,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		txManager:    txManager,
		events:       events,
		observer:     observer,
		logger:       logger,
	}
}

// CategoriesView заново читает категории из хранилища.
// Ошибка чтения не прерывает работу: вид остаётся пустым и получает сообщение об ошибке.
func (c *CategoryUseCase) CategoriesView(ctx context.Context) *CategoriesView {
	const op = "CategoryUseCase.CategoriesView"

	view := &CategoriesView{Categories: []CategoryInfo{}, Notices: []Notice{}}

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		c.logger.Warnf("%v", e.Wrap(op, err))
		view.Notices = append(view.Notices, fetchErrorNotice("categories"))
		return view
	}

	for _, category := range categories {
		view.Categories = append(view.Categories, NewCategoryInfo(category))
	}
	if len(view.Categories) == 0 {
		view.Notices = append(view.Notices, infoNotice("no categories defined"))
	}

	return view
}

// CreateCategory проверяет название, сохраняет категорию и возвращает обновлённый список.
func (c *CategoryUseCase) CreateCategory(ctx context.Context, req *CreateCategoryReq) (*CategoriesView, error) {
	const op = "CategoryUseCase.CreateCategory"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	var created *domain.Category
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.categoryRepo.Create(ctx, domain.NewCategory(req.Name, req.Description))
		if err != nil {
			return err
		}

		return c.events.Record(ctx, NewChangeEvent(CategoryCreated, created.ID, map[string]any{
			"name":        created.Name,
			"description": derefOrEmpty(created.Description),
		}))
	})
	c.observer.ObserveWrite(opCreateCategory, err)
	if err != nil {
		c.logger.Errorf(err, "%s: failed to create category %q", op, req.Name)
		return nil, e.Wrap(op, err)
	}

	view := c.CategoriesView(ctx)
	view.Notices = append([]Notice{successNotice("category %q added", created.Name)}, view.Notices...)

	return view, nil
}

// DeleteCategory удаляет категорию. Если на неё ссылаются продукты,
// хранилище отклоняет удаление и возвращается e.ErrCategoryInUse.
func (c *CategoryUseCase) DeleteCategory(ctx context.Context, id int64) (*CategoriesView, error) {
	const op = "CategoryUseCase.DeleteCategory"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		if err := c.categoryRepo.Delete(ctx, id); err != nil {
			return err
		}

		return c.events.Record(ctx, NewChangeEvent(CategoryDeleted, id, nil))
	})
	c.observer.ObserveWrite(opDeleteCategory, err)
	if err != nil {
		if errors.Is(err, e.ErrCategoryInUse) || errors.Is(err, e.ErrCategoryNotFound) {
			c.logger.Warnf("%s: category %d: %v", op, id, err)
		} else {
			c.logger.Errorf(err, "%s: failed to delete category %d", op, id)
		}
		return nil, e.Wrap(op, err)
	}

	view := c.CategoriesView(ctx)
	view.Notices = append([]Notice{successNotice("category %d deleted", id)}, view.Notices...)

	return view, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
