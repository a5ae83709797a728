package http

import (
	"net/http"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Возвращает все категории в порядке создания. Ошибка чтения отдаётся как notice, а не как статус.
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	usecase.CategoriesView
//	@Router			/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, c.categoryUsecase.CategoriesView(r.Context()))
}

// createCategory
//
//	@Summary		Создание категории
//	@Description	Создает категорию. Описание сохраняется как передано, пустая строка тоже.
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string					false	"Ключ идемпотентности"
//	@Param			request			body		createCategoryRequest	true	"Категория"
//	@Success		201				{object}	usecase.CategoriesView
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409				{object}	ErrorResponse	"Запрос с этим ключом ещё выполняется"
//	@Failure		500				{object}	ErrorResponse
//	@Router			/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	view, err := c.categoryUsecase.CreateCategory(r.Context(), &usecase.CreateCategoryReq{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, view)
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Удаляет категорию, если на неё не ссылается ни один продукт.
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	usecase.CategoriesView
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse	"Категория не найдена"
//	@Failure		409	{object}	ErrorResponse	"Категория используется продуктами"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	view, err := c.categoryUsecase.DeleteCategory(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}
