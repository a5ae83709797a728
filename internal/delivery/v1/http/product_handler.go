package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProductRequest — цена принимается и строкой ("10.50"), и числом.
type createProductRequest struct {
	Name       string              `json:"name"`
	Quantity   *int64              `json:"quantity"`
	UnitPrice  decimal.NullDecimal `json:"unit_price" swaggertype:"string"`
	CategoryID *int64              `json:"category_id"`
}

// listProducts
//
//	@Summary		Таблица склада
//	@Description	Нормализованные строки продуктов и общее количество штук.
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	usecase.ProductsView
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, p.productUsecase.ProductsView(r.Context()))
}

// productForm
//
//	@Summary		Данные формы добавления продукта
//	@Description	Категории для выбора. Если категорий нет, в notices будет предупреждение.
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	usecase.ProductFormView
//	@Router			/products/form [get]
func (p *ProductHandler) productForm(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, p.productUsecase.ProductForm(r.Context()))
}

// deleteOptions
//
//	@Summary		Варианты удаления продукта
//	@Description	Подписи вида "name (ID: n)" для формы удаления.
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	usecase.DeleteOptionsView
//	@Router			/products/delete-options [get]
func (p *ProductHandler) deleteOptions(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, p.productUsecase.DeleteOptions(r.Context()))
}

// createProduct
//
//	@Summary		Добавление продукта
//	@Description	Количество и цена необязательны и не могут быть отрицательными. Цена — не больше двух знаков после запятой.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string					false	"Ключ идемпотентности"
//	@Param			request			body		createProductRequest	true	"Продукт"
//	@Success		201				{object}	usecase.ProductsView
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404				{object}	ErrorResponse	"Категория не найдена"
//	@Failure		409				{object}	ErrorResponse	"Запрос с этим ключом ещё выполняется"
//	@Failure		500				{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	if err := checkPrice(req.UnitPrice); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), req.UnitPrice.Decimal.String())
		WriteError(w, err)
		return
	}

	view, err := p.productUsecase.CreateProduct(r.Context(), &usecase.CreateProductReq{
		Name:       req.Name,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, view)
}

// deleteProduct
//
//	@Summary		Удаление продукта
//	@Description	Удаление выполняется только с confirm=true.
//	@Tags			products
//	@Produce		json
//	@Param			id		path		int		true	"ID продукта"
//	@Param			confirm	query		bool	true	"Подтверждение удаления"
//	@Success		200		{object}	usecase.ProductsView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Продукт не найден"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	var confirmed bool
	if raw := r.URL.Query().Get("confirm"); raw != "" {
		confirmed, err = strconv.ParseBool(raw)
		if err != nil {
			p.logger.Warnf("%d %s: confirm=%s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), raw)
			WriteError(w, e.Wrap("confirm", e.ErrStatusBadRequest))
			return
		}
	}

	view, err := p.productUsecase.DeleteProduct(r.Context(), &usecase.DeleteProductReq{ID: id, Confirmed: confirmed})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}
