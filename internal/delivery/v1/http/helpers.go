package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const maxJSONBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// badRequestErrors — ошибки ввода, текст которых можно показать пользователю как есть.
var badRequestErrors = []error{
	e.ErrInvalidJSON,
	e.ErrInvalidID,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrCategoryNameRequired,
	e.ErrProductNameRequired,
	e.ErrCategoryRequired,
	e.ErrNegativeQuantity,
	e.ErrNegativePrice,
	e.ErrDeleteNotConfirmed,
	e.ErrStatusBadRequest,
}

func ToHTTPResponse(err error) (int, string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryInUse):
		return http.StatusConflict, e.ErrCategoryInUse.Error()
	case errors.Is(err, e.ErrSubmissionInProgress):
		return http.StatusConflict, e.ErrSubmissionInProgress.Error()
	case errors.Is(err, e.ErrReportsDisabled):
		return http.StatusServiceUnavailable, e.ErrReportsDisabled.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в dst. Неизвестные поля и мусор после объекта — ошибка.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrInvalidJSON, err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}

	return nil
}

// parseID читает положительный id из параметра маршрута.
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(param, e.ErrInvalidID)
	}
	return id, nil
}

// parseTopN читает параметр top. Отсутствие параметра — 0 (значение по умолчанию usecase).
func parseTopN(r *http.Request) (int, error) {
	const maxTopN = 100

	raw := strings.TrimSpace(r.URL.Query().Get("top"))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxTopN {
		return 0, e.Wrap("top", e.ErrStatusBadRequest)
	}
	return n, nil
}

// checkPrice проверяет цену за единицу: не больше двух знаков после запятой и разумный верхний предел.
// Отсутствующая цена допустима и сохраняется как NULL.
func checkPrice(price decimal.NullDecimal) error {
	maxPrice := decimal.NewFromInt(1_000_000_000)

	if !price.Valid {
		return nil
	}
	if price.Decimal.Exponent() < -2 && !price.Decimal.Equal(price.Decimal.Round(2)) {
		return e.ErrPricePrecision
	}
	if price.Decimal.GreaterThan(maxPrice) {
		return e.ErrInvalidPrice
	}
	return nil
}
