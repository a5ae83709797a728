package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrInvalidJSON          = fmt.Errorf("invalid json body")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrCategoryRequired     = fmt.Errorf("category is required")
	ErrNegativeQuantity     = fmt.Errorf("quantity must not be negative")
	ErrNegativePrice        = fmt.Errorf("price must not be negative")
	ErrDeleteNotConfirmed   = fmt.Errorf("deletion must be confirmed")

	// 404 Not Found
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrProductNotFound  = fmt.Errorf("product not found")

	// 409 Conflict
	ErrCategoryInUse        = fmt.Errorf("category is referenced by products")
	ErrSubmissionInProgress = fmt.Errorf("submission with this idempotency key is in progress")

	// 503 Service Unavailable
	ErrReportsDisabled = fmt.Errorf("report storage is not configured")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// IsValidation сообщает, является ли ошибка ошибкой валидации пользовательского ввода.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrStatusBadRequest,
		ErrInvalidJSON,
		ErrInvalidID,
		ErrInvalidPrice,
		ErrPricePrecision,
		ErrCategoryNameRequired,
		ErrProductNameRequired,
		ErrCategoryRequired,
		ErrNegativeQuantity,
		ErrNegativePrice,
		ErrDeleteNotConfirmed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsClientError сообщает, вызвана ли ошибка запросом или состоянием данных, а не сбоем сервиса.
// Такие ошибки логируются как предупреждения.
func IsClientError(err error) bool {
	if IsValidation(err) {
		return true
	}
	for _, target := range []error{
		ErrCategoryNotFound,
		ErrProductNotFound,
		ErrCategoryInUse,
		ErrSubmissionInProgress,
		ErrReportsDisabled,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
