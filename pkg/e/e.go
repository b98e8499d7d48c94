package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrOrderNotFound   = fmt.Errorf("order not found")
	ErrProductNotFound = fmt.Errorf("product not found")

	// 422 Unprocessable Entity — ошибки валидации данных заказа
	ErrEmailRequired       = fmt.Errorf("customer email is required")
	ErrEmailInvalid        = fmt.Errorf("customer email is not a valid email address")
	ErrEmptyOrder          = fmt.Errorf("order must contain at least one item")
	ErrQuantityTooSmall    = fmt.Errorf("quantity must be at least 1")
	ErrPriceMustBePositive = fmt.Errorf("price must be positive")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrUnknownOrderStatus  = fmt.Errorf("unknown order status")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrPricePrecision   = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields    = fmt.Errorf("missing required fields")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// ValidationError привязывает ошибку валидации к конкретному полю запроса.
// Поле используется при формировании ответа 422.
type ValidationError struct {
	Field string
	Err   error
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Err.Error())
}

func (v *ValidationError) Unwrap() error {
	return v.Err
}

// Validation оборачивает ошибку валидации с указанием поля.
func Validation(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// AsValidation извлекает ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
