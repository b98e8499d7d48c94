package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, field, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Field:   field,
		Message: message,
	}
}

// ToHTTPResponse отображает доменные ошибки на HTTP-статусы.
// Ошибки валидации заказа возвращаются как 422 с указанием поля.
func ToHTTPResponse(err error) (int, string, string) {
	if vErr, ok := e.AsValidation(err); ok {
		return http.StatusUnprocessableEntity, vErr.Field, vErr.Err.Error()
	}

	switch {
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, "", e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, "", e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, "", e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, "", e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, "", e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, "", e.ErrPricePrecision.Error()
	default:
		return http.StatusInternalServerError, "", e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, field, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, field, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents конвертирует строку вида "599.99" или "600" в int64 копеек.
// Отклоняет пустые, отрицательные значения, более 2 знаков после запятой
// и суммы свыше 1 миллиарда.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// centsToAmount переводит копейки в денежную сумму для JSON-ответа.
func centsToAmount(cents int64) float64 {
	amount, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return amount
}

// Числовые коды статуса заказа на HTTP-границе.
const (
	wireStatusPending   = 0
	wireStatusCompleted = 1
	wireStatusFailed    = 2
)

func statusToWire(status domain.OrderStatus) int {
	switch status {
	case domain.OrderStatusCompleted:
		return wireStatusCompleted
	case domain.OrderStatusFailed:
		return wireStatusFailed
	default:
		return wireStatusPending
	}
}

func wireToStatus(code int) (domain.OrderStatus, error) {
	switch code {
	case wireStatusPending:
		return domain.OrderStatusPending, nil
	case wireStatusCompleted:
		return domain.OrderStatusCompleted, nil
	case wireStatusFailed:
		return domain.OrderStatusFailed, nil
	default:
		return "", e.ErrUnknownOrderStatus
	}
}
