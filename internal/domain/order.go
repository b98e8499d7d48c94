package domain

import "time"

// OrderStatus описывает состояние заказа. Закрытый набор значений;
// целочисленное представление для БД и JSON живет только в конвертерах.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// IsTerminal сообщает, является ли статус конечным.
// Из конечного статуса переходов больше не происходит.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}

// Valid проверяет, что значение принадлежит закрытому набору статусов.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

// Order — агрегат заказа: шапка плюс зафиксированные позиции.
// После создания изменяемы только Status и CompletedDate.
type Order struct {
	ID            int64
	CustomerEmail string
	TotalAmount   int64 // Сумма заказа в центах
	Status        OrderStatus
	CreatedDate   time.Time
	CompletedDate *time.Time
	Items         []OrderItem // порядок вставки сохраняется
}

// NewOrder собирает новый заказ в статусе Pending.
// Сумма вычисляется из позиций и далее не пересчитывается.
func NewOrder(customerEmail string, items []OrderItem) *Order {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.PriceAtPurchase
	}

	return &Order{
		CustomerEmail: customerEmail,
		TotalAmount:   total,
		Status:        OrderStatusPending,
		CreatedDate:   time.Now().UTC(),
		Items:         items,
	}
}
