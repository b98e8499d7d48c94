package usecase

import (
	"time"

	"github.com/blogbox-store/go-backend/internal/domain"
)

// ORDER USECASE

// SubmitOrderItem — строка запроса на оформление: товар и количество.
type SubmitOrderItem struct {
	ProductID int64
	Quantity  int32
}

// SubmitOrderReq — запрос на оформление заказа из корзины покупателя.
type SubmitOrderReq struct {
	CustomerEmail string
	Items         []SubmitOrderItem
}

// PRODUCT USECASE

// AddNewProductReq — запрос на добавление товара в каталог.
// Цены в центах; SalePrice имеет смысл только при IsOnSale.
type AddNewProductReq struct {
	Name      string
	Price     int64
	SalePrice int64
	IsOnSale  bool
}

// GetProductsReq — запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []domain.Product
	NotFoundProducts []int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventOrderCreated       OutboxEventType = "order.created"
	EventOrderStatusChanged OutboxEventType = "order.status_changed"
)

// OutboxEvent — запись транзакционного outbox. Создается в одной транзакции
// с изменением заказа и публикуется в Kafka отдельным воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderEvent — полезная нагрузка событий заказа, публикуемых в Kafka.
type OrderEvent struct {
	EventID       string `json:"eventId"`
	EventType     string `json:"eventType"`
	OrderID       int64  `json:"orderId"`
	CustomerEmail string `json:"customerEmail"`
	TotalAmount   int64  `json:"totalAmountCents"`
	Status        string `json:"status"`
	OccurredAt    int64  `json:"occurredAt"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewSubmitOrderReq(customerEmail string, items []SubmitOrderItem) *SubmitOrderReq {
	return &SubmitOrderReq{
		CustomerEmail: customerEmail,
		Items:         items,
	}
}

func NewSubmitOrderItem(productID int64, quantity int32) SubmitOrderItem {
	return SubmitOrderItem{
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewAddNewProductReq(name string, price int64, salePrice int64, isOnSale bool) *AddNewProductReq {
	return &AddNewProductReq{
		Name:      name,
		Price:     price,
		SalePrice: salePrice,
		IsOnSale:  isOnSale,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(products []domain.Product, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         products,
		NotFoundProducts: notFoundProducts,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewOrderEvent(eventID string, eventType OutboxEventType, order *domain.Order) *OrderEvent {
	return &OrderEvent{
		EventID:       eventID,
		EventType:     string(eventType),
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		OccurredAt:    time.Now().UTC().UnixNano(),
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}
