package converter

import (
	"fmt"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/e"
)

// Статус заказа хранится в БД и передается по сети целым числом.
// Соответствие задано здесь и больше нигде; внутри приложения
// используется только domain.OrderStatus.
const (
	OrderStatusPendingCode   int16 = 0
	OrderStatusCompletedCode int16 = 1
	OrderStatusFailedCode    int16 = 2
)

// EncodeOrderStatus переводит статус в целочисленный код хранения.
func EncodeOrderStatus(status domain.OrderStatus) (int16, error) {
	switch status {
	case domain.OrderStatusPending:
		return OrderStatusPendingCode, nil
	case domain.OrderStatusCompleted:
		return OrderStatusCompletedCode, nil
	case domain.OrderStatusFailed:
		return OrderStatusFailedCode, nil
	default:
		return 0, fmt.Errorf("%w: %q", e.ErrUnknownOrderStatus, status)
	}
}

// DecodeOrderStatus переводит целочисленный код хранения в статус.
func DecodeOrderStatus(code int16) (domain.OrderStatus, error) {
	switch code {
	case OrderStatusPendingCode:
		return domain.OrderStatusPending, nil
	case OrderStatusCompletedCode:
		return domain.OrderStatusCompleted, nil
	case OrderStatusFailedCode:
		return domain.OrderStatusFailed, nil
	default:
		return "", fmt.Errorf("%w: code %d", e.ErrUnknownOrderStatus, code)
	}
}

// OrderConverter преобразует агрегат заказа между domain и моделями PostgreSQL.
type OrderConverter struct{}

func NewOrderConverter() OrderConverter {
	return OrderConverter{}
}

func (OrderConverter) ToModel(entity *domain.Order) (*OrderModel, error) {
	code, err := EncodeOrderStatus(entity.Status)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:            entity.ID,
		CustomerEmail: entity.CustomerEmail,
		TotalAmount:   entity.TotalAmount,
		Status:        code,
		CreatedDate:   entity.CreatedDate,
		CompletedDate: entity.CompletedDate,
	}, nil
}

func (c OrderConverter) ToEntity(model *OrderModel, items []OrderItemModel) (*domain.Order, error) {
	status, err := DecodeOrderStatus(model.Status)
	if err != nil {
		return nil, err
	}

	entityItems := make([]domain.OrderItem, 0, len(items))
	for i := range items {
		entityItems = append(entityItems, c.ItemToEntity(&items[i]))
	}

	return &domain.Order{
		ID:            model.ID,
		CustomerEmail: model.CustomerEmail,
		TotalAmount:   model.TotalAmount,
		Status:        status,
		CreatedDate:   model.CreatedDate,
		CompletedDate: model.CompletedDate,
		Items:         entityItems,
	}, nil
}

func (OrderConverter) ItemToModel(entity *domain.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:              entity.ID,
		OrderID:         entity.OrderID,
		ProductID:       entity.ProductID,
		ProductName:     entity.ProductName,
		Quantity:        entity.Quantity,
		PriceAtPurchase: entity.PriceAtPurchase,
	}
}

func (OrderConverter) ItemToEntity(model *OrderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:              model.ID,
		OrderID:         model.OrderID,
		ProductID:       model.ProductID,
		ProductName:     model.ProductName,
		Quantity:        model.Quantity,
		PriceAtPurchase: model.PriceAtPurchase,
	}
}

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Price:     entity.Price,
		SalePrice: entity.SalePrice,
		IsOnSale:  entity.IsOnSale,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		SalePrice: model.SalePrice,
		IsOnSale:  model.IsOnSale,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c ProductConverter) ToArrEntity(models []*ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for _, model := range models {
		result = append(result, *c.ToEntity(model))
	}

	return result
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return OutboxEventConverter{}
}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
