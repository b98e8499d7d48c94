package usecase

import (
	"context"

	"github.com/blogbox-store/go-backend/internal/domain"
)

// OrderRepository — граница персистентности агрегата заказа.
// Create и UpdateStatus выполняются в транзакции вызывающей стороны,
// позиции заказа извне не изменяются никогда.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
