package usecase

import (
	"context"

	"github.com/blogbox-store/go-backend/internal/domain"
)

type OrderUC interface {
	SubmitOrder(ctx context.Context, req *SubmitOrderReq) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}

type ProductUC interface {
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
}
