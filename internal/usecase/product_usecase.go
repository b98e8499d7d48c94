package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// RegisterNewProduct валидирует данные и идемпотентно сохраняет товар каталога.
func (p *ProductUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.RegisterNewProduct"

	if err := validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := p.productRepo.Upsert(ctx, domain.NewProduct(strings.TrimSpace(req.Name), req.Price, req.SalePrice, req.IsOnSale))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{product.ID}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return product, nil
}

// GetProducts возвращает весь каталог для витрины.
func (p *ProductUseCase) GetProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.GetProducts"

	products, err := p.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProductsInfo возвращает товары по их идентификаторам.
func (p *ProductUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProductsInfo"

	// Валидация
	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.Validation("ids", e.ErrMissingFields))
	}

	// Поиск товаров в кэше
	cached, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	if err != nil || cached == nil {
		cached = make(map[int64]domain.Product)
	}

	nonCacheable := make([]int64, 0, len(req.IDs))
	for _, id := range req.IDs {
		if _, ok := cached[id]; !ok {
			nonCacheable = append(nonCacheable, id)
		}
	}

	// Получение товаров из БД
	var fromDB []domain.Product
	if len(nonCacheable) > 0 {
		fromDB, err = p.productRepo.GetByIDs(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProducts(bgCtx, fromDB); err != nil {
				p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbMap := make(map[int64]domain.Product, len(fromDB))
	for _, product := range fromDB {
		dbMap[product.ID] = product
	}

	// Формирование результата
	result := make([]domain.Product, 0, len(req.IDs))
	notFound := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cached[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbMap[id]; ok {
			result = append(result, pr)
		} else {
			notFound = append(notFound, id)
		}
	}

	return NewGetProductsRes(result, notFound), nil
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.Validation("name", e.ErrProductNameRequired)
	}

	if req.Price <= 0 {
		return e.Validation("price", e.ErrPriceMustBePositive)
	}

	if req.IsOnSale && req.SalePrice <= 0 {
		return e.Validation("salePrice", e.ErrPriceMustBePositive)
	}

	return nil
}
