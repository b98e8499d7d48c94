package usecase

import (
	"context"
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderUseCase реализует жизненный цикл заказа: оформление из корзины,
// чтение, удаление и смену статуса.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// SubmitOrder превращает корзину покупателя в заказ: валидирует данные,
// фиксирует позиции по текущим ценам и атомарно сохраняет заказ вместе
// с позициями и outbox-событием. Корзину вызывающей стороны не трогает —
// при неудаче ее содержимое остается пригодным для повторной отправки.
func (o *OrderUseCase) SubmitOrder(ctx context.Context, req *SubmitOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.SubmitOrder"

	// Валидация выполняется до первого нарушения и до любых обращений к хранилищу
	if err := validateSubmission(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции целиком:
	// заказ никогда не сохраняется частично
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	items, err := o.freezeItems(ctx, req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order, err := o.orderRepo.Create(ctx, domain.NewOrder(strings.TrimSpace(req.CustomerEmail), items))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.enqueueOrderEvent(ctx, EventOrderCreated, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// GetOrder возвращает заказ со всеми позициями.
func (o *OrderUseCase) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// DeleteOrder удаляет заказ. Позиции удаляются каскадно на уровне схемы,
// осиротевших снимков не остается.
func (o *OrderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	const op = "OrderUseCase.DeleteOrder"

	if err := o.orderRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// UpdateOrderStatus переводит заказ в новый статус и публикует событие.
// CompletedDate выставляется однократно при первом переходе в конечный
// статус; защелка реализована на стороне репозитория.
func (o *OrderUseCase) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateOrderStatus"

	if !status.Valid() {
		return nil, e.Wrap(op, e.Validation("status", e.ErrUnknownOrderStatus))
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	order, err := o.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.enqueueOrderEvent(ctx, EventOrderStatusChanged, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// freezeItems формирует снимки позиций заказа: название и действующая цена
// каждого товара копируются прямо сейчас и далее не зависят от судьбы товара.
func (o *OrderUseCase) freezeItems(ctx context.Context, lines []SubmitOrderItem) ([]domain.OrderItem, error) {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := o.loadProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, e.Validation("items", e.ErrProductNotFound)
		}

		price := product.EffectivePrice()
		if price <= 0 {
			return nil, e.Validation("items", e.ErrPriceMustBePositive)
		}

		items = append(items, domain.NewOrderItem(product.ID, product.Name, line.Quantity, price))
	}

	return items, nil
}

// loadProducts собирает товары по идентификаторам: сперва из кэша,
// недостающие — из БД. Ошибка кэша не фатальна.
func (o *OrderUseCase) loadProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	products, err := o.cacheRepo.GetProducts(ctx, ids)
	if err != nil || products == nil {
		products = make(map[int64]domain.Product, len(ids))
	}

	missing := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return products, nil
	}

	fromDB, err := o.productRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for _, product := range fromDB {
		products[product.ID] = product
	}

	return products, nil
}

// enqueueOrderEvent кладет событие заказа в outbox в рамках текущей транзакции.
func (o *OrderUseCase) enqueueOrderEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(NewOrderEvent(eventID, eventType, order))
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, order.ID, payload))
	return err
}

// validateSubmission проверяет запрос на оформление заказа.
// Порядок проверок фиксирован: email, непустота, количество позиций.
// Количество перепроверяется, даже если корзина уже гарантировала минимум 1.
func validateSubmission(req *SubmitOrderReq) error {
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return e.Validation("customerEmail", e.ErrEmailRequired)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return e.Validation("customerEmail", e.ErrEmailInvalid)
	}

	if len(req.Items) == 0 {
		return e.Validation("items", e.ErrEmptyOrder)
	}

	for _, line := range req.Items {
		if line.Quantity < 1 {
			return e.Validation("items", e.ErrQuantityTooSmall)
		}
	}

	return nil
}
