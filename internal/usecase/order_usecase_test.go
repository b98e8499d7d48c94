package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx реализует pgx.Tx для тестов; репозитории-заглушки его не используют.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakePool struct {
	tx *fakeTx
}

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

type stubOrderRepo struct {
	created *domain.Order
}

func (r *stubOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.ID = 42
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	r.created = order
	return order, nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return nil, e.ErrOrderNotFound
}

func (r *stubOrderRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return &domain.Order{ID: id, Status: status}, nil
}

type stubProductRepo struct {
	products map[int64]domain.Product
}

func (r *stubProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return product, nil
}

func (r *stubProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (r *stubProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	var result []domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

type stubOutboxRepo struct {
	events []*OutboxEvent
}

func (r *stubOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.events = append(r.events, event)
	return event, nil
}

func (r *stubOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *stubOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

type stubCacheRepo struct {
	products map[int64]domain.Product
}

func (r *stubCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	result := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (r *stubCacheRepo) SetProducts(ctx context.Context, products []domain.Product) error { return nil }
func (r *stubCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error            { return nil }

func newTestOrderUC(tx *fakeTx, productsInDB, productsInCache map[int64]domain.Product) (*OrderUseCase, *stubOrderRepo, *stubOutboxRepo) {
	orderRepo := &stubOrderRepo{}
	outboxRepo := &stubOutboxRepo{}
	uc := NewOrderUC(
		orderRepo,
		&stubProductRepo{products: productsInDB},
		outboxRepo,
		&stubCacheRepo{products: productsInCache},
		&fakePool{tx: tx},
		logger.NewSlogLogger(),
	)
	return uc, orderRepo, outboxRepo
}

func TestSubmitOrder_ValidationOrder(t *testing.T) {
	uc, _, _ := newTestOrderUC(&fakeTx{}, nil, nil)

	cases := []struct {
		name    string
		req     *SubmitOrderReq
		field   string
		wantErr error
	}{
		{
			name:    "blank email",
			req:     NewSubmitOrderReq("   ", []SubmitOrderItem{{ProductID: 1, Quantity: 1}}),
			field:   "customerEmail",
			wantErr: e.ErrEmailRequired,
		},
		{
			name:    "malformed email",
			req:     NewSubmitOrderReq("not-an-email", []SubmitOrderItem{{ProductID: 1, Quantity: 1}}),
			field:   "customerEmail",
			wantErr: e.ErrEmailInvalid,
		},
		{
			name:    "empty cart",
			req:     NewSubmitOrderReq("buyer@example.com", nil),
			field:   "items",
			wantErr: e.ErrEmptyOrder,
		},
		{
			name:    "zero quantity",
			req:     NewSubmitOrderReq("buyer@example.com", []SubmitOrderItem{{ProductID: 1, Quantity: 0}}),
			field:   "items",
			wantErr: e.ErrQuantityTooSmall,
		},
		{
			// email проверяется раньше состава корзины
			name:    "blank email wins over empty cart",
			req:     NewSubmitOrderReq("", nil),
			field:   "customerEmail",
			wantErr: e.ErrEmailRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.SubmitOrder(context.Background(), tc.req)
			require.Error(t, err)

			vErr, ok := e.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, vErr.Field)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSubmitOrder_ValidationFailsBeforePersistence(t *testing.T) {
	tx := &fakeTx{}
	uc, orderRepo, outboxRepo := newTestOrderUC(tx, nil, nil)

	_, err := uc.SubmitOrder(context.Background(), NewSubmitOrderReq("buyer@example.com", nil))

	require.Error(t, err)
	assert.Nil(t, orderRepo.created)
	assert.Empty(t, outboxRepo.events)
	assert.False(t, tx.committed)
}

func TestSubmitOrder_FreezesNameAndEffectivePrice(t *testing.T) {
	products := map[int64]domain.Product{
		1: {ID: 1, Name: "Laptop", Price: 150000},
		2: {ID: 2, Name: "Mouse", Price: 1500, SalePrice: 1000, IsOnSale: true},
	}
	tx := &fakeTx{}
	uc, _, outboxRepo := newTestOrderUC(tx, nil, products)

	order, err := uc.SubmitOrder(context.Background(), NewSubmitOrderReq("buyer@example.com", []SubmitOrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}))

	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	assert.Equal(t, "Laptop", order.Items[0].ProductName)
	assert.Equal(t, int64(150000), order.Items[0].PriceAtPurchase)
	// Для товара на распродаже фиксируется цена распродажи
	assert.Equal(t, "Mouse", order.Items[1].ProductName)
	assert.Equal(t, int64(1000), order.Items[1].PriceAtPurchase)

	assert.Equal(t, int64(2*150000+3*1000), order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, tx.committed)

	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, EventOrderCreated, outboxRepo.events[0].EventType)

	var payload OrderEvent
	require.NoError(t, json.Unmarshal(outboxRepo.events[0].Payload, &payload))
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, string(domain.OrderStatusPending), payload.Status)
}

func TestSubmitOrder_FallsBackToDBOnCacheMiss(t *testing.T) {
	inDB := map[int64]domain.Product{
		1: {ID: 1, Name: "Laptop", Price: 150000},
	}
	uc, _, _ := newTestOrderUC(&fakeTx{}, inDB, nil)

	order, err := uc.SubmitOrder(context.Background(), NewSubmitOrderReq("buyer@example.com", []SubmitOrderItem{
		{ProductID: 1, Quantity: 1},
	}))

	require.NoError(t, err)
	assert.Equal(t, int64(150000), order.TotalAmount)
}

func TestSubmitOrder_UnknownProduct(t *testing.T) {
	tx := &fakeTx{}
	uc, orderRepo, _ := newTestOrderUC(tx, nil, nil)

	_, err := uc.SubmitOrder(context.Background(), NewSubmitOrderReq("buyer@example.com", []SubmitOrderItem{
		{ProductID: 99, Quantity: 1},
	}))

	require.Error(t, err)
	vErr, ok := e.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "items", vErr.Field)
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	assert.Nil(t, orderRepo.created)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestSubmitOrder_NonPositivePrice(t *testing.T) {
	products := map[int64]domain.Product{
		1: {ID: 1, Name: "Broken", Price: 0},
	}
	uc, _, _ := newTestOrderUC(&fakeTx{}, nil, products)

	_, err := uc.SubmitOrder(context.Background(), NewSubmitOrderReq("buyer@example.com", []SubmitOrderItem{
		{ProductID: 1, Quantity: 1},
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrPriceMustBePositive)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	uc, _, outboxRepo := newTestOrderUC(&fakeTx{}, nil, nil)

	_, err := uc.UpdateOrderStatus(context.Background(), 1, domain.OrderStatus("shipped"))

	require.Error(t, err)
	vErr, ok := e.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", vErr.Field)
	assert.Empty(t, outboxRepo.events)
}

func TestUpdateOrderStatus_PublishesEvent(t *testing.T) {
	tx := &fakeTx{}
	uc, _, outboxRepo := newTestOrderUC(tx, nil, nil)

	order, err := uc.UpdateOrderStatus(context.Background(), 7, domain.OrderStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.True(t, tx.committed)

	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, EventOrderStatusChanged, outboxRepo.events[0].EventType)
}

func TestGetOrder_NotFound(t *testing.T) {
	uc, _, _ := newTestOrderUC(&fakeTx{}, nil, nil)

	_, err := uc.GetOrder(context.Background(), 404)

	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}
