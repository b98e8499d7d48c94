package pgdb

import (
	"context"
	"errors"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/repository/pgdb/converter"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// querier покрывает pgxpool.Pool и pgx.Tx для запросов чтения.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Заказ и его позиции — единый агрегат: создаются одной транзакцией,
// удаляются каскадом, позиции после создания не изменяются.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет заказ и все его позиции в транзакции вызывающей стороны.
// Идентификаторы проставляются базой; позиции вставляются в порядке слайса.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := o.conv.ToModel(order)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (customer_email, total_amount, status, created_date, completed_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_date
	`

	if err := tx.QueryRow(ctx, query,
		model.CustomerEmail,
		model.TotalAmount,
		model.Status,
		model.CreatedDate,
		model.CompletedDate,
	).Scan(&model.ID, &model.CreatedDate); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	itemModels := make([]converter.OrderItemModel, 0, len(order.Items))
	for i := range order.Items {
		itemModel := o.conv.ItemToModel(&order.Items[i])
		itemModel.OrderID = model.ID

		if err := tx.QueryRow(ctx, itemQuery,
			itemModel.OrderID,
			itemModel.ProductID,
			itemModel.ProductName,
			itemModel.Quantity,
			itemModel.PriceAtPurchase,
		).Scan(&itemModel.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		itemModels = append(itemModels, *itemModel)
	}

	entity, err := o.conv.ToEntity(model, itemModels)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return entity, nil
}

// GetByID возвращает заказ вместе со всеми его позициями.
func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, customer_email, total_amount, status, created_date, completed_date
		FROM orders
		WHERE id = $1
	`

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.CustomerEmail, &model.TotalAmount,
		&model.Status, &model.CreatedDate, &model.CompletedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.getItems(ctx, o.pool, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	entity, err := o.conv.ToEntity(&model, items)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return entity, nil
}

// Delete удаляет заказ. Позиции удаляет каскад ON DELETE CASCADE
// на уровне схемы, без прикладного цикла.
func (o *OrderRepo) Delete(ctx context.Context, id int64) error {
	result, err := o.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}

// UpdateStatus переводит заказ в новый статус в транзакции вызывающей стороны.
// completed_date — защелка: выставляется NOW() только при первом переходе
// в конечный статус и дальше не перезаписывается.
func (o *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	code, err := converter.EncodeOrderStatus(status)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET status = $1,
			completed_date = CASE
				WHEN $2 AND completed_date IS NULL THEN NOW()
				ELSE completed_date
			END
		WHERE id = $3
		RETURNING id, customer_email, total_amount, status, created_date, completed_date
	`

	var model converter.OrderModel
	err = tx.QueryRow(ctx, query, code, status.IsTerminal(), id).Scan(
		&model.ID, &model.CustomerEmail, &model.TotalAmount,
		&model.Status, &model.CreatedDate, &model.CompletedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.getItems(ctx, tx, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	entity, err := o.conv.ToEntity(&model, items)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return entity, nil
}

// getItems читает позиции заказа в порядке вставки.
func (o *OrderRepo) getItems(ctx context.Context, q querier, orderID int64) ([]converter.OrderItemModel, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, price_at_purchase
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]converter.OrderItemModel, 0)
	for rows.Next() {
		var item converter.OrderItemModel
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.PriceAtPurchase,
		); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
