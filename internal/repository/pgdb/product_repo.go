package pgdb

import (
	"context"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/repository/pgdb/converter"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создает или обновляет товар по уникальному имени.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, price, sale_price, is_on_sale)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET
			price = EXCLUDED.price,
			sale_price = EXCLUDED.sale_price,
			is_on_sale = EXCLUDED.is_on_sale,
			updated_at = NOW()
		RETURNING id, name, price, sale_price, is_on_sale, created_at, updated_at
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, product.Name, product.Price, product.SalePrice, product.IsOnSale).
		Scan(
			&model.ID, &model.Name, &model.Price, &model.SalePrice,
			&model.IsOnSale, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetAll возвращает весь каталог в порядке добавления товаров.
func (p *ProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, sale_price, is_on_sale, created_at, updated_at
		FROM products
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.SalePrice,
			&model.IsOnSale, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByIDs возвращает товары по их идентификаторам.
// Отсутствующие идентификаторы не считаются ошибкой — решает вызывающая сторона.
func (p *ProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, sale_price, is_on_sale, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0, len(ids))
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.SalePrice,
			&model.IsOnSale, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}
