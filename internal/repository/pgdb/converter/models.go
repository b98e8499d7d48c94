package converter

import "time"

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID            int64      `db:"id"`
	CustomerEmail string     `db:"customer_email"`
	TotalAmount   int64      `db:"total_amount"`
	Status        int16      `db:"status"`
	CreatedDate   time.Time  `db:"created_date"`
	CompletedDate *time.Time `db:"completed_date"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID              int64  `db:"id"`
	OrderID         int64  `db:"order_id"`
	ProductID       int64  `db:"product_id"`
	ProductName     string `db:"product_name"`
	Quantity        int32  `db:"quantity"`
	PriceAtPurchase int64  `db:"price_at_purchase"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Price     int64      `db:"price"`
	SalePrice int64      `db:"sale_price"`
	IsOnSale  bool       `db:"is_on_sale"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
