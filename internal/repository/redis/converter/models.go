package converter

// ProductRedisModel — представление товара в кэше Redis.
type ProductRedisModel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	SalePrice int64  `json:"sale_price"`
	IsOnSale  bool   `json:"is_on_sale"`
}
