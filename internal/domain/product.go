package domain

import "time"

// Product описывает товар каталога.
// Цены хранятся в центах; SalePrice действует только при IsOnSale.
type Product struct {
	ID        int64
	Name      string
	Price     int64 // Цена хранится в центах
	SalePrice int64
	IsOnSale  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewProduct(name string, price int64, salePrice int64, isOnSale bool) *Product {
	return &Product{
		Name:      name,
		Price:     price,
		SalePrice: salePrice,
		IsOnSale:  isOnSale,
	}
}

// EffectivePrice возвращает цену, по которой товар продается прямо сейчас:
// акционную при активной распродаже, иначе базовую.
func (p *Product) EffectivePrice() int64 {
	if p.IsOnSale {
		return p.SalePrice
	}
	return p.Price
}
