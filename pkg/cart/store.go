package cart

import (
	"encoding/json"
	"os"

	"github.com/blogbox-store/go-backend/internal/domain"
)

// Store сохраняет состояние корзины между запусками клиентского приложения.
// Инфраструктурный адаптер: сама корзина о диске не знает.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

type storedProduct struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	SalePrice int64  `json:"salePrice"`
	IsOnSale  bool   `json:"isOnSale"`
}

type storedItem struct {
	Product  storedProduct `json:"product"`
	Quantity int32         `json:"quantity"`
}

// Save сериализует корзину в JSON и переписывает файл целиком.
func (s *Store) Save(c *Cart) error {
	items := c.Items()
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, storedItem{
			Product: storedProduct{
				ID:        item.Product.ID,
				Name:      item.Product.Name,
				Price:     item.Product.Price,
				SalePrice: item.Product.SalePrice,
				IsOnSale:  item.Product.IsOnSale,
			},
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load восстанавливает корзину из файла. Отсутствующее или поврежденное
// состояние молча деградирует до пустой корзины.
func (s *Store) Load() *Cart {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return New()
	}

	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return New()
	}

	c := New()
	for _, item := range stored {
		if item.Quantity < 1 {
			continue
		}

		c.Add(domain.Product{
			ID:        item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			SalePrice: item.Product.SalePrice,
			IsOnSale:  item.Product.IsOnSale,
		}, item.Quantity)
	}

	return c
}
