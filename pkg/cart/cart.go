// Package cart реализует корзину покупателя — изменяемое промежуточное
// состояние на стороне клиента, из которого при оформлении формируется заказ.
package cart

import "github.com/blogbox-store/go-backend/internal/domain"

// Item — позиция корзины: товар и выбранное количество.
type Item struct {
	Product  domain.Product
	Quantity int32
}

// Cart хранит позиции в порядке добавления, не более одной на товар.
// Все операции синхронны и не выполняют ввод-вывод; сохранением состояния
// занимается отдельный адаптер (Store).
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add добавляет товар в корзину. Если позиция для товара уже есть,
// количество накапливается. Количество меньше 1 — ошибка вызывающей стороны:
// такая позиция не пройдет валидацию при оформлении заказа.
func (c *Cart) Add(product domain.Product, quantity int32) {
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, Item{Product: product, Quantity: quantity})
}

// Remove удаляет позицию товара. Отсутствие позиции не считается ошибкой.
func (c *Cart) Remove(productID int64) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity выставляет количество позиции.
// Значения меньше 1 молча игнорируются: корзина не допускает вырожденных позиций.
func (c *Cart) UpdateQuantity(productID int64, quantity int32) {
	if quantity < 1 {
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.items = nil
}

// Total возвращает сумму корзины в центах с учетом акционных цен.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += int64(item.Quantity) * item.Product.EffectivePrice()
	}

	return total
}

// ItemCount возвращает суммарное количество единиц товара в корзине.
func (c *Cart) ItemCount() int32 {
	var count int32
	for _, item := range c.items {
		count += item.Quantity
	}

	return count
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
