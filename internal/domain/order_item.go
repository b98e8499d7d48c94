package domain

// OrderItem — неизменяемый снимок купленной позиции.
// Название и цена копируются в момент оформления заказа и не меняются,
// даже если исходный товар позже изменится или будет удален.
// ProductID — мягкая ссылка без ограничения целостности.
type OrderItem struct {
	ID              int64
	OrderID         int64 // идентификатор владеющего заказа, проставляется при сохранении
	ProductID       int64
	ProductName     string
	Quantity        int32
	PriceAtPurchase int64 // Цена на момент покупки в центах
}

func NewOrderItem(productID int64, productName string, quantity int32, priceAtPurchase int64) OrderItem {
	return OrderItem{
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		PriceAtPurchase: priceAtPurchase,
	}
}
