package converter

import (
	"testing"
	"time"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusCodec(t *testing.T) {
	cases := []struct {
		status domain.OrderStatus
		code   int16
	}{
		{domain.OrderStatusPending, 0},
		{domain.OrderStatusCompleted, 1},
		{domain.OrderStatusFailed, 2},
	}

	for _, tc := range cases {
		code, err := EncodeOrderStatus(tc.status)
		require.NoError(t, err)
		assert.Equal(t, tc.code, code)

		status, err := DecodeOrderStatus(tc.code)
		require.NoError(t, err)
		assert.Equal(t, tc.status, status)
	}
}

func TestEncodeOrderStatus_Unknown(t *testing.T) {
	_, err := EncodeOrderStatus(domain.OrderStatus("shipped"))
	assert.ErrorIs(t, err, e.ErrUnknownOrderStatus)
}

func TestDecodeOrderStatus_Unknown(t *testing.T) {
	_, err := DecodeOrderStatus(7)
	assert.ErrorIs(t, err, e.ErrUnknownOrderStatus)
}

func TestOrderConverter_RoundTrip(t *testing.T) {
	conv := NewOrderConverter()
	completed := time.Now().UTC()

	entity := &domain.Order{
		ID:            7,
		CustomerEmail: "buyer@example.com",
		TotalAmount:   303000,
		Status:        domain.OrderStatusCompleted,
		CreatedDate:   time.Now().UTC().Add(-time.Hour),
		CompletedDate: &completed,
		Items: []domain.OrderItem{
			{ID: 1, OrderID: 7, ProductID: 3, ProductName: "Laptop", Quantity: 2, PriceAtPurchase: 150000},
			{ID: 2, OrderID: 7, ProductID: 4, ProductName: "Mouse", Quantity: 3, PriceAtPurchase: 1000},
		},
	}

	model, err := conv.ToModel(entity)
	require.NoError(t, err)
	assert.Equal(t, int16(1), model.Status)

	itemModels := make([]OrderItemModel, 0, len(entity.Items))
	for i := range entity.Items {
		itemModels = append(itemModels, *conv.ItemToModel(&entity.Items[i]))
	}

	restored, err := conv.ToEntity(model, itemModels)
	require.NoError(t, err)
	assert.Equal(t, entity, restored)
}

func TestOrderConverter_ToModelRejectsUnknownStatus(t *testing.T) {
	conv := NewOrderConverter()

	_, err := conv.ToModel(&domain.Order{Status: domain.OrderStatus("shipped")})
	assert.ErrorIs(t, err, e.ErrUnknownOrderStatus)
}
