package http

import (
	"testing"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"599.99", 59999},
		{"600", 60000},
		{"0.01", 1},
		{"23.00", 2300},
	}

	for _, tc := range cases {
		got, err := parsePriceToCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePriceToCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "-5", "10000000001"} {
		_, err := parsePriceToCents(in)
		assert.ErrorIs(t, err, e.ErrInvalidPrice, in)
	}

	_, err := parsePriceToCents("5.999")
	assert.ErrorIs(t, err, e.ErrPricePrecision)
}

func TestStatusWireCodec(t *testing.T) {
	assert.Equal(t, wireStatusPending, statusToWire(domain.OrderStatusPending))
	assert.Equal(t, wireStatusCompleted, statusToWire(domain.OrderStatusCompleted))
	assert.Equal(t, wireStatusFailed, statusToWire(domain.OrderStatusFailed))

	for code, want := range map[int]domain.OrderStatus{
		0: domain.OrderStatusPending,
		1: domain.OrderStatusCompleted,
		2: domain.OrderStatusFailed,
	} {
		status, err := wireToStatus(code)
		require.NoError(t, err)
		assert.Equal(t, want, status)
	}

	_, err := wireToStatus(3)
	assert.ErrorIs(t, err, e.ErrUnknownOrderStatus)
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, 23.0, centsToAmount(2300))
	assert.Equal(t, 0.01, centsToAmount(1))
	assert.Equal(t, 0.0, centsToAmount(0))
}
