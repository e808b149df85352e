// internal/domain/order/history_test.go
package order

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedOrder(id string) *CompletedOrder {
	return &CompletedOrder{
		ID:            id,
		Total:         decimal.NewFromInt(100),
		PaymentMethod: PaymentCash,
		CashReceived:  decimal.NewFromInt(100),
		Change:        decimal.Zero,
		Timestamp:     time.Now(),
	}
}

func TestAppendIsNewestFirst(t *testing.T) {
	h := NewHistoryLog()

	h.Append(completedOrder("a"))
	h.Append(completedOrder("b"))
	h.Append(completedOrder("c"))

	orders := h.List()
	require.Len(t, orders, 3)
	assert.Equal(t, "c", orders[0].ID)
	assert.Equal(t, "b", orders[1].ID)
	assert.Equal(t, "a", orders[2].ID)
}

func TestFindByID(t *testing.T) {
	h := NewHistoryLog()
	h.Append(completedOrder("a"))

	assert.NotNil(t, h.FindByID("a"))
	assert.Nil(t, h.FindByID("missing"))
}

func TestListReturnsCopy(t *testing.T) {
	h := NewHistoryLog()
	h.Append(completedOrder("a"))

	orders := h.List()
	orders[0] = completedOrder("tampered")

	assert.Equal(t, "a", h.List()[0].ID)
}

func TestNewOrderIDFormat(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	id := NewOrderID(at)

	assert.True(t, strings.HasPrefix(id, "ORD-1700000000000-"))
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentQR.Valid())
	assert.True(t, PaymentTransfer.Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
}

func TestPaymentMethodLabels(t *testing.T) {
	assert.Equal(t, "เงินสด", PaymentCash.Label())
	assert.Equal(t, "บัตรเครดิต", PaymentCard.Label())
	assert.Equal(t, "QR Code", PaymentQR.Label())
	assert.Equal(t, "โอนเงิน", PaymentTransfer.Label())
}
