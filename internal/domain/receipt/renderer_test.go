// internal/domain/receipt/renderer_test.go
package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/order"
)

func testRenderer() *Renderer {
	return NewRenderer(config.StoreConfig{
		Name:          "ร้านกาแฟทดสอบ",
		Tagline:       "ระบบจุดขาย",
		ReceiptFooter: "ขอบคุณที่ใช้บริการ",
	})
}

func cashOrder() *order.CompletedOrder {
	return &order.CompletedOrder{
		ID: "ORD-1700000000000-abcd1234",
		Items: []cart.Line{
			{
				Product: catalog.Product{
					ID:    "1",
					Name:  "กาแฟดำร้อน",
					Price: decimal.NewFromInt(35),
				},
				Quantity: 2,
				Subtotal: decimal.NewFromInt(70),
			},
		},
		Total:         decimal.NewFromInt(70),
		PaymentMethod: order.PaymentCash,
		CashReceived:  decimal.NewFromInt(100),
		Change:        decimal.NewFromInt(30),
		Timestamp:     time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC),
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := testRenderer()
	o := cashOrder()

	first := r.Render(o)
	second := r.Render(o)

	assert.Equal(t, first, second)
}

func TestRenderAmountsHaveTwoDecimals(t *testing.T) {
	doc := testRenderer().Render(cashOrder())

	assert.Equal(t, "70.00", doc.Total)
	assert.Equal(t, "100.00", doc.Tendered)
	assert.Equal(t, "30.00", doc.Change)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "35.00", doc.Lines[0].UnitPrice)
	assert.Equal(t, "70.00", doc.Lines[0].Subtotal)
}

func TestRenderUsesOrderTimestamp(t *testing.T) {
	doc := testRenderer().Render(cashOrder())

	assert.Equal(t, "28/08/2026 14:30:05", doc.Timestamp)
}

func TestRenderSuppressesZeroChange(t *testing.T) {
	o := cashOrder()
	o.CashReceived = decimal.NewFromInt(70)
	o.Change = decimal.Zero

	doc := testRenderer().Render(o)

	assert.Equal(t, "70.00", doc.Tendered)
	assert.Empty(t, doc.Change)
}

func TestRenderNonCashOmitsTenderedAndChange(t *testing.T) {
	o := cashOrder()
	o.PaymentMethod = order.PaymentQR
	o.CashReceived = o.Total
	o.Change = decimal.Zero

	doc := testRenderer().Render(o)

	assert.Empty(t, doc.Tendered)
	assert.Empty(t, doc.Change)
	assert.Equal(t, "QR Code", doc.PaymentLabel)
}

func TestRenderIncludesCustomerName(t *testing.T) {
	o := cashOrder()
	o.CustomerName = "สมชาย"

	doc := testRenderer().Render(o)

	assert.Equal(t, "สมชาย", doc.CustomerName)
}

func TestTextTicket(t *testing.T) {
	text := testRenderer().Render(cashOrder()).Text()

	assert.Contains(t, text, "ร้านกาแฟทดสอบ")
	assert.Contains(t, text, "ORD-1700000000000-abcd1234")
	assert.Contains(t, text, "กาแฟดำร้อน")
	assert.Contains(t, text, "70.00")
	assert.Contains(t, text, "เงินสด")
	assert.Contains(t, text, "เงินทอน")
	assert.Contains(t, text, "ขอบคุณที่ใช้บริการ")
}

func TestTextOmitsSuppressedRows(t *testing.T) {
	o := cashOrder()
	o.PaymentMethod = order.PaymentCard
	o.CashReceived = o.Total
	o.Change = decimal.Zero

	text := testRenderer().Render(o).Text()

	assert.NotContains(t, text, "รับเงิน")
	assert.NotContains(t, text, "เงินทอน")
}
