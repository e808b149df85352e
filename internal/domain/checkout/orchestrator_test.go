// internal/domain/checkout/orchestrator_test.go
package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
)

func product(id, name string, price int64, stock int) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
}

type fixture struct {
	cart     *cart.Engine
	history  *order.HistoryLog
	flow     *Orchestrator
	events   *notify.Buffer
	submits  chan *order.CompletedOrder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := notify.NewBuffer()
	cartEngine := cart.NewEngine(events)
	history := order.NewHistoryLog()
	submits := make(chan *order.CompletedOrder, 1)
	sink := order.SinkFunc(func(_ context.Context, o *order.CompletedOrder) error {
		submits <- o
		return nil
	})
	return &fixture{
		cart:    cartEngine,
		history: history,
		flow:    NewOrchestrator(cartEngine, history, sink, events, nil, time.Second),
		events:  events,
		submits: submits,
	}
}

func (f *fixture) awaitSubmit(t *testing.T) *order.CompletedOrder {
	t.Helper()
	select {
	case o := <-f.submits:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("order was never submitted")
		return nil
	}
}

func messages(events []notify.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}

func TestOpenPaymentDefaults(t *testing.T) {
	f := newFixture(t)
	f.cart.SetDiscountPercent(decimal.NewFromInt(5))

	f.flow.OpenPayment()

	assert.Equal(t, StateSelectingPayment, f.flow.State())
	sel := f.flow.Selection()
	assert.Equal(t, order.PaymentCash, sel.Method)
	assert.Empty(t, sel.CashTendered)
	assert.True(t, sel.DiscountPercent.Equal(decimal.NewFromInt(5)))
}

func TestConfirmCashSale(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 2)) // 70
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetCashTendered("100"))
	f.events.Drain()

	completed, err := f.flow.Confirm()
	require.NoError(t, err)

	assert.True(t, completed.Total.Equal(decimal.NewFromInt(70)))
	assert.True(t, completed.CashReceived.Equal(decimal.NewFromInt(100)))
	assert.True(t, completed.Change.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, order.PaymentCash, completed.PaymentMethod)

	assert.True(t, f.cart.IsEmpty())
	assert.Equal(t, StateIdle, f.flow.State())
	assert.True(t, f.flow.ReceiptOpen())
	assert.Equal(t, 1, f.history.Len())
	assert.Contains(t, messages(f.events.Drain()), "ชำระเงินสำเร็จ!")

	submitted := f.awaitSubmit(t)
	assert.Equal(t, completed.ID, submitted.ID)
}

func TestConfirmInsufficientCashKeepsDialogOpen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 2))
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetCashTendered("50"))
	f.events.Drain()

	_, err := f.flow.Confirm()

	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Equal(t, StateSelectingPayment, f.flow.State())
	assert.Equal(t, "จำนวนเงินไม่เพียงพอ", f.flow.InlineError())
	assert.False(t, f.cart.IsEmpty())
	assert.Equal(t, 0, f.history.Len())
	assert.Contains(t, messages(f.events.Drain()), "จำนวนเงินไม่เพียงพอ")
}

func TestConfirmUnparsableCashTreatedAsZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 1))
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetCashTendered("abc"))

	_, err := f.flow.Confirm()

	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestConfirmNonCashUsesExactAmount(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 2))
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetMethod(order.PaymentQR))

	completed, err := f.flow.Confirm()
	require.NoError(t, err)

	assert.Equal(t, order.PaymentQR, completed.PaymentMethod)
	assert.True(t, completed.CashReceived.Equal(completed.Total))
	assert.True(t, completed.Change.IsZero())
}

func TestConfirmAppliesSelectionDiscount(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 100, 10), 1))
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetDiscountPercent(decimal.NewFromInt(20)))
	require.NoError(t, f.flow.SetMethod(order.PaymentCard))

	completed, err := f.flow.Confirm()
	require.NoError(t, err)

	assert.True(t, completed.Total.Equal(decimal.NewFromInt(80)))
}

func TestConfirmEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.flow.OpenPayment()

	_, err := f.flow.Confirm()

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, f.history.Len())
}

func TestConfirmRequiresOpenDialog(t *testing.T) {
	f := newFixture(t)

	_, err := f.flow.Confirm()

	assert.ErrorIs(t, err, ErrPaymentNotOpen)
}

func TestConfirmSnapshotIsImmutable(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 2))
	f.flow.OpenPayment()
	require.NoError(t, f.flow.SetMethod(order.PaymentTransfer))

	completed, err := f.flow.Confirm()
	require.NoError(t, err)

	// Mutating the cart after the sale must not touch the recorded order.
	require.NoError(t, f.cart.Add(product("2", "ชานมเย็น", 35, 10), 5))

	require.Len(t, completed.Items, 1)
	assert.Equal(t, 2, completed.Items[0].Quantity)
}

func TestCancelKeepsCart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product("1", "กาแฟดำร้อน", 35, 10), 1))
	f.flow.OpenPayment()

	f.flow.Cancel()

	assert.Equal(t, StateIdle, f.flow.State())
	assert.False(t, f.cart.IsEmpty())
}

func TestSettersRequireOpenDialog(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.flow.SetMethod(order.PaymentCard), ErrPaymentNotOpen)
	assert.ErrorIs(t, f.flow.SetCashTendered("100"), ErrPaymentNotOpen)
	assert.ErrorIs(t, f.flow.SetCustomerName("สมชาย"), ErrPaymentNotOpen)
	assert.ErrorIs(t, f.flow.SetDiscountPercent(decimal.NewFromInt(5)), ErrPaymentNotOpen)
}

func TestSetMethodRejectsUnknownValue(t *testing.T) {
	f := newFixture(t)
	f.flow.OpenPayment()

	assert.ErrorIs(t, f.flow.SetMethod("crypto"), ErrInvalidPaymentMethod)
}

func TestCloseAllIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.flow.OpenPayment()
	f.flow.OpenHistory()

	f.flow.CloseAll()
	f.flow.CloseAll()

	assert.Equal(t, StateIdle, f.flow.State())
	assert.False(t, f.flow.HistoryOpen())
	assert.False(t, f.flow.ReceiptOpen())
}

func TestOrderIDsAreUnique(t *testing.T) {
	at := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := order.NewOrderID(at)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
