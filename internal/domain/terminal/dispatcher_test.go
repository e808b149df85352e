// internal/domain/terminal/dispatcher_test.go
package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
)

func TestDispatchOpenPayment(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "p", Ctrl: true})

	assert.Equal(t, ActionOpenPayment, outcome.Action)
	assert.True(t, outcome.Handled)
	assert.True(t, session.Snapshot().Checkout.PaymentOpen)
}

func TestDispatchMetaWorksLikeCtrl(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "p", Meta: true})

	assert.Equal(t, ActionOpenPayment, outcome.Action)
	assert.True(t, session.Snapshot().Checkout.PaymentOpen)
}

func TestDispatchClearCart(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 2))

	outcome := session.Dispatch(KeyEvent{Key: "c", Ctrl: true})

	assert.Equal(t, ActionClearCart, outcome.Action)
	assert.Equal(t, 0, session.Snapshot().Cart.ItemCount)
}

func TestDispatchFocusSearch(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "f", Ctrl: true})

	assert.Equal(t, ActionFocusSearch, outcome.Action)
	assert.True(t, outcome.FocusSearch)
}

func TestDispatchOpenHistory(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "h", Ctrl: true})

	assert.Equal(t, ActionOpenHistory, outcome.Action)
	assert.True(t, session.Snapshot().Checkout.HistoryOpen)
}

func TestDispatchUnboundModifierKey(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "x", Ctrl: true})

	assert.False(t, outcome.Handled)
}

func TestDispatchQuickAddBindsToViewPosition(t *testing.T) {
	session := newTestSession(t)

	// Default name sort: กาแฟดำร้อน, ขนมปังสังขยา, น้ำส้มสด.
	outcome := session.Dispatch(KeyEvent{Key: "2"})

	assert.Equal(t, ActionQuickAdd, outcome.Action)
	assert.NoError(t, outcome.Err)
	lines := session.Snapshot().Cart.Lines
	require.Len(t, lines, 1)
	assert.Equal(t, "7", lines[0].Product.ID)
}

func TestDispatchQuickAddFollowsFilter(t *testing.T) {
	session := newTestSession(t)
	session.SetCategory("เครื่องดื่มเย็น")

	outcome := session.Dispatch(KeyEvent{Key: "1"})

	require.Equal(t, ActionQuickAdd, outcome.Action)
	lines := session.Snapshot().Cart.Lines
	require.Len(t, lines, 1)
	assert.Equal(t, "5", lines[0].Product.ID)
}

func TestDispatchQuickAddOutOfRangeIgnored(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "9"})

	assert.False(t, outcome.Handled)
	assert.Equal(t, 0, session.Snapshot().Cart.ItemCount)
}

func TestDispatchQuickAddSuppressedWhileTyping(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "1", InputFocused: true})

	assert.False(t, outcome.Handled)
	assert.Equal(t, 0, session.Snapshot().Cart.ItemCount)
}

func TestDispatchEnterConfirmsOnlyWithDialogOpen(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 1))

	outcome := session.Dispatch(KeyEvent{Key: "Enter"})
	assert.False(t, outcome.Handled)

	session.OpenPayment()
	require.NoError(t, session.SetCashTendered("35"))

	outcome = session.Dispatch(KeyEvent{Key: "Enter"})
	assert.Equal(t, ActionConfirm, outcome.Action)
	assert.NoError(t, outcome.Err)
	assert.Len(t, session.Orders(), 1)
}

func TestDispatchEnterReportsValidationError(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 1))
	session.OpenPayment()
	require.NoError(t, session.SetCashTendered("10"))

	outcome := session.Dispatch(KeyEvent{Key: "Enter"})

	assert.Equal(t, ActionConfirm, outcome.Action)
	assert.Error(t, outcome.Err)
	assert.True(t, session.Snapshot().Checkout.PaymentOpen)
}

func TestDispatchEscapeClosesEverything(t *testing.T) {
	session := newTestSession(t)
	session.OpenPayment()
	session.OpenHistory()

	outcome := session.Dispatch(KeyEvent{Key: "Escape"})
	assert.Equal(t, ActionCloseDialogs, outcome.Action)

	snap := session.Snapshot().Checkout
	assert.False(t, snap.PaymentOpen)
	assert.False(t, snap.HistoryOpen)
	assert.False(t, snap.ReceiptOpen)

	// Idempotent with nothing open.
	outcome = session.Dispatch(KeyEvent{Key: "Escape"})
	assert.True(t, outcome.Handled)
}

func TestDispatchPlainKeyUnbound(t *testing.T) {
	session := newTestSession(t)

	outcome := session.Dispatch(KeyEvent{Key: "a"})

	assert.False(t, outcome.Handled)
	assert.Equal(t, ActionNone, outcome.Action)
}

func TestDispatchQuickAddRespectsStock(t *testing.T) {
	session := newTestSession(t)
	session.SetSort(catalog.SortByStock)

	// Highest stock first: น้ำส้มสด (25). Exhaust it.
	for i := 0; i < 25; i++ {
		outcome := session.Dispatch(KeyEvent{Key: "1"})
		require.NoError(t, outcome.Err)
	}

	outcome := session.Dispatch(KeyEvent{Key: "1"})
	assert.Error(t, outcome.Err)
}
