// internal/domain/terminal/session_test.go
package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
)

type fakeSource struct {
	products []catalog.Product
	err      error
}

func (s *fakeSource) ListProducts(context.Context) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Name: "กาแฟดำร้อน", Price: decimal.NewFromInt(35), Category: "เครื่องดื่มร้อน", Stock: 20, Barcode: "1001"},
		{ID: "5", Name: "น้ำส้มสด", Price: decimal.NewFromInt(40), Category: "เครื่องดื่มเย็น", Stock: 25, Barcode: "2001"},
		{ID: "7", Name: "ขนมปังสังขยา", Price: decimal.NewFromInt(25), Category: "ขนม", Stock: 15, Barcode: "3001"},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{SubmitTimeout: time.Second},
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	manager := NewManager(&fakeSource{products: testProducts()}, order.NopSink, testConfig(), nil)
	return manager.Create(context.Background())
}

func TestCreateLoadsCatalog(t *testing.T) {
	session := newTestSession(t)

	assert.Len(t, session.VisibleProducts(), 3)
	assert.Equal(t, []string{catalog.CategoryAll, "เครื่องดื่มร้อน", "เครื่องดื่มเย็น", "ขนม"}, session.Categories())
}

func TestCreateSurvivesCatalogFailure(t *testing.T) {
	manager := NewManager(&fakeSource{err: errors.New("boom")}, order.NopSink, testConfig(), nil)

	session := manager.Create(context.Background())

	assert.Empty(t, session.VisibleProducts())
	events := session.DrainNotifications()
	require.Len(t, events, 1)
	assert.Equal(t, "ไม่สามารถโหลดสินค้าได้", events[0].Message)
}

func TestManagerGetAndDelete(t *testing.T) {
	manager := NewManager(&fakeSource{products: testProducts()}, order.NopSink, testConfig(), nil)
	session := manager.Create(context.Background())

	got, err := manager.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	manager.Delete(session.ID)
	_, err = manager.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, manager.Count())
}

func TestSessionsAreIsolated(t *testing.T) {
	manager := NewManager(&fakeSource{products: testProducts()}, order.NopSink, testConfig(), nil)
	first := manager.Create(context.Background())
	second := manager.Create(context.Background())

	require.NoError(t, first.AddProduct("1", 2))

	assert.Equal(t, 2, first.Snapshot().Cart.ItemCount)
	assert.Equal(t, 0, second.Snapshot().Cart.ItemCount)
}

func TestViewDefaults(t *testing.T) {
	session := newTestSession(t)

	view := session.View()
	assert.Equal(t, catalog.CategoryAll, view.Category)
	assert.Equal(t, catalog.SortByName, view.Sort)
	assert.Empty(t, view.SearchTerm)
}

func TestVisibleProductsFollowView(t *testing.T) {
	session := newTestSession(t)

	session.SetCategory("ขนม")

	visible := session.VisibleProducts()
	require.Len(t, visible, 1)
	assert.Equal(t, "7", visible[0].ID)
}

func TestSetSortIgnoresUnknownKey(t *testing.T) {
	session := newTestSession(t)

	session.SetSort("nonsense")

	assert.Equal(t, catalog.SortByName, session.View().Sort)
}

func TestAddUnknownProduct(t *testing.T) {
	session := newTestSession(t)

	err := session.AddProduct("99", 1)

	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestCheckoutRoundTrip(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 2)) // 70

	session.OpenPayment()
	require.NoError(t, session.SetCashTendered("100"))

	completed, err := session.Confirm()
	require.NoError(t, err)

	assert.True(t, completed.Change.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 0, session.Snapshot().Cart.ItemCount)

	orders := session.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, completed.ID, orders[0].ID)
}

func TestShowReceiptFromHistory(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 1))
	session.OpenPayment()
	require.NoError(t, session.SetCashTendered("35"))
	completed, err := session.Confirm()
	require.NoError(t, err)
	session.CloseDialogs()

	require.NoError(t, session.ShowReceipt(completed.ID))

	snap := session.Snapshot()
	assert.True(t, snap.Checkout.ReceiptOpen)
	assert.Equal(t, completed.ID, snap.OrderID)

	assert.ErrorIs(t, session.ShowReceipt("missing"), ErrUnknownOrder)
}

func TestSnapshotTotals(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 2))
	session.SetDiscountPercent(decimal.NewFromInt(10))

	snap := session.Snapshot()

	assert.Equal(t, "70.00", snap.Cart.Subtotal)
	assert.Equal(t, "7.00", snap.Cart.DiscountAmount)
	assert.Equal(t, "63.00", snap.Cart.Total)
}

func TestDrainNotificationsClearsQueue(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.AddProduct("1", 1))

	first := session.DrainNotifications()
	second := session.DrainNotifications()

	require.NotEmpty(t, first)
	assert.Contains(t, messagesOf(first), "เพิ่ม กาแฟดำร้อน ลงตะกร้าแล้ว")
	assert.Empty(t, second)
}

func messagesOf(events []notify.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}
