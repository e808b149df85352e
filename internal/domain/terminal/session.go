// internal/domain/terminal/session.go
package terminal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/checkout"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
)

var (
	// ErrSessionNotFound is returned when no session has the given id
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownProduct is returned when a cart operation names a product
	// absent from the catalog snapshot
	ErrUnknownProduct = errors.New("unknown product")
)

// ViewState is the catalog view as one terminal currently shows it: search
// term, category filter and sort order
type ViewState struct {
	SearchTerm string          `json:"search_term"`
	Category   string          `json:"category"`
	Sort       catalog.SortKey `json:"sort"`
}

// Session is one operator's terminal: a catalog view, a cart, a checkout
// flow and the per-session order history. Every public method takes the
// session lock, so each operation is atomic with respect to the others.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	lastSeen      time.Time
	view          ViewState
	store         *catalog.Store
	cart          *cart.Engine
	checkout      *checkout.Orchestrator
	history       *order.HistoryLog
	notifications *notify.Buffer
}

// newSession wires a fresh session from the manager's shared dependencies
func newSession(store *catalog.Store, sink order.Sink, notifier *notify.Buffer, logger *logrus.Entry, submitTimeout time.Duration) *Session {
	cartEngine := cart.NewEngine(notifier)
	history := order.NewHistoryLog()
	now := time.Now()
	return &Session{
		ID:            uuid.NewString(),
		CreatedAt:     now,
		lastSeen:      now,
		view:          ViewState{Category: catalog.CategoryAll, Sort: catalog.SortByName},
		store:         store,
		cart:          cartEngine,
		checkout:      checkout.NewOrchestrator(cartEngine, history, sink, notifier, logger, submitTimeout),
		history:       history,
		notifications: notifier,
	}
}

// SetSearch updates the search term
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SearchTerm = term
}

// SetCategory updates the category filter
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = catalog.CategoryAll
	}
	s.view.Category = category
}

// SetSort updates the sort order
func (s *Session) SetSort(key catalog.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case catalog.SortByName, catalog.SortByPrice, catalog.SortByStock:
		s.view.Sort = key
	}
}

// View returns the current view state
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// VisibleProducts returns the catalog exactly as this terminal shows it:
// filtered by the session's search and category, in the session's sort
// order. Digit quick-add indexes into this slice.
func (s *Session) VisibleProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *Session) visibleLocked() []catalog.Product {
	return s.store.View(s.view.SearchTerm, s.view.Category, s.view.Sort)
}

// Categories returns the category filter options
func (s *Session) Categories() []string {
	return s.store.Categories()
}

// RefreshCatalog re-pulls the shared catalog snapshot
func (s *Session) RefreshCatalog(ctx context.Context) error {
	return s.store.Refresh(ctx)
}

// AddProduct adds quantity units of the identified product to the cart
func (s *Session) AddProduct(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.store.FindByID(productID)
	if product == nil {
		return ErrUnknownProduct
	}
	return s.cart.Add(*product, quantity)
}

// UpdateQuantity sets a cart line's quantity; zero or less removes the line
func (s *Session) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.UpdateQuantity(productID, quantity)
}

// RemoveLine removes a cart line; a no-op when the line is absent
func (s *Session) RemoveLine(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
}

// ClearCart empties the cart and resets the discount
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// SetDiscountPercent sets the cart-level discount, clamped to [0, 100]
func (s *Session) SetDiscountPercent(value decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetDiscountPercent(value)
}

// OpenPayment opens the payment dialog
func (s *Session) OpenPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.OpenPayment()
}

// CancelPayment closes the payment dialog without touching the cart
func (s *Session) CancelPayment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.Cancel()
}

// SetPaymentMethod selects the payment method while the dialog is open
func (s *Session) SetPaymentMethod(method order.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.SetMethod(method)
}

// SetCashTendered records the cash amount entered by the operator
func (s *Session) SetCashTendered(amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.SetCashTendered(amount)
}

// SetCustomerName records the optional customer name
func (s *Session) SetCustomerName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.SetCustomerName(name)
}

// SetCheckoutDiscount edits the discount inside the payment dialog
func (s *Session) SetCheckoutDiscount(value decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.SetDiscountPercent(value)
}

// Confirm finalizes the sale
func (s *Session) Confirm() (*order.CompletedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Confirm()
}

// OpenHistory opens the order-history dialog
func (s *Session) OpenHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.OpenHistory()
}

// CloseDialogs closes every open dialog; idempotent
func (s *Session) CloseDialogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.CloseAll()
}

// Orders returns this session's completed orders, newest first
func (s *Session) Orders() []*order.CompletedOrder {
	return s.history.List()
}

// FindOrder returns a completed order from this session's history, or nil
func (s *Session) FindOrder(id string) *order.CompletedOrder {
	return s.history.FindByID(id)
}

// ShowReceipt reopens the receipt dialog for a past order from history
func (s *Session) ShowReceipt(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	past := s.history.FindByID(orderID)
	if past == nil {
		return ErrUnknownOrder
	}
	s.checkout.ShowReceipt(past)
	return nil
}

// ErrUnknownOrder is returned when a receipt is requested for an order id
// absent from the session history
var ErrUnknownOrder = errors.New("unknown order")

// DrainNotifications returns the queued toast events and clears the queue
func (s *Session) DrainNotifications() []notify.Event {
	return s.notifications.Drain()
}

// CartSnapshot is the cart as the HTTP layer reports it
type CartSnapshot struct {
	Lines           []cart.Line `json:"lines"`
	ItemCount       int         `json:"item_count"`
	Subtotal        string      `json:"subtotal"`
	DiscountPercent string      `json:"discount_percent"`
	DiscountAmount  string      `json:"discount_amount"`
	Total           string      `json:"total"`
}

// CheckoutSnapshot is the checkout flow's visible state
type CheckoutSnapshot struct {
	State       checkout.State     `json:"state"`
	Selection   checkout.Selection `json:"selection"`
	InlineError string             `json:"inline_error,omitempty"`
	PaymentOpen bool               `json:"payment_open"`
	HistoryOpen bool               `json:"history_open"`
	ReceiptOpen bool               `json:"receipt_open"`
}

// Snapshot is the full session state returned to the UI shell after each
// operation
type Snapshot struct {
	SessionID string           `json:"session_id"`
	View      ViewState        `json:"view"`
	Cart      CartSnapshot     `json:"cart"`
	Checkout  CheckoutSnapshot `json:"checkout"`
	OrderID   string           `json:"current_order_id,omitempty"`
}

// Snapshot captures the session state under the lock
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.ID,
		View:      s.view,
		Cart: CartSnapshot{
			Lines:           s.cart.Lines(),
			ItemCount:       s.cart.ItemCount(),
			Subtotal:        s.cart.Subtotal().StringFixed(2),
			DiscountPercent: s.cart.DiscountPercent().String(),
			DiscountAmount:  s.cart.DiscountAmount().StringFixed(2),
			Total:           s.cart.Total().StringFixed(2),
		},
		Checkout: CheckoutSnapshot{
			State:       s.checkout.State(),
			Selection:   s.checkout.Selection(),
			InlineError: s.checkout.InlineError(),
			PaymentOpen: s.checkout.PaymentOpen(),
			HistoryOpen: s.checkout.HistoryOpen(),
			ReceiptOpen: s.checkout.ReceiptOpen(),
		},
	}
	if current := s.checkout.CurrentOrder(); current != nil {
		snap.OrderID = current.ID
	}
	return snap
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// Manager owns the live terminal sessions and the dependencies they share
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	source catalog.Source
	sink   order.Sink
	cfg    *config.Config
	logger *logrus.Entry
}

// NewManager creates an empty session registry
func NewManager(source catalog.Source, sink order.Sink, cfg *config.Config, logger *logrus.Entry) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		source:   source,
		sink:     sink,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create starts a new terminal session and loads its catalog snapshot.
// A catalog failure does not abort the session: the terminal opens with an
// empty product list and the operator sees the load-failure toast.
func (m *Manager) Create(ctx context.Context) *Session {
	notifier := notify.NewBuffer()
	store := catalog.NewStore(m.source, notifier, m.logger)
	session := newSession(store, m.sink, notifier, m.logger, m.cfg.Store.SubmitTimeout)

	if err := store.Refresh(ctx); err != nil && m.logger != nil {
		m.logger.WithError(err).WithField("session_id", session.ID).Warn("session started with empty catalog")
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get returns the session with the given id
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// Delete removes the session; a no-op when absent
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
