// internal/domain/checkout/orchestrator.go
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
)

var (
	// ErrEmptyCart is returned when confirm is attempted with no lines.
	// Unreachable via the UI, but checked defensively.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientPayment is returned when the cash tendered does not
	// cover the amount due
	ErrInsufficientPayment = errors.New("cash received is less than the amount due")
	// ErrPaymentNotOpen is returned when confirm is attempted outside the
	// payment dialog
	ErrPaymentNotOpen = errors.New("payment dialog is not open")
	// ErrInvalidPaymentMethod is returned for a method outside the
	// enumerated set
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// State is the checkout flow's position
type State string

const (
	StateIdle             State = "idle"
	StateSelectingPayment State = "selecting_payment"
)

// Selection is the operator's in-progress checkout choice. It exists only
// while the payment dialog is open and is discarded on confirm or cancel.
type Selection struct {
	Method          order.PaymentMethod `json:"method"`
	CashTendered    string              `json:"cash_tendered"`
	CustomerName    string              `json:"customer_name"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
}

// Orchestrator sequences payment-method selection, cash validation, order
// finalization and receipt emission for one terminal session
type Orchestrator struct {
	cart          *cart.Engine
	history       *order.HistoryLog
	sink          order.Sink
	notifier      notify.Sink
	logger        *logrus.Entry
	submitTimeout time.Duration
	now           func() time.Time

	state       State
	selection   Selection
	inlineError string

	currentOrder *order.CompletedOrder
	receiptOpen  bool
	historyOpen  bool
}

// NewOrchestrator creates an idle checkout flow for the given cart
func NewOrchestrator(cartEngine *cart.Engine, history *order.HistoryLog, sink order.Sink, notifier notify.Sink, logger *logrus.Entry, submitTimeout time.Duration) *Orchestrator {
	if notifier == nil {
		notifier = notify.Discard
	}
	if sink == nil {
		sink = order.NopSink
	}
	if submitTimeout <= 0 {
		submitTimeout = 10 * time.Second
	}
	return &Orchestrator{
		cart:          cartEngine,
		history:       history,
		sink:          sink,
		notifier:      notifier,
		logger:        logger,
		submitTimeout: submitTimeout,
		now:           time.Now,
		state:         StateIdle,
	}
}

// State returns the current checkout state
func (o *Orchestrator) State() State {
	return o.state
}

// Selection returns the in-progress payment selection
func (o *Orchestrator) Selection() Selection {
	return o.selection
}

// InlineError returns the validation message shown inside the open payment
// dialog, empty when none
func (o *Orchestrator) InlineError() string {
	return o.inlineError
}

// PaymentOpen reports whether the payment dialog is open
func (o *Orchestrator) PaymentOpen() bool {
	return o.state == StateSelectingPayment
}

// HistoryOpen reports whether the order-history dialog is open
func (o *Orchestrator) HistoryOpen() bool {
	return o.historyOpen
}

// ReceiptOpen reports whether the receipt dialog is open
func (o *Orchestrator) ReceiptOpen() bool {
	return o.receiptOpen
}

// CurrentOrder returns the order shown in the receipt dialog, nil when none
func (o *Orchestrator) CurrentOrder() *order.CompletedOrder {
	return o.currentOrder
}

// OpenPayment opens the payment dialog: method defaults to cash, tendered
// amount empty, discount initialized from the cart
func (o *Orchestrator) OpenPayment() {
	o.state = StateSelectingPayment
	o.selection = Selection{
		Method:          order.PaymentCash,
		DiscountPercent: o.cart.DiscountPercent(),
	}
	o.inlineError = ""
}

// Cancel discards the in-progress selection and returns to idle. The cart
// is untouched.
func (o *Orchestrator) Cancel() {
	o.state = StateIdle
	o.selection = Selection{}
	o.inlineError = ""
}

// OpenHistory opens the order-history dialog
func (o *Orchestrator) OpenHistory() {
	o.historyOpen = true
}

// ShowReceipt reopens the receipt dialog for a past order
func (o *Orchestrator) ShowReceipt(pastOrder *order.CompletedOrder) {
	if pastOrder == nil {
		return
	}
	o.currentOrder = pastOrder
	o.receiptOpen = true
	o.historyOpen = false
}

// CloseAll closes every dialog in one dispatch; idempotent when none are
// open. Escape maps here.
func (o *Orchestrator) CloseAll() {
	if o.state == StateSelectingPayment {
		o.Cancel()
	}
	o.historyOpen = false
	o.receiptOpen = false
}

// SetMethod selects the payment method while the dialog is open
func (o *Orchestrator) SetMethod(method order.PaymentMethod) error {
	if o.state != StateSelectingPayment {
		return ErrPaymentNotOpen
	}
	if !method.Valid() {
		return ErrInvalidPaymentMethod
	}
	o.selection.Method = method
	return nil
}

// SetCashTendered records the operator's keypad entry. Kept as the raw
// string until confirm, matching the dialog's text field.
func (o *Orchestrator) SetCashTendered(amount string) error {
	if o.state != StateSelectingPayment {
		return ErrPaymentNotOpen
	}
	o.selection.CashTendered = amount
	return nil
}

// SetCustomerName records the optional customer name
func (o *Orchestrator) SetCustomerName(name string) error {
	if o.state != StateSelectingPayment {
		return ErrPaymentNotOpen
	}
	o.selection.CustomerName = name
	return nil
}

// SetDiscountPercent edits the discount inside the dialog, clamped to
// [0, 100] like the cart's own discount
func (o *Orchestrator) SetDiscountPercent(value decimal.Decimal) error {
	if o.state != StateSelectingPayment {
		return ErrPaymentNotOpen
	}
	if value.IsNegative() {
		value = decimal.Zero
	}
	if value.GreaterThan(decimal.NewFromInt(100)) {
		value = decimal.NewFromInt(100)
	}
	o.selection.DiscountPercent = value
	return nil
}

// Confirm validates the selection and finalizes the sale. On success the
// cart is cleared, the order is appended to history, the receipt dialog
// opens and the order is submitted to the persistence sink asynchronously.
// On validation failure the dialog stays open with an inline error and the
// cart is untouched.
func (o *Orchestrator) Confirm() (*order.CompletedOrder, error) {
	if o.state != StateSelectingPayment {
		return nil, ErrPaymentNotOpen
	}

	if o.cart.IsEmpty() {
		o.notifier.Notify(notify.Event{Kind: notify.KindError, Message: "ไม่มีสินค้าในตะกร้า"})
		return nil, ErrEmptyCart
	}

	// The dialog's discount edit takes effect on the cart before the
	// amount due is computed.
	o.cart.SetDiscountPercent(o.selection.DiscountPercent)
	total := o.cart.Total()

	var cashReceived, change decimal.Decimal
	if o.selection.Method == order.PaymentCash {
		tendered, err := decimal.NewFromString(o.selection.CashTendered)
		if err != nil {
			tendered = decimal.Zero
		}
		if tendered.LessThan(total) {
			o.inlineError = "จำนวนเงินไม่เพียงพอ"
			o.notifier.Notify(notify.Event{Kind: notify.KindError, Message: o.inlineError})
			return nil, ErrInsufficientPayment
		}
		cashReceived = tendered
		change = tendered.Sub(total)
	} else {
		cashReceived = total
		change = decimal.Zero
	}

	finalizedAt := o.now()
	completed := &order.CompletedOrder{
		ID:            order.NewOrderID(finalizedAt),
		Items:         o.cart.Lines(),
		Total:         total,
		PaymentMethod: o.selection.Method,
		CashReceived:  cashReceived,
		Change:        change,
		Timestamp:     finalizedAt,
		CustomerName:  o.selection.CustomerName,
	}

	o.history.Append(completed)
	o.cart.Reset()
	o.state = StateIdle
	o.selection = Selection{}
	o.inlineError = ""
	o.currentOrder = completed
	o.receiptOpen = true

	o.notifier.Notify(notify.Event{Kind: notify.KindSuccess, Message: "ชำระเงินสำเร็จ!"})

	// Local finalize and remote persistence are two explicit phases: the
	// sale above already stands, a failed submit is logged and never rolls
	// it back.
	go o.submit(completed)

	return completed, nil
}

func (o *Orchestrator) submit(completed *order.CompletedOrder) {
	ctx, cancel := context.WithTimeout(context.Background(), o.submitTimeout)
	defer cancel()

	if err := o.sink.Submit(ctx, completed); err != nil {
		if o.logger != nil {
			o.logger.WithError(err).WithField("order_id", completed.ID).Error("order submit failed")
		}
	}
}
