// internal/domain/cart/engine.go
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
)

var (
	// ErrOutOfStock is returned when an add targets a product with no stock
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrInsufficientStock is returned when a line's quantity would exceed
	// the product's available stock
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
)

var oneHundred = decimal.NewFromInt(100)

// Line is one product's presence in the active cart. The product is a
// value snapshot taken at add time.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Engine owns the mutable cart of a terminal session: its lines in insertion
// order plus the cart-level discount. All totals are derived on every read;
// nothing is cached. One Engine lives per terminal session.
type Engine struct {
	lines           []Line
	discountPercent decimal.Decimal
	notifier        notify.Sink
}

// NewEngine creates an empty cart wired to the given notification sink
func NewEngine(notifier notify.Sink) *Engine {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Engine{notifier: notifier}
}

// Add puts quantity units of the product into the cart, merging into the
// existing line when one exists. The cart is left untouched on failure.
func (e *Engine) Add(product catalog.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	if product.Stock <= 0 {
		e.notifier.Notify(notify.Event{Kind: notify.KindError, Message: "สินค้าหมดสต็อก"})
		return ErrOutOfStock
	}

	idx := e.lineIndex(product.ID)
	newQuantity := quantity
	if idx >= 0 {
		newQuantity = e.lines[idx].Quantity + quantity
	}
	if newQuantity > product.Stock {
		e.notifier.Notify(notify.Event{Kind: notify.KindError, Message: "จำนวนสินค้าเกินสต็อกที่มี"})
		return ErrInsufficientStock
	}

	if idx >= 0 {
		e.lines[idx].Quantity = newQuantity
		e.lines[idx].Subtotal = lineSubtotal(e.lines[idx].Product, newQuantity)
	} else {
		e.lines = append(e.lines, Line{
			Product:  product,
			Quantity: newQuantity,
			Subtotal: lineSubtotal(product, newQuantity),
		})
	}

	e.notifier.Notify(notify.Event{
		Kind:    notify.KindSuccess,
		Message: fmt.Sprintf("เพิ่ม %s ลงตะกร้าแล้ว", product.Name),
	})
	return nil
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line; a quantity above the product's stock fails and leaves
// the line unchanged.
func (e *Engine) UpdateQuantity(productID string, newQuantity int) error {
	if newQuantity <= 0 {
		e.Remove(productID)
		return nil
	}

	idx := e.lineIndex(productID)
	if idx < 0 {
		return nil
	}

	if newQuantity > e.lines[idx].Product.Stock {
		e.notifier.Notify(notify.Event{Kind: notify.KindError, Message: "จำนวนสินค้าเกินสต็อกที่มี"})
		return ErrInsufficientStock
	}

	e.lines[idx].Quantity = newQuantity
	e.lines[idx].Subtotal = lineSubtotal(e.lines[idx].Product, newQuantity)
	e.notifier.Notify(notify.Event{
		Kind:    notify.KindInfo,
		Message: fmt.Sprintf("ปรับจำนวน %s เป็น %d", e.lines[idx].Product.Name, newQuantity),
	})
	return nil
}

// Remove deletes the line if present. Removing an absent line is a no-op,
// not an error.
func (e *Engine) Remove(productID string) {
	idx := e.lineIndex(productID)
	if idx < 0 {
		return
	}
	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	e.notifier.Notify(notify.Event{Kind: notify.KindInfo, Message: "ลบสินค้าออกจากตะกร้าแล้ว"})
}

// Clear empties the cart and resets the discount to zero
func (e *Engine) Clear() {
	e.lines = nil
	e.discountPercent = decimal.Zero
	e.notifier.Notify(notify.Event{Kind: notify.KindInfo, Message: "เคลียร์ตะกร้าสินค้าแล้ว"})
}

// Reset empties the cart without notifying; used after a completed sale
// where payment success is the notification.
func (e *Engine) Reset() {
	e.lines = nil
	e.discountPercent = decimal.Zero
}

// SetDiscountPercent stores the cart-level discount, clamped to [0, 100].
// Out-of-range values are clamped, never rejected.
func (e *Engine) SetDiscountPercent(value decimal.Decimal) {
	if value.IsNegative() {
		value = decimal.Zero
	}
	if value.GreaterThan(oneHundred) {
		value = oneHundred
	}
	e.discountPercent = value
}

// DiscountPercent returns the current cart-level discount
func (e *Engine) DiscountPercent() decimal.Decimal {
	return e.discountPercent
}

// Lines returns a copy of the cart lines in insertion order
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// Subtotal is the sum of all line subtotals
func (e *Engine) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range e.lines {
		sum = sum.Add(line.Subtotal)
	}
	return sum
}

// DiscountAmount is subtotal × discountPercent / 100
func (e *Engine) DiscountAmount() decimal.Decimal {
	return e.Subtotal().Mul(e.discountPercent).Div(oneHundred)
}

// Total is the subtotal less the discount amount
func (e *Engine) Total() decimal.Decimal {
	return e.Subtotal().Sub(e.DiscountAmount())
}

// ItemCount is the sum of all line quantities
func (e *Engine) ItemCount() int {
	count := 0
	for _, line := range e.lines {
		count += line.Quantity
	}
	return count
}

func (e *Engine) lineIndex(productID string) int {
	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func lineSubtotal(product catalog.Product, quantity int) decimal.Decimal {
	return product.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
