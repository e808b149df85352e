// internal/domain/receipt/renderer.go
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/order"
)

// LineItem is one receipt row
type LineItem struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// Document is the fully rendered receipt. All amounts are fixed to two
// decimal places; rendering the same order twice yields identical documents.
type Document struct {
	StoreName    string     `json:"store_name"`
	Tagline      string     `json:"tagline,omitempty"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	OrderID      string     `json:"order_id"`
	Timestamp    string     `json:"timestamp"`
	CustomerName string     `json:"customer_name,omitempty"`
	Lines        []LineItem `json:"lines"`
	Total        string     `json:"total"`
	PaymentLabel string     `json:"payment_label"`
	// Tendered and Change are populated for cash sales only. Change is
	// also suppressed when it is exactly zero.
	Tendered string `json:"tendered,omitempty"`
	Change   string `json:"change,omitempty"`
	Footer   string `json:"footer"`
}

// Renderer projects completed orders into receipt documents using the
// configured store identity
type Renderer struct {
	store config.StoreConfig
}

// NewRenderer creates a receipt renderer
func NewRenderer(store config.StoreConfig) *Renderer {
	return &Renderer{store: store}
}

// Render builds the receipt document for a completed order. The document is
// derived from the order's own snapshot and timestamp, never from the live
// cart or clock.
func (r *Renderer) Render(o *order.CompletedOrder) *Document {
	doc := &Document{
		StoreName:    r.store.Name,
		Tagline:      r.store.Tagline,
		Address:      r.store.Address,
		Phone:        r.store.Phone,
		OrderID:      o.ID,
		Timestamp:    o.Timestamp.Format("02/01/2006 15:04:05"),
		CustomerName: o.CustomerName,
		Total:        o.Total.StringFixed(2),
		PaymentLabel: o.PaymentMethod.Label(),
		Footer:       r.store.ReceiptFooter,
	}

	for _, item := range o.Items {
		doc.Lines = append(doc.Lines, LineItem{
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal.StringFixed(2),
		})
	}

	if o.PaymentMethod == order.PaymentCash {
		doc.Tendered = o.CashReceived.StringFixed(2)
		if !o.Change.Equal(decimal.Zero) {
			doc.Change = o.Change.StringFixed(2)
		}
	}

	return doc
}

const ticketWidth = 40

// Text renders the document as a monospace ticket for 58mm thermal printers
// and the plain-text receipt endpoint
func (d *Document) Text() string {
	var b strings.Builder
	divider := strings.Repeat("-", ticketWidth)

	center(&b, d.StoreName)
	if d.Tagline != "" {
		center(&b, d.Tagline)
	}
	if d.Address != "" {
		center(&b, d.Address)
	}
	if d.Phone != "" {
		center(&b, "โทร. "+d.Phone)
	}
	b.WriteString(divider + "\n")

	fmt.Fprintf(&b, "เลขที่: %s\n", d.OrderID)
	fmt.Fprintf(&b, "วันที่: %s\n", d.Timestamp)
	if d.CustomerName != "" {
		fmt.Fprintf(&b, "ลูกค้า: %s\n", d.CustomerName)
	}
	b.WriteString(divider + "\n")

	for _, line := range d.Lines {
		b.WriteString(line.Name + "\n")
		left := fmt.Sprintf("  %s x %d", line.UnitPrice, line.Quantity)
		pad := ticketWidth - len([]rune(left)) - len([]rune(line.Subtotal))
		if pad < 1 {
			pad = 1
		}
		b.WriteString(left + strings.Repeat(" ", pad) + line.Subtotal + "\n")
	}
	b.WriteString(divider + "\n")

	row(&b, "รวมทั้งสิ้น", d.Total)
	row(&b, "ชำระโดย", d.PaymentLabel)
	if d.Tendered != "" {
		row(&b, "รับเงิน", d.Tendered)
	}
	if d.Change != "" {
		row(&b, "เงินทอน", d.Change)
	}
	b.WriteString(divider + "\n")

	center(&b, d.Footer)
	return b.String()
}

func center(b *strings.Builder, s string) {
	pad := (ticketWidth - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}

func row(b *strings.Builder, label, value string) {
	pad := ticketWidth - len([]rune(label)) - len([]rune(value))
	if pad < 1 {
		pad = 1
	}
	b.WriteString(label + strings.Repeat(" ", pad) + value + "\n")
}
