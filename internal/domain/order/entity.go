// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/cart"
)

// PaymentMethod enumerates how a sale was settled
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentQR       PaymentMethod = "qr"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether the method is one of the known values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentQR, PaymentTransfer:
		return true
	}
	return false
}

// Label returns the operator-facing label for the method
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "เงินสด"
	case PaymentCard:
		return "บัตรเครดิต"
	case PaymentQR:
		return "QR Code"
	case PaymentTransfer:
		return "โอนเงิน"
	}
	return string(m)
}

// CompletedOrder is an immutable record of a finalized sale. Once created
// it is pure history: the item snapshot never changes when the live cart
// mutates afterwards.
type CompletedOrder struct {
	ID            string          `gorm:"primaryKey;size:64" json:"id"`
	Items         []cart.Line     `gorm:"serializer:json" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null" json:"payment_method"`
	CashReceived  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cash_received"`
	Change        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"change"`
	Timestamp     time.Time       `gorm:"not null;index" json:"timestamp"`
	CustomerName  string          `gorm:"size:255" json:"customer_name,omitempty"`
}

// TableName overrides the table name
func (CompletedOrder) TableName() string {
	return "completed_orders"
}

// NewOrderID generates a session-unique order id. The millisecond prefix
// matches the receipt numbering operators already know; the uuid suffix
// keeps two terminals from colliding within the same millisecond.
func NewOrderID(at time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}

// ItemCount is the sum of all item quantities
func (o *CompletedOrder) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
