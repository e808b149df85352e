// internal/domain/order/history.go
package order

import "sync"

// HistoryLog is the append-only, session-scoped record of completed orders,
// newest first. No update or delete operation exists.
type HistoryLog struct {
	mu     sync.RWMutex
	orders []*CompletedOrder
}

// NewHistoryLog creates an empty history log
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append records a completed order at the head of the log
func (h *HistoryLog) Append(order *CompletedOrder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = append([]*CompletedOrder{order}, h.orders...)
}

// List returns the completed orders, newest first
func (h *HistoryLog) List() []*CompletedOrder {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*CompletedOrder, len(h.orders))
	copy(out, h.orders)
	return out
}

// FindByID returns the order with the given id, or nil; used for receipt
// redisplay from the history dialog
func (h *HistoryLog) FindByID(id string) *CompletedOrder {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, o := range h.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Len returns the number of completed orders
func (h *HistoryLog) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.orders)
}
