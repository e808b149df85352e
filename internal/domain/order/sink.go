// internal/domain/order/sink.go
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sink persists finalized orders. The checkout flow submits after the local
// sale is already complete; a failed submit is logged by the caller and the
// sale stands.
type Sink interface {
	Submit(ctx context.Context, order *CompletedOrder) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, order *CompletedOrder) error

// Submit calls f
func (f SinkFunc) Submit(ctx context.Context, order *CompletedOrder) error {
	return f(ctx, order)
}

// NopSink discards orders; used when no backend is configured
var NopSink Sink = SinkFunc(func(context.Context, *CompletedOrder) error { return nil })

// GormSink writes completed orders to the database
type GormSink struct {
	db *gorm.DB
}

// NewGormSink creates a database-backed order sink
func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

// Submit inserts the order row
func (s *GormSink) Submit(ctx context.Context, order *CompletedOrder) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to persist order %s: %w", order.ID, err)
	}
	return nil
}

// ReceiptCache mirrors completed orders into Redis so receipts can be
// redisplayed quickly without touching the database
type ReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReceiptCache creates a Redis-backed receipt cache
func NewReceiptCache(client *redis.Client, ttl time.Duration) *ReceiptCache {
	return &ReceiptCache{client: client, ttl: ttl}
}

func (c *ReceiptCache) key(id string) string {
	return fmt.Sprintf("receipt:%s", id)
}

// Submit caches the order JSON under its receipt key
func (c *ReceiptCache) Submit(ctx context.Context, order *CompletedOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order %s: %w", order.ID, err)
	}
	if err := c.client.Set(ctx, c.key(order.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache receipt %s: %w", order.ID, err)
	}
	return nil
}

// Get returns the cached order, redis.Nil-wrapped error when absent
func (c *ReceiptCache) Get(ctx context.Context, id string) (*CompletedOrder, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt %s: %w", id, err)
	}
	var order CompletedOrder
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return nil, fmt.Errorf("failed to decode receipt %s: %w", id, err)
	}
	return &order, nil
}

// MultiSink submits to each sink in turn, returning the first error
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, order *CompletedOrder) error {
		for _, s := range sinks {
			if err := s.Submit(ctx, order); err != nil {
				return err
			}
		}
		return nil
	})
}

// Repository reads persisted orders back for the orders page and reports
type Repository struct {
	db *gorm.DB
}

// NewRepository creates an order repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns persisted orders, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]CompletedOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []CompletedOrder
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByID returns a persisted order or gorm.ErrRecordNotFound
func (r *Repository) FindByID(ctx context.Context, id string) (*CompletedOrder, error) {
	var order CompletedOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return &order, nil
}

// SalesSummary aggregates the persisted orders for the reports page
type SalesSummary struct {
	OrderCount int64                   `json:"order_count"`
	GrossSales string                  `json:"gross_sales"`
	ItemsSold  int                     `json:"items_sold"`
	ByMethod   map[PaymentMethod]int64 `json:"by_method"`
}

// Summarize computes the sales summary over all persisted orders since the
// given time
func (r *Repository) Summarize(ctx context.Context, since time.Time) (*SalesSummary, error) {
	var orders []CompletedOrder
	err := r.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize orders: %w", err)
	}

	summary := &SalesSummary{ByMethod: map[PaymentMethod]int64{}}
	gross := ordersTotal(orders)
	for _, o := range orders {
		summary.OrderCount++
		summary.ItemsSold += o.ItemCount()
		summary.ByMethod[o.PaymentMethod]++
	}
	summary.GrossSales = gross.StringFixed(2)
	return summary, nil
}

func ordersTotal(orders []CompletedOrder) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum
}
