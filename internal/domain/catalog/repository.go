// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Source supplies catalog snapshots. The store treats results as read-only
// and refreshes only on demand; there is no live stock push.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Repository is the database-backed catalog source
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns all products in catalog insertion order
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByID returns a single product or gorm.ErrRecordNotFound
func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return &product, nil
}
