// internal/domain/catalog/store.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the sentinel category meaning "no filter"
const CategoryAll = "all"

// SortKey selects the product ordering of a catalog view
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
)

// ErrCatalogLoad indicates the catalog snapshot could not be refreshed
var ErrCatalogLoad = errors.New("catalog load failed")

// Store holds an in-memory catalog snapshot and answers the filtering and
// sorting questions the POS screen asks. The snapshot refreshes only on
// demand; a failed refresh keeps the previous snapshot.
type Store struct {
	mu       sync.RWMutex
	source   Source
	notifier notify.Sink
	logger   *logrus.Entry
	products []Product
	collator *collate.Collator
}

// NewStore creates an empty catalog store backed by the given source
func NewStore(source Source, notifier notify.Sink, logger *logrus.Entry) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		source:   source,
		notifier: notifier,
		logger:   logger,
		collator: collate.New(language.Thai),
	}
}

// Refresh replaces the snapshot with a fresh pull from the source. On
// failure the previous snapshot stays in place and the operator is notified.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("catalog refresh failed")
		}
		s.notifier.Notify(notify.Event{Kind: notify.KindError, Message: "ไม่สามารถโหลดสินค้าได้"})
		return fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// List returns the snapshot in catalog insertion order
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindByID returns the product with the given id, or nil
func (s *Store) FindByID(id string) *Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

// Categories returns the distinct category values, prefixed by the
// CategoryAll sentinel, in first-seen order
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Filter returns products whose name contains the search term
// (case-insensitively) or whose barcode contains it (exact substring),
// restricted to the given category unless it is the CategoryAll sentinel.
func (s *Store) Filter(searchTerm, category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(searchTerm)
	var out []Product
	for _, p := range s.products {
		matchesSearch := strings.Contains(strings.ToLower(p.Name), term) ||
			(searchTerm != "" && strings.Contains(p.Barcode, searchTerm))
		if searchTerm == "" {
			matchesSearch = true
		}
		matchesCategory := category == CategoryAll || category == "" || p.Category == category
		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// SortBy orders products by the given key: name ascending with Thai
// collation, price ascending, or stock descending. The sort is stable, so
// ties keep catalog insertion order.
func (s *Store) SortBy(products []Product, key SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch key {
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortByStock:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stock > out[j].Stock
		})
	default:
		// collate.Collator keeps internal buffers, so name sorts serialize
		// behind the write lock.
		s.mu.Lock()
		sort.SliceStable(out, func(i, j int) bool {
			return s.collator.CompareString(out[i].Name, out[j].Name) < 0
		})
		s.mu.Unlock()
	}
	return out
}

// View combines Filter and SortBy: the product list as the POS screen
// currently shows it. Digit quick-add indexes into exactly this slice.
func (s *Store) View(searchTerm, category string, key SortKey) []Product {
	return s.SortBy(s.Filter(searchTerm, category), key)
}
