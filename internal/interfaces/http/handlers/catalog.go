// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/pkg/notify"
	"gorm.io/gorm"
)

// CatalogHandler exposes the product catalog outside of any terminal
// session, for the admin screens
type CatalogHandler struct {
	store *catalog.Store
	repo  *catalog.Repository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, logger *logrus.Entry) *CatalogHandler {
	repo := catalog.NewRepository(db)
	return &CatalogHandler{
		store: catalog.NewStore(repo, notify.Discard, logger),
		repo:  repo,
	}
}

// GetProducts lists products, optionally filtered and sorted with the same
// semantics as the terminal view
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load products"})
		return
	}

	products := h.store.View(
		c.Query("search"),
		c.DefaultQuery("category", catalog.CategoryAll),
		catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortByName))),
	)

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": h.store.Categories(),
		"total":      len(products),
	})
}

// GetProduct returns one product by id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
