// internal/interfaces/http/handlers/orders.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/domain/receipt"
	"gorm.io/gorm"
)

// OrdersHandler exposes persisted orders across all sessions
type OrdersHandler struct {
	repo     *order.Repository
	cache    *order.ReceiptCache
	renderer *receipt.Renderer
	pdf      *receipt.PDFService
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(db *gorm.DB, cache *order.ReceiptCache, cfg *config.Config) *OrdersHandler {
	renderer := receipt.NewRenderer(cfg.Store)
	return &OrdersHandler{
		repo:     order.NewRepository(db),
		cache:    cache,
		renderer: renderer,
		pdf:      receipt.NewPDFService(renderer),
	}
}

// List returns persisted orders, newest first
func (h *OrdersHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// Get returns one persisted order
func (h *OrdersHandler) Get(c *gin.Context) {
	completed, err := h.find(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": completed})
}

// Receipt renders an order's receipt as plain text
func (h *OrdersHandler) Receipt(c *gin.Context) {
	completed, err := h.find(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.String(http.StatusOK, h.renderer.Render(completed).Text())
}

// ReceiptPDF renders an order's receipt as a PDF
func (h *OrdersHandler) ReceiptPDF(c *gin.Context) {
	completed, err := h.find(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	buf, err := h.pdf.GenerateReceipt(completed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+completed.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// find resolves an order id, preferring the Redis receipt cache over the
// database
func (h *OrdersHandler) find(c *gin.Context) (*order.CompletedOrder, error) {
	id := c.Param("id")

	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), id); err == nil {
			return cached, nil
		}
	}
	return h.repo.FindByID(c.Request.Context(), id)
}
