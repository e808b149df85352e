// internal/interfaces/http/handlers/terminal.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/checkout"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/domain/receipt"
	"github.com/your-org/pos-terminal/internal/domain/terminal"
)

// TerminalHandler drives one POS terminal session over HTTP. Each response
// carries the session snapshot plus the toast notifications queued since
// the previous request, so the web shell stays a thin projection.
type TerminalHandler struct {
	manager  *terminal.Manager
	renderer *receipt.Renderer
	pdf      *receipt.PDFService
}

// NewTerminalHandler creates a new terminal handler
func NewTerminalHandler(manager *terminal.Manager, cfg *config.Config) *TerminalHandler {
	renderer := receipt.NewRenderer(cfg.Store)
	return &TerminalHandler{
		manager:  manager,
		renderer: renderer,
		pdf:      receipt.NewPDFService(renderer),
	}
}

func (h *TerminalHandler) session(c *gin.Context) *terminal.Session {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil
	}
	return session
}

// respond returns the standard post-operation payload
func (h *TerminalHandler) respond(c *gin.Context, status int, session *terminal.Session) {
	c.JSON(status, gin.H{
		"snapshot":      session.Snapshot(),
		"notifications": session.DrainNotifications(),
	})
}

// CreateSession opens a new terminal session and loads its catalog
func (h *TerminalHandler) CreateSession(c *gin.Context) {
	session := h.manager.Create(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{
		"snapshot":      session.Snapshot(),
		"categories":    session.Categories(),
		"products":      session.VisibleProducts(),
		"notifications": session.DrainNotifications(),
	})
}

// GetSession returns the session snapshot
func (h *TerminalHandler) GetSession(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	h.respond(c, http.StatusOK, session)
}

// DeleteSession closes the terminal session
func (h *TerminalHandler) DeleteSession(c *gin.Context) {
	h.manager.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ViewRequest updates the catalog view
type ViewRequest struct {
	SearchTerm string `json:"search_term"`
	Category   string `json:"category"`
	Sort       string `json:"sort"`
}

// UpdateView sets the search term, category filter and sort order, and
// returns the resulting product list
func (h *TerminalHandler) UpdateView(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	session.SetSearch(req.SearchTerm)
	session.SetCategory(req.Category)
	session.SetSort(catalog.SortKey(req.Sort))

	c.JSON(http.StatusOK, gin.H{
		"view":     session.View(),
		"products": session.VisibleProducts(),
	})
}

// GetProducts returns the catalog as this session currently views it
func (h *TerminalHandler) GetProducts(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":       session.View(),
		"products":   session.VisibleProducts(),
		"categories": session.Categories(),
	})
}

// RefreshCatalog re-pulls the product list from the database
func (h *TerminalHandler) RefreshCatalog(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	if err := session.RefreshCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":         "Catalog refresh failed",
			"notifications": session.DrainNotifications(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":      session.VisibleProducts(),
		"categories":    session.Categories(),
		"notifications": session.DrainNotifications(),
	})
}

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product to the cart, merging quantities for a product
// already present
func (h *TerminalHandler) AddItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := session.AddProduct(req.ProductID, req.Quantity)
	switch {
	case errors.Is(err, terminal.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrInsufficientStock):
		h.respond(c, http.StatusConflict, session)
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
	default:
		h.respond(c, http.StatusOK, session)
	}
}

// UpdateItemRequest changes a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a line's quantity; zero removes the line
func (h *TerminalHandler) UpdateItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := session.UpdateQuantity(c.Param("productId"), req.Quantity); err != nil {
		h.respond(c, http.StatusConflict, session)
		return
	}
	h.respond(c, http.StatusOK, session)
}

// RemoveItem deletes a cart line
func (h *TerminalHandler) RemoveItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.RemoveLine(c.Param("productId"))
	h.respond(c, http.StatusOK, session)
}

// ClearCart empties the cart
func (h *TerminalHandler) ClearCart(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.ClearCart()
	h.respond(c, http.StatusOK, session)
}

// DiscountRequest sets the cart discount
type DiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// SetDiscount stores the cart-level discount percentage
func (h *TerminalHandler) SetDiscount(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	session.SetDiscountPercent(req.Percent)
	h.respond(c, http.StatusOK, session)
}

// OpenCheckout opens the payment dialog
func (h *TerminalHandler) OpenCheckout(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.OpenPayment()
	h.respond(c, http.StatusOK, session)
}

// CheckoutRequest edits the in-progress payment selection. All fields are
// optional; absent fields keep their current value.
type CheckoutRequest struct {
	Method          *string          `json:"method"`
	CashTendered    *string          `json:"cash_tendered"`
	CustomerName    *string          `json:"customer_name"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// UpdateCheckout edits the payment selection while the dialog is open
func (h *TerminalHandler) UpdateCheckout(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.Method != nil {
		if err := session.SetPaymentMethod(order.PaymentMethod(*req.Method)); err != nil {
			h.checkoutError(c, err)
			return
		}
	}
	if req.CashTendered != nil {
		if err := session.SetCashTendered(*req.CashTendered); err != nil {
			h.checkoutError(c, err)
			return
		}
	}
	if req.CustomerName != nil {
		if err := session.SetCustomerName(*req.CustomerName); err != nil {
			h.checkoutError(c, err)
			return
		}
	}
	if req.DiscountPercent != nil {
		if err := session.SetCheckoutDiscount(*req.DiscountPercent); err != nil {
			h.checkoutError(c, err)
			return
		}
	}

	h.respond(c, http.StatusOK, session)
}

// Confirm finalizes the sale
func (h *TerminalHandler) Confirm(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	completed, err := session.Confirm()
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrPaymentNotOpen):
			h.checkoutError(c, err)
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrInsufficientPayment):
			h.respond(c, http.StatusUnprocessableEntity, session)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":         completed,
		"receipt":       h.renderer.Render(completed),
		"snapshot":      session.Snapshot(),
		"notifications": session.DrainNotifications(),
	})
}

// CancelCheckout closes the payment dialog without touching the cart
func (h *TerminalHandler) CancelCheckout(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.CancelPayment()
	h.respond(c, http.StatusOK, session)
}

// OpenHistory opens the order-history dialog
func (h *TerminalHandler) OpenHistory(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.OpenHistory()
	h.respond(c, http.StatusOK, session)
}

// CloseDialogs closes every open dialog
func (h *TerminalHandler) CloseDialogs(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.CloseDialogs()
	h.respond(c, http.StatusOK, session)
}

// DispatchKey routes one keyboard event from the web shell
func (h *TerminalHandler) DispatchKey(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var event terminal.KeyEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	outcome := session.Dispatch(event)
	c.JSON(http.StatusOK, gin.H{
		"outcome":       outcome,
		"snapshot":      session.Snapshot(),
		"notifications": session.DrainNotifications(),
	})
}

// SessionOrders returns the session's completed orders, newest first
func (h *TerminalHandler) SessionOrders(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": session.Orders()})
}

// ShowReceipt reopens the receipt dialog for a past order
func (h *TerminalHandler) ShowReceipt(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	if err := session.ShowReceipt(c.Param("orderId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	h.respond(c, http.StatusOK, session)
}

// SessionReceipt renders a receipt from the session history as plain text
func (h *TerminalHandler) SessionReceipt(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	completed := session.FindOrder(c.Param("orderId"))
	if completed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.String(http.StatusOK, h.renderer.Render(completed).Text())
}

// SessionReceiptPDF renders a receipt from the session history as a PDF
func (h *TerminalHandler) SessionReceiptPDF(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	completed := session.FindOrder(c.Param("orderId"))
	if completed == nil {
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

func (h *TerminalHandler) checkoutError(c *gin.Context, err error) {
	if errors.Is(err, checkout.ErrPaymentNotOpen) {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment dialog is not open"})
		return
	}
	if errors.Is(err, checkout.ErrInvalidPaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
