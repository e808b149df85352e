// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/domain/terminal"
	"github.com/your-org/pos-terminal/internal/interfaces/http/handlers"
	"github.com/your-org/pos-terminal/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// receiptCacheTTL bounds how long finished receipts stay in Redis
const receiptCacheTTL = 24 * time.Hour

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Entry) {
	cache := order.NewReceiptCache(redisClient, receiptCacheTTL)
	sink := order.MultiSink(order.NewGormSink(db), cache)
	manager := terminal.NewManager(catalog.NewRepository(db), sink, cfg, logger)

	setupAuthRoutes(rg, db, cfg)
	setupTerminalRoutes(rg, manager, cfg)
	setupCatalogRoutes(rg, db, cfg, logger)
	setupOrderRoutes(rg, db, cache, cfg)
	setupReportRoutes(rg, db, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.Profile)
		}
	}
}

func setupTerminalRoutes(rg *gin.RouterGroup, manager *terminal.Manager, cfg *config.Config) {
	terminalHandler := handlers.NewTerminalHandler(manager, cfg)

	sessions := rg.Group("/sessions")
	sessions.Use(middleware.AuthMiddleware(cfg))
	{
		sessions.POST("", terminalHandler.CreateSession)
		sessions.GET("/:id", terminalHandler.GetSession)
		sessions.DELETE("/:id", terminalHandler.DeleteSession)

		sessions.GET("/:id/products", terminalHandler.GetProducts)
		sessions.PUT("/:id/view", terminalHandler.UpdateView)
		sessions.POST("/:id/catalog/refresh", terminalHandler.RefreshCatalog)

		sessions.POST("/:id/cart/items", terminalHandler.AddItem)
		sessions.PUT("/:id/cart/items/:productId", terminalHandler.UpdateItem)
		sessions.DELETE("/:id/cart/items/:productId", terminalHandler.RemoveItem)
		sessions.DELETE("/:id/cart", terminalHandler.ClearCart)
		sessions.PUT("/:id/cart/discount", terminalHandler.SetDiscount)

		sessions.POST("/:id/checkout", terminalHandler.OpenCheckout)
		sessions.PUT("/:id/checkout", terminalHandler.UpdateCheckout)
		sessions.POST("/:id/checkout/confirm", terminalHandler.Confirm)
		sessions.DELETE("/:id/checkout", terminalHandler.CancelCheckout)

		sessions.POST("/:id/dialogs/history", terminalHandler.OpenHistory)
		sessions.DELETE("/:id/dialogs", terminalHandler.CloseDialogs)

		sessions.POST("/:id/keys", terminalHandler.DispatchKey)

		sessions.GET("/:id/orders", terminalHandler.SessionOrders)
		sessions.POST("/:id/orders/:orderId/receipt", terminalHandler.ShowReceipt)
		sessions.GET("/:id/orders/:orderId/receipt", terminalHandler.SessionReceipt)
		sessions.GET("/:id/orders/:orderId/receipt.pdf", terminalHandler.SessionReceiptPDF)
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Entry) {
	catalogHandler := handlers.NewCatalogHandler(db, logger)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cache *order.ReceiptCache, cfg *config.Config) {
	ordersHandler := handlers.NewOrdersHandler(db, cache, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", ordersHandler.List)
		orders.GET("/:id", ordersHandler.Get)
		orders.GET("/:id/receipt", ordersHandler.Receipt)
		orders.GET("/:id/receipt.pdf", ordersHandler.ReceiptPDF)
	}
}

func setupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	reportsHandler := handlers.NewReportsHandler(db)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(cfg), middleware.ManagerMiddleware())
	{
		reports.GET("/summary", reportsHandler.Summary)
	}
}
