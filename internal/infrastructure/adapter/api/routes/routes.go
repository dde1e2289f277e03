package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	webhookHandler *handler.WebhookHandler,
	ledgerHandler *handler.LedgerHandler,
	logger coreport.Logger,
) {
	// Payment provider webhook
	router.POST("/payment-webhook", middleware.ProviderIPFilter(logger), webhookHandler.HandlePayment)

	// Bot-facing ledger routes
	userRoutes := router.Group("/user")
	{
		userRoutes.GET("/:userId/balance", ledgerHandler.GetBalance)
		userRoutes.POST("/:userId/register", ledgerHandler.RegisterUser)
		userRoutes.POST("/:userId/credit", ledgerHandler.Credit)
		userRoutes.POST("/:userId/debit", ledgerHandler.Debit)
	}

	usersRoutes := router.Group("/users")
	{
		usersRoutes.GET("/count", ledgerHandler.CountUsers)
		usersRoutes.GET("/ids", ledgerHandler.ListUserIDs)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.Default())
}
