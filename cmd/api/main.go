package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	creditUseCase "github.com/savelyko/token-ledger/internal/domain/usecase/credit"
	ledgerUseCase "github.com/savelyko/token-ledger/internal/domain/usecase/ledger"

	"github.com/savelyko/token-ledger/internal/domain/port/notification"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/database"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/logger"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/notifier"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/savelyko/token-ledger/internal/infrastructure/adapter/time"
	"github.com/savelyko/token-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run schema migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repository
	ledgerRepo := repository.NewLedgerRepository(dbManager.DB(), tp, appLogger)

	// Outbound notification channel
	var creditNotifier notification.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		creditNotifier, err = notifier.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.SendTimeout, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier, notifications disabled", map[string]any{
				"error": err.Error(),
			})
			creditNotifier = notifier.NewNoopNotifier()
		}
	} else {
		appLogger.Warn("Telegram notifications disabled", map[string]any{
			"enabled":   cfg.Telegram.Enabled,
			"has_token": cfg.Telegram.Token != "",
		})
		creditNotifier = notifier.NewNoopNotifier()
	}

	// Initialize use cases
	ledgerUseCaseImpl := ledgerUseCase.NewUseCase(ledgerRepo, cfg.Ledger.WelcomeBalance, tp, appLogger)
	creditUseCaseImpl := creditUseCase.NewService(
		ledgerRepo,
		cfg.Pricing.TierTable(),
		creditNotifier,
		tp,
		appLogger,
		cfg.Telegram.SendTimeout,
	)

	// Initialize API handlers
	webhookHandler := handler.NewWebhookHandler(creditUseCaseImpl, appLogger)
	ledgerHandler := handler.NewLedgerHandler(ledgerUseCaseImpl, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, webhookHandler, ledgerHandler, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("TL_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or TL_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}
	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("TL_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or TL_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}
	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("TL_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or TL_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}
	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("TL_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or TL_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Telegram.Enabled && cfg.Telegram.Token == "" && os.Getenv("TL_TELEGRAM_TOKEN") == "" {
		missingConfigs = append(missingConfigs, "telegram.token (or TL_TELEGRAM_TOKEN environment variable)")
	}

	if len(cfg.Pricing.Tiers) == 0 {
		missingConfigs = append(missingConfigs, "pricing.tiers")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
