package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ferhadbb/BankSite/internal/config"
	"github.com/Ferhadbb/BankSite/internal/database"
	"github.com/Ferhadbb/BankSite/internal/handlers"
	appmiddleware "github.com/Ferhadbb/BankSite/internal/middleware"
	"github.com/Ferhadbb/BankSite/internal/repositories"
	"github.com/Ferhadbb/BankSite/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional, real deployments configure through the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	cardRepo := repositories.NewCardRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.Auth)
	accountService := services.NewAccountService(accountRepo, transactionRepo, userRepo, metrics, logger)
	ledgerService := services.NewLedgerService(accountRepo, cfg.Interest, metrics, logger)
	cardService := services.NewCardService(cardRepo, accountRepo, logger)
	authService := services.NewAuthService(userRepo, blacklistedTokenRepo, passwordService, tokenService, accountService, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	cardHandler := handlers.NewCardHandler(cardService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.PanicRecovery())
	e.Use(appmiddleware.SecurityHeaders())
	e.Use(appmiddleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Public routes
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	auth := api.Group("", appmiddleware.RequireAuth(tokenService, blacklistedTokenRepo))
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/profile", authHandler.GetProfile)
	auth.PUT("/profile", authHandler.UpdateProfile)
	auth.PUT("/profile/password", authHandler.ChangePassword)

	auth.POST("/accounts", accountHandler.OpenAccount)
	auth.GET("/accounts", accountHandler.ListAccounts)
	auth.GET("/accounts/:id", accountHandler.GetAccount)
	auth.GET("/accounts/:id/transactions", accountHandler.GetTransactions)
	auth.GET("/accounts/:id/transactions/recent", accountHandler.GetRecentTransactions)
	auth.GET("/accounts/:id/cards", cardHandler.ListCards)

	auth.POST("/ledger/deposit", ledgerHandler.Deposit)
	auth.POST("/ledger/withdraw", ledgerHandler.Withdraw)
	auth.POST("/ledger/transfer", ledgerHandler.Transfer)
	auth.POST("/ledger/interest/sweep", ledgerHandler.RunInterestSweep)

	auth.POST("/cards", cardHandler.IssueCard)
	auth.DELETE("/cards/:id", cardHandler.DeactivateCard)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Interest.SweepEnabled {
		scheduler := services.NewInterestScheduler(ledgerService, metrics, logger, cfg.Interest.SweepInterval)
		go scheduler.Start(ctx)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	logger.Info("server started", slog.String("addr", server.Addr))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
