package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	branchapp "github.com/laundrypos/backend/internal/application/branch"
	customerapp "github.com/laundrypos/backend/internal/application/customer"
	depositapp "github.com/laundrypos/backend/internal/application/deposit"
	reportapp "github.com/laundrypos/backend/internal/application/report"
	"github.com/laundrypos/backend/internal/infrastructure/auth"
	"github.com/laundrypos/backend/internal/infrastructure/cache"
	"github.com/laundrypos/backend/internal/infrastructure/config"
	"github.com/laundrypos/backend/internal/infrastructure/logger"
	"github.com/laundrypos/backend/internal/infrastructure/persistence"
	"github.com/laundrypos/backend/internal/infrastructure/scheduler"
	"github.com/laundrypos/backend/internal/interfaces/http/handler"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
	"github.com/laundrypos/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting laundry POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	depositTypeRepo := persistence.NewGormDepositTypeRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	reportCache := cache.NewReportCache(cfg.Redis, log)
	engine := depositapp.NewEngine(txScope, customerRepo, ledgerRepo, log)
	depositTypeService := depositapp.NewDepositTypeService(depositTypeRepo)
	expiryService := depositapp.NewExpiryService(txScope, customerRepo, log)
	customerService := customerapp.NewService(customerRepo)
	branchService := branchapp.NewService(branchRepo)
	reportService := reportapp.NewDepositReportService(customerRepo, ledgerRepo, reportRepo, reportCache, log)

	// Nightly expiry sweep
	expiryScheduler := scheduler.NewExpiryScheduler(expiryService, cfg.Expiry, log)
	if err := expiryScheduler.Start(); err != nil {
		log.Fatal("Failed to start expiry scheduler", zap.Error(err))
	}
	defer expiryScheduler.Stop()

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	ginEngine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	ginEngine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins),
	)

	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)
	systemHandler.RegisterRoutes(ginEngine)

	apiMiddleware := []gin.HandlerFunc{}
	if cfg.JWT.Secret != "" {
		jwtService := auth.NewJWTService(cfg.JWT)
		apiMiddleware = append(apiMiddleware, middleware.JWTAuth(jwtService))
	} else {
		log.Warn("JWT secret not configured, API authentication is disabled")
	}

	router.NewRouter(ginEngine, router.WithMiddleware(apiMiddleware...)).
		Register(handler.NewDepositTransactionHandler(engine)).
		Register(handler.NewDepositTypeHandler(depositTypeService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewBranchHandler(branchService)).
		Register(handler.NewReportHandler(reportService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
