package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/config"
	"github.com/hedgeshield/hedgeshield/internal/handler"
	"github.com/hedgeshield/hedgeshield/internal/middleware"
	"github.com/hedgeshield/hedgeshield/internal/pkg/logger"
	"github.com/hedgeshield/hedgeshield/internal/repository"
	"github.com/hedgeshield/hedgeshield/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Local overrides, ignored when absent
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	// Ledger store
	db, err := repository.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	logger.Info("connected to postgres")
	ledgerRepo := repository.NewPostgresLedgerRepo(db)

	// Rate limiter backend (Redis > Memory)
	var limiter middleware.RateLimiter
	var memLimiter *middleware.SlidingWindowLimiter
	if cfg.Redis.Addr != "" {
		redisClient, err := repository.NewRedisClient(cfg)
		if err == nil {
			logger.Info("connected to redis, using shared rate limiter")
			limiter = repository.NewRedisRateLimiter(redisClient, cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
		} else {
			logger.Warn("failed to connect to redis, falling back to in-process limiter", "error", err.Error())
		}
	}
	if limiter == nil {
		memLimiter = middleware.NewSlidingWindowLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
		limiter = memLimiter
	}

	ledgerSvc := service.NewLedgerService(ledgerRepo)

	contractHandler := handler.NewContractHandler(ledgerSvc)
	orderHandler := handler.NewOrderHandler(ledgerSvc)
	healthHandler := handler.NewHealthHandler(ledgerRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RequestLog())

	r.GET("/health", healthHandler.Check)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/")
	api.Use(middleware.TenantMiddleware())
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		api.GET("/contracts", contractHandler.List)
		api.POST("/contracts", contractHandler.Create)
		api.GET("/portfolio", contractHandler.Portfolio)
		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("hedgeshield started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if memLimiter != nil {
		memLimiter.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	_ = db.Close()

	logger.Info("server exiting")
}
