package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mining_webapp/internal/clock"
	"mining_webapp/internal/config"
	"mining_webapp/internal/db"
	httpServer "mining_webapp/internal/http"
	"mining_webapp/internal/http/middleware"
	"mining_webapp/internal/jobs"
	"mining_webapp/internal/logger"
	"mining_webapp/internal/mining"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/repository/memory"
	"mining_webapp/internal/repository/postgres"
	"mining_webapp/internal/service"
	"mining_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	clk := clock.RealClock{}

	var store *repository.Store
	var pool *pgxpool.Pool
	switch cfg.StoreKind {
	case "postgres":
		pool = db.Connect(rootCtx, cfg.DatabaseURL)
		defer pool.Close()
		store = postgres.New(pool)
	default:
		mem := memory.New(clk)
		if err := mem.Seed(rootCtx); err != nil {
			logger.Fatal("failed to seed demo data", "error", err)
		}
		store = mem.Bundle()
		logger.Info("memory store seeded with demo data")
	}

	engine := mining.NewEngine(clk)
	svcs := service.New(store, engine, clk)

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	hub := ws.NewHub(svcs.Mining.Status, 5*time.Second)
	go hub.Run(rootCtx)

	scheduler := jobs.NewScheduler(svcs.Premium, svcs.Mining)
	scheduler.Start(rootCtx)
	defer scheduler.Stop()

	r := gin.Default()

	// CORS for the browser client
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Services: svcs,
		Store:    store,
		DB:       pool,
		Hub:      hub,
		Config:   cfg,
		Version:  version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "store", cfg.StoreKind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
