package db

import (
	"context"

	"mining_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens and pings a pgx pool. Startup fails hard when the
// database is unreachable.
func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return pool
}
