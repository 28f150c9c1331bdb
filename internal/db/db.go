package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 30 * time.Second

// New opens a pgx pool against addr and pings it before returning.
func New(addr string, maxConns int32, maxIdleTime string) (*pgxpool.Pool, error) {
	cfg, err := PoolConfig(addr, maxConns, maxIdleTime)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func PoolConfig(addr string, maxConns int32, maxIdleTime string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, fmt.Errorf("parse database address: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	idle, err := time.ParseDuration(maxIdleTime)
	if err != nil {
		return nil, fmt.Errorf("parse max idle time %q: %w", maxIdleTime, err)
	}
	cfg.MaxConnIdleTime = idle

	return cfg, nil
}

// Stats is the subset of pool statistics published on /debug/vars.
func Stats(pool *pgxpool.Pool) map[string]any {
	s := pool.Stat()
	return map[string]any{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
		"max_conns":      s.MaxConns(),
	}
}
