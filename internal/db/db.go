package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-path/internal/config"
)

var ErrRolesTableMissing = errors.New("career_roles table missing")

// poolConfig arma la configuracion sin conectar. El pool solo lee el corpus
// de roles en cada refresh, asi que no mantiene conexiones ociosas.
func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	maxConns := cfg.DBMaxConns
	if maxConns <= 0 {
		maxConns = 4
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second
	return poolCfg, nil
}

// NewPool construye el pool del corpus de roles. pgxpool es perezoso: usar
// Ping antes de confiar en la base.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad y que exista la tabla career_roles.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT to_regclass('career_roles') IS NOT NULL`).Scan(&exists); err != nil {
		return fmt.Errorf("check career_roles: %w", err)
	}
	if !exists {
		return ErrRolesTableMissing
	}
	return nil
}
