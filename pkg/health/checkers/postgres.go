package checkers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChecker pings the pool and confirms the schema is migrated.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := c.pool.Ping(ctx); err != nil {
		return err
	}
	var places *string
	if err := c.pool.QueryRow(ctx, `SELECT to_regclass('public.places')::text`).Scan(&places); err != nil {
		return err
	}
	if places == nil {
		return fmt.Errorf("schema not migrated")
	}
	return nil
}
