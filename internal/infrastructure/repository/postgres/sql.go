package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/resilience"
)

const uniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// DB runs every repository query behind one circuit breaker so a failing
// database is reported fast instead of queueing requests on the pool.
type DB struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

func NewDB(db *sqlx.DB, cfg resilience.CircuitBreakerConfig) *DB {
	out := &DB{db: db}
	if cfg.Enabled {
		out.breaker = resilience.NewCircuitBreaker("postgres", cfg)
	}
	return out
}

func (d *DB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.guard(ctx, func() error {
		return d.db.SelectContext(ctx, dest, query, args...)
	})
}

func (d *DB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.guard(ctx, func() error {
		return d.db.GetContext(ctx, dest, query, args...)
	})
}

// BreakerState reports the breaker state, or closed when the breaker is off.
func (d *DB) BreakerState() resilience.CircuitState {
	if d.breaker == nil {
		return resilience.CircuitStateClosed
	}
	return d.breaker.State()
}

// Breaker returns the breaker snapshot for health reporting. ok is false
// when the breaker is disabled.
func (d *DB) Breaker() (resilience.BreakerSnapshot, bool) {
	if d.breaker == nil {
		return resilience.BreakerSnapshot{}, false
	}
	return d.breaker.Snapshot(), true
}

func (d *DB) guard(ctx context.Context, run func() error) error {
	if d.breaker == nil {
		return run()
	}
	if err := d.breaker.Allow(); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	err := run()
	switch {
	case err == nil, isNotFound(err), isUniqueViolation(err), ctx.Err() != nil:
		d.breaker.RecordSuccess()
	default:
		d.breaker.RecordFailure()
	}
	return err
}
