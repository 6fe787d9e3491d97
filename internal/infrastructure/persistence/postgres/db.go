// Package postgres implements the repository ports on pgx. Lookups return
// (nil, nil) on no rows; unique constraint violations surface as field-keyed
// validation errors so callers can report them without parsing SQLSTATE.
package postgres

import (
	"context"
	"errors"
	"time"

	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pool and verifies connectivity before returning it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// TxManager runs a function inside one transaction and threads it through the
// context so repository calls join it transparently.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		// Already inside a transaction; join it.
		return fn(ctx)
	}
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// conn returns the ambient transaction when one is in flight, else the pool.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// uniqueViolations maps constraint names to the field reported to callers.
var uniqueViolations = map[string]string{
	"users_email_key":              "email",
	"companies_name_key":           "name",
	"companies_code_key":           "code",
	"memberships_user_company_key": "user_id",
	"supply_links_pair_key":        "purchaser_id",
	"orders_supplier_invoice_key":  "invoice_no",
}

// mapWriteError converts unique violations into validation errors and leaves
// everything else untouched.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if field, ok := uniqueViolations[pgErr.ConstraintName]; ok {
			return domerrors.NewValidationError(field, "has already been taken")
		}
		return domerrors.NewValidationError("base", "has already been taken")
	}
	return err
}
