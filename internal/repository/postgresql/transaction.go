package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
)

type txKey struct{}

// WithTransaction runs fn inside a single transaction. The transaction is
// carried through the context so every repository call made by fn shares it.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	// already inside a transaction (or a test-injected querier): reuse it
	if _, ok := ctx.Value(txKey{}).(database.Querier); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, database.Querier(tx))

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.Error("rollback failed during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// WithQuerier returns a context whose repository calls use q instead of the
// pool. Tests use it to route a repository at a pgxmock connection.
func WithQuerier(ctx context.Context, q database.Querier) context.Context {
	return context.WithValue(ctx, txKey{}, q)
}

// GetQuerier returns the transaction bound to ctx, or the pool when the call
// is not transactional.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if q, ok := ctx.Value(txKey{}).(database.Querier); ok {
		return q
	}
	return db.Pool
}
