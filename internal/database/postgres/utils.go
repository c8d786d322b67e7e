package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/logger"
)

const pgUniqueViolation = "23505"

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parsePlantUUID parses a plant ID string to uuid.UUID with consistent error message.
func parsePlantUUID(plantID string) (uuid.UUID, error) {
	u, err := uuid.Parse(plantID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid plant id: %w", err)
	}
	return u, nil
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// querier is the subset of pgx shared by pools and transactions
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// markPaymentConsumed inserts the tx hash into consumed_payments; the primary
// key makes a second insert for the same hash fail, which is how replayed
// proofs are caught.
func markPaymentConsumed(ctx context.Context, q querier, txHash, purpose string) error {
	query := `
		INSERT INTO consumed_payments (tx_hash, purpose)
		VALUES ($1, $2)
	`

	if _, err := q.Exec(ctx, query, txHash, purpose); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPaymentAlreadyUsed
		}
		return fmt.Errorf("failed to mark payment consumed: %w", err)
	}
	return nil
}
