// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accrual-service/internal/domain"
	"accrual-service/internal/repository"
	"accrual-service/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
type LedgerRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) repository.LedgerRepository {
	return &LedgerRepository{}
}

// AddPoints additively upserts the user's durable balance using the provided
// DBExecutor. The update is additive, never an overwrite, so the ledger total
// only increases.
func (r *LedgerRepository) AddPoints(ctx context.Context, q repository.DBExecutor, userID string, amount decimal.Decimal) error {
	query := `INSERT INTO balances (user_id, points, updated_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id)
              DO UPDATE SET points = balances.points + EXCLUDED.points, updated_at = EXCLUDED.updated_at`
	_, err := q.ExecContext(ctx, query, userID, amount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add %s points to ledger for user '%s': %w", amount, userID, err)
	}
	return nil
}

// GetLedgerByUserID retrieves the user's durable balance row.
func (r *LedgerRepository) GetLedgerByUserID(ctx context.Context, q repository.DBExecutor, userID string) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	query := `SELECT user_id, points, updated_at FROM balances WHERE user_id = $1`
	err := q.GetContext(ctx, &entry, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry for user '%s': %w", userID, err)
	}
	return &entry, nil
}
