// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accrual-service/internal/domain"
	"accrual-service/internal/repository"
	"accrual-service/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new accrual record using the provided DBExecutor.
// A concurrent duplicate insert is rejected by the unique constraint on
// user_id and translated to util.ErrAlreadyExists.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, acct *domain.Account) error {
	query := `INSERT INTO accounts (user_id, points, mining_rate, claims_today, last_claim, next_claim_possible, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		acct.UserID,
		acct.Points,
		acct.MiningRate,
		acct.ClaimsToday,
		acct.LastClaim,
		acct.NextClaimPossible,
		acct.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return util.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create account for user '%s': %w", acct.UserID, err)
	}
	return nil
}

// GetAccountByUserID retrieves an accrual record using the provided DBExecutor.
func (r *AccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Account, error) {
	return r.getAccount(ctx, q, userID, "")
}

// GetAccountByUserIDForUpdate retrieves an accrual record with a row lock held
// until the enclosing transaction commits or rolls back. Concurrent
// settlements for the same user serialize on this lock.
func (r *AccountRepository) GetAccountByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Account, error) {
	return r.getAccount(ctx, q, userID, " FOR UPDATE")
}

func (r *AccountRepository) getAccount(ctx context.Context, q repository.DBExecutor, userID, lockSuffix string) (*domain.Account, error) {
	var acct domain.Account
	query := `SELECT user_id, points, mining_rate, claims_today, last_claim, next_claim_possible, created_at
              FROM accounts WHERE user_id = $1` + lockSuffix
	err := q.GetContext(ctx, &acct, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account for user '%s': %w", userID, err)
	}
	return &acct, nil
}

// UpdateClaimState persists the post-settlement claim fields.
func (r *AccountRepository) UpdateClaimState(ctx context.Context, q repository.DBExecutor, acct *domain.Account) error {
	query := `UPDATE accounts
              SET points = $1, claims_today = $2, last_claim = $3, next_claim_possible = $4
              WHERE user_id = $5`
	result, err := q.ExecContext(ctx, query,
		acct.Points,
		acct.ClaimsToday,
		acct.LastClaim,
		acct.NextClaimPossible,
		acct.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update claim state for user '%s': %w", acct.UserID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating claim state for user '%s': %w", acct.UserID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating claim state for user '%s', account might not exist", acct.UserID)
	}
	return nil
}
