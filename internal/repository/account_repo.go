// internal/repository/account_repo.go
package repository

import (
	"context"

	"accrual-service/internal/domain"
)

// AccountRepository defines the interface for accrual-record data operations.
type AccountRepository interface {
	// CreateAccount inserts a new accrual record using the provided DBExecutor.
	// A duplicate user_id is reported as util.ErrAlreadyExists.
	CreateAccount(ctx context.Context, q DBExecutor, acct *domain.Account) error
	// GetAccountByUserID retrieves an accrual record using the provided DBExecutor.
	GetAccountByUserID(ctx context.Context, q DBExecutor, userID string) (*domain.Account, error)
	// GetAccountByUserIDForUpdate retrieves an accrual record and locks its row
	// for the remainder of the enclosing transaction.
	GetAccountByUserIDForUpdate(ctx context.Context, q DBExecutor, userID string) (*domain.Account, error)
	// UpdateClaimState persists the post-settlement claim fields (points,
	// claims_today, last_claim, next_claim_possible).
	UpdateClaimState(ctx context.Context, q DBExecutor, acct *domain.Account) error
}
