// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"accrual-service/internal/domain"

	"github.com/shopspring/decimal"
)

// LedgerRepository defines the interface for durable balance operations.
type LedgerRepository interface {
	// AddPoints additively upserts the user's durable balance using the
	// provided DBExecutor. The ledger total only ever increases.
	AddPoints(ctx context.Context, q DBExecutor, userID string, amount decimal.Decimal) error
	// GetLedgerByUserID retrieves the user's durable balance row.
	GetLedgerByUserID(ctx context.Context, q DBExecutor, userID string) (*domain.LedgerEntry, error)
}
