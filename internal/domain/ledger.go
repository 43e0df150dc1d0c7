// internal/domain/ledger.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a user's durable balance row. The total is cumulative and
// monotonically non-decreasing; it is written only inside the same
// transaction as the account update that produced the award.
type LedgerEntry struct {
	UserID    string          `db:"user_id" json:"user_id"`
	Points    decimal.Decimal `db:"points" json:"points"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
