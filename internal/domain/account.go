// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise point arithmetic
)

// Account is a user's accrual record. It tracks points earned but not yet
// claimed, the per-user mining rate, and the claim bookkeeping used by the
// daily quota and cooldown.
type Account struct {
	UserID            string          `db:"user_id" json:"user_id"`                         // Opaque authenticated identity, unique key
	Points            decimal.Decimal `db:"points" json:"points"`                           // Accrued-but-unclaimed points, NUMERIC(20, 4) in DB
	MiningRate        decimal.Decimal `db:"mining_rate" json:"mining_rate"`                 // Multiplier applied to the base reward unit
	ClaimsToday       int             `db:"claims_today" json:"claims_today"`               // Claims made within the current UTC day
	LastClaim         time.Time       `db:"last_claim" json:"last_claim"`                   // Most recent successful claim (or creation)
	NextClaimPossible time.Time       `db:"next_claim_possible" json:"next_claim_possible"` // Cooldown boundary: last_claim + claim interval
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`                   // Immutable creation timestamp
}

// NewAccount creates a fresh accrual record for a user. Both claim timestamps
// start at creation time so the first proportional cycle has a defined window.
func NewAccount(userID string, initialPoints, miningRate decimal.Decimal) *Account {
	now := time.Now().UTC()
	return &Account{
		UserID:            userID,
		Points:            initialPoints,
		MiningRate:        miningRate,
		ClaimsToday:       0,
		LastClaim:         now,
		NextClaimPossible: now,
		CreatedAt:         now,
	}
}
