// internal/domain/accrual.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualPolicy selects how the pending accrued amount is computed.
type AccrualPolicy string

const (
	// AccrualPolicyFlat reports the stored points value as-is.
	AccrualPolicyFlat AccrualPolicy = "flat"
	// AccrualPolicyProportional scales stored points by the elapsed fraction
	// of the claim interval.
	AccrualPolicyProportional AccrualPolicy = "proportional"
)

// ResetPolicy selects what happens to the stored points on settlement.
type ResetPolicy string

const (
	// ResetPolicyZero zeroes the stored points after a claim.
	ResetPolicyZero ResetPolicy = "zero"
	// ResetPolicyKeep leaves the stored points untouched for the next
	// proportional cycle.
	ResetPolicyKeep ResetPolicy = "keep"
)

// AccruedPoints computes the amount currently accrued on the account but not
// yet settled. Under the proportional policy the stored points are scaled by
// elapsed/total of the current claim window, clamped to [0, 1]; a zero or
// inverted window counts as fully elapsed. Once the accrued amount exceeds
// one base unit it is capped at a single reward unit scaled by the account's
// mining rate: a claim period's worth is the most one cycle can yield.
func AccruedPoints(acct *Account, policy AccrualPolicy, baseUnit decimal.Decimal, now time.Time) decimal.Decimal {
	if policy == AccrualPolicyFlat {
		return acct.Points
	}

	total := acct.NextClaimPossible.Sub(acct.LastClaim)
	elapsed := now.Sub(acct.LastClaim)

	var proportion decimal.Decimal
	switch {
	case total <= 0:
		proportion = decimal.NewFromInt(1)
	case elapsed <= 0:
		proportion = decimal.Zero
	case elapsed >= total:
		proportion = decimal.NewFromInt(1)
	default:
		// Stays in decimal end to end; the proportion must not pick up
		// binary-float rounding on its way into a money value.
		proportion = decimal.NewFromInt(elapsed.Nanoseconds()).
			Div(decimal.NewFromInt(total.Nanoseconds()))
	}

	accrued := acct.Points.Mul(proportion)
	if accrued.GreaterThan(baseUnit) {
		return baseUnit.Mul(acct.MiningRate)
	}
	return accrued
}

// ClaimAward is the amount moved to the durable balance by one settled claim:
// the base reward unit scaled by the account's mining rate, independent of
// how much has accrued.
func ClaimAward(acct *Account, baseUnit decimal.Decimal) decimal.Decimal {
	return baseUnit.Mul(acct.MiningRate)
}
