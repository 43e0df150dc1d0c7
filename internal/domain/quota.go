// internal/domain/quota.go
package domain

import "time"

// WindowRolledOver reports whether now falls in a strictly later UTC calendar
// day than lastClaim. Both timestamps are normalized to UTC before the
// comparison; the calendar date is compared field-wise, never as strings.
func WindowRolledOver(lastClaim, now time.Time) bool {
	ly, lm, ld := lastClaim.UTC().Date()
	cy, cm, cd := now.UTC().Date()
	if cy != ly {
		return cy > ly
	}
	if cm != lm {
		return cm > lm
	}
	return cd > ld
}

// CanClaim decides whether a new claim is permitted: either the daily quota
// still has room, or the UTC day has rolled over since the last claim, which
// resets eligibility regardless of the stale counter.
func CanClaim(claimsToday int, lastClaim, now time.Time, maxDailyClaims int) bool {
	if WindowRolledOver(lastClaim, now) {
		return true
	}
	return claimsToday < maxDailyClaims
}
