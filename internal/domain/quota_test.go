// internal/domain/quota_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowRolledOver(t *testing.T) {
	tests := []struct {
		name      string
		lastClaim time.Time
		now       time.Time
		want      bool
	}{
		{
			name:      "same day",
			lastClaim: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			now:       time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "next day shortly after midnight",
			lastClaim: time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC),
			now:       time.Date(2025, 6, 2, 0, 10, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "month boundary",
			lastClaim: time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "year boundary",
			lastClaim: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
			now:       time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "clock skew: last claim in the future",
			lastClaim: time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC),
			now:       time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			// A non-UTC timestamp must be normalized before comparison:
			// 22:00-03:00 on June 1 is 01:00 UTC on June 2.
			name:      "non-UTC input normalized",
			lastClaim: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			now:       time.Date(2025, 6, 1, 22, 0, 0, 0, time.FixedZone("UTC-3", -3*60*60)),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowRolledOver(tt.lastClaim, tt.now))
		})
	}
}

func TestCanClaim(t *testing.T) {
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("quota has room", func(t *testing.T) {
		assert.True(t, CanClaim(0, day, day.Add(time.Hour), 1))
		assert.True(t, CanClaim(2, day, day.Add(time.Hour), 3))
	})

	t.Run("quota exhausted same day", func(t *testing.T) {
		assert.False(t, CanClaim(1, day, day.Add(time.Hour), 1))
		assert.False(t, CanClaim(3, day, day.Add(time.Hour), 3))
	})

	t.Run("rollover resets eligibility despite stale counter", func(t *testing.T) {
		assert.True(t, CanClaim(1, day, day.Add(24*time.Hour), 1))
		assert.True(t, CanClaim(99, day, day.Add(24*time.Hour), 1))
	})
}
