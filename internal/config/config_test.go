// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accrual-service/internal/domain"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 24*time.Hour, cfg.ClaimInterval)
		assert.Equal(t, 1, cfg.MaxDailyClaims)
		assert.Equal(t, domain.AccrualPolicyFlat, cfg.AccrualPolicy)
		assert.Equal(t, domain.ResetPolicyZero, cfg.ResetPolicy)
		assert.True(t, decimal.NewFromInt(10).Equal(cfg.BaseRewardUnit))
	})

	t.Run("ZeroClaimIntervalRejected", func(t *testing.T) {
		t.Setenv("CLAIM_INTERVAL_HOURS", "0")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CLAIM_INTERVAL_HOURS")
	})

	t.Run("NegativeClaimIntervalRejected", func(t *testing.T) {
		t.Setenv("CLAIM_INTERVAL_HOURS", "-24")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CLAIM_INTERVAL_HOURS")
	})

	t.Run("NonPositiveBaseUnitRejected", func(t *testing.T) {
		t.Setenv("BASE_REWARD_UNIT", "0")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "BASE_REWARD_UNIT")
	})

	t.Run("InvalidAccrualPolicyRejected", func(t *testing.T) {
		t.Setenv("ACCRUAL_POLICY", "hourly")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ACCRUAL_POLICY")
	})

	t.Run("MissingJWTSecretRejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})
}
