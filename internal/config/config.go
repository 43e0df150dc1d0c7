// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"accrual-service/internal/domain"
	"accrual-service/pkg/db" // Import db package for its Config struct

	"github.com/shopspring/decimal"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	// Reward policy
	BaseRewardUnit        decimal.Decimal
	MaxDailyClaims        int
	ClaimInterval         time.Duration
	InitialPoints         decimal.Decimal
	MiningRateBoost       decimal.Decimal
	AccrualPolicy         domain.AccrualPolicy
	ResetPolicy           domain.ResetPolicy
	PendingBalanceMessage string

	// Identity resolution
	JWTSecret     string
	AuthCacheTTL  time.Duration
	RedisAddr     string
	RedisUser     string
	RedisPassword string

	// Settlement events (optional)
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	baseRewardUnit, err := getEnvDecimal("BASE_REWARD_UNIT", "10")
	if err != nil {
		return nil, err
	}
	if !baseRewardUnit.IsPositive() {
		return nil, fmt.Errorf("BASE_REWARD_UNIT must be positive, got %s", baseRewardUnit)
	}

	maxDailyClaims, err := getEnvInt("MAX_DAILY_CLAIMS", 1)
	if err != nil {
		return nil, err
	}
	if maxDailyClaims < 1 {
		return nil, fmt.Errorf("MAX_DAILY_CLAIMS must be at least 1, got %d", maxDailyClaims)
	}

	claimIntervalHours, err := getEnvInt("CLAIM_INTERVAL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if claimIntervalHours < 1 {
		return nil, fmt.Errorf("CLAIM_INTERVAL_HOURS must be at least 1, got %d", claimIntervalHours)
	}

	initialPoints, err := getEnvDecimal("INITIAL_POINTS", "0")
	if err != nil {
		return nil, err
	}
	if initialPoints.IsNegative() {
		return nil, fmt.Errorf("INITIAL_POINTS must not be negative, got %s", initialPoints)
	}

	miningRateBoost, err := getEnvDecimal("MINING_RATE_BOOST", "1")
	if err != nil {
		return nil, err
	}
	if !miningRateBoost.IsPositive() {
		return nil, fmt.Errorf("MINING_RATE_BOOST must be positive, got %s", miningRateBoost)
	}

	accrualPolicy := domain.AccrualPolicy(getEnv("ACCRUAL_POLICY", string(domain.AccrualPolicyFlat)))
	if accrualPolicy != domain.AccrualPolicyFlat && accrualPolicy != domain.AccrualPolicyProportional {
		return nil, fmt.Errorf("invalid ACCRUAL_POLICY %q: must be %q or %q",
			accrualPolicy, domain.AccrualPolicyFlat, domain.AccrualPolicyProportional)
	}

	resetPolicy := domain.ResetPolicy(getEnv("SETTLE_RESET_POLICY", string(domain.ResetPolicyZero)))
	if resetPolicy != domain.ResetPolicyZero && resetPolicy != domain.ResetPolicyKeep {
		return nil, fmt.Errorf("invalid SETTLE_RESET_POLICY %q: must be %q or %q",
			resetPolicy, domain.ResetPolicyZero, domain.ResetPolicyKeep)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	authCacheTTL, err := getEnvInt("AUTH_CACHE_TTL_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	var kafkaBrokers []string
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kafkaBrokers = strings.Split(brokers, ",")
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "accrualdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		BaseRewardUnit:        baseRewardUnit,
		MaxDailyClaims:        maxDailyClaims,
		ClaimInterval:         time.Duration(claimIntervalHours) * time.Hour,
		InitialPoints:         initialPoints,
		MiningRateBoost:       miningRateBoost,
		AccrualPolicy:         accrualPolicy,
		ResetPolicy:           resetPolicy,
		PendingBalanceMessage: os.Getenv("PENDING_BALANCE_MESSAGE"),
		JWTSecret:             jwtSecret,
		AuthCacheTTL:          time.Duration(authCacheTTL) * time.Second,
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisUser:             os.Getenv("REDIS_USER"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:          kafkaBrokers,
		KafkaTopic:            getEnv("KAFKA_TOPIC", "reward.settlements"),
	}, nil
}

func getEnv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(name string, fallback int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return parsed, nil
}

func getEnvDecimal(name, fallback string) (decimal.Decimal, error) {
	value := os.Getenv(name)
	if value == "" {
		value = fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return parsed, nil
}
