// internal/service/reward_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"accrual-service/internal/domain"
	"accrual-service/internal/events"
	"accrual-service/internal/repository"
	"accrual-service/internal/util"
	"accrual-service/pkg/db"

	"github.com/shopspring/decimal"
)

// Settings carries the reward policy knobs consumed by the service.
type Settings struct {
	BaseRewardUnit  decimal.Decimal      // Reward unit moved to the ledger per claim
	MaxDailyClaims  int                  // Claims allowed per UTC day
	ClaimInterval   time.Duration        // Cooldown; drives next_claim_possible
	InitialPoints   decimal.Decimal      // Points granted on account creation
	MiningRateBoost decimal.Decimal      // Mining rate assigned to new accounts
	AccrualPolicy   domain.AccrualPolicy // flat or proportional pending accrual
	ResetPolicy     domain.ResetPolicy   // zero or keep stored points on claim
}

// BalanceStatus is the result of a balance query: the pending accrued amount
// and its relation to one full reward unit.
type BalanceStatus struct {
	Accrued        decimal.Decimal `json:"accrued"`
	FractionOfUnit decimal.Decimal `json:"fraction_of_unit"`
	IsFullUnit     bool            `json:"is_full_unit"`
}

// RewardService defines the interface for reward-accrual business logic.
type RewardService interface {
	// CreateAccount idempotently opens an accrual record for the user.
	// The returned bool is true when a new record was created.
	CreateAccount(ctx context.Context, userID string) (bool, error)
	// SettleClaim converts accrued eligibility into a durable balance
	// increase and returns the awarded amount.
	SettleClaim(ctx context.Context, userID string) (decimal.Decimal, error)
	// GetBalance reports the currently accrued amount for display.
	GetBalance(ctx context.Context, userID string) (*BalanceStatus, error)
	// GetAccountDetails returns the user's accrual record.
	GetAccountDetails(ctx context.Context, userID string) (*domain.Account, error)
}

// rewardService implements the RewardService interface.
type rewardService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
	publisher   events.Publisher
	settings    Settings
	logger      *slog.Logger
	beginTx     db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx    db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx  db.RollbackTxFunc // Injected dependency for rolling back transactions
}

// NewRewardService creates a new instance of RewardService.
func NewRewardService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	publisher events.Publisher,
	settings Settings,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) RewardService {
	return &rewardService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
		settings:    settings,
		logger:      logger,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateAccount idempotently opens an accrual record for the user. A second
// call for the same user reports "already exists" as a success, never an
// error; a concurrent duplicate insert loses to the unique constraint and is
// folded into the same outcome.
func (s *rewardService) CreateAccount(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, util.ErrInvalidInput
	}

	_, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err == nil {
		return false, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return false, fmt.Errorf("create account: failed to check existing account for user '%s': %w", userID, err)
	}

	acct := domain.NewAccount(userID, s.settings.InitialPoints, s.settings.MiningRateBoost)
	if err := s.accountRepo.CreateAccount(ctx, s.dbExecutor, acct); err != nil {
		if util.IsError(err, util.ErrAlreadyExists) {
			// Lost a creation race; same outcome as the existence check.
			return false, nil
		}
		return false, fmt.Errorf("create account: failed to create account for user '%s': %w", userID, err)
	}

	s.logger.Info("Account created", "user_id", userID)
	return true, nil
}

// SettleClaim converts accrued eligibility into a durable balance increase.
// Eligibility is re-checked inside the transaction against a row-locked fresh
// read, so two concurrent claims for the same user cannot both pass; the
// account update and the ledger append commit or roll back together.
func (s *rewardService) SettleClaim(ctx context.Context, userID string) (decimal.Decimal, error) {
	now := time.Now().UTC()

	if s.settings.AccrualPolicy == domain.AccrualPolicyProportional {
		// Cheap precheck before opening a transaction: a partially accrued
		// balance below one reward unit is not claimable yet.
		acct, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("settle claim: failed to get account for user '%s': %w", userID, err)
		}
		accrued := domain.AccruedPoints(acct, s.settings.AccrualPolicy, s.settings.BaseRewardUnit, now)
		if accrued.LessThan(s.settings.BaseRewardUnit) {
			claimsRejectedTotal.WithLabelValues("insufficient_balance").Inc()
			return decimal.Zero, util.ErrInsufficientBalance
		}
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("settle claim: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return decimal.Zero, fmt.Errorf("settle claim: transaction controller does not implement DBExecutor")
	}

	acct, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("settle claim: failed to lock account for user '%s': %w", userID, err)
	}

	if !domain.CanClaim(acct.ClaimsToday, acct.LastClaim, now, s.settings.MaxDailyClaims) {
		claimsRejectedTotal.WithLabelValues("quota_exceeded").Inc()
		return decimal.Zero, util.ErrQuotaExceeded
	}

	if domain.WindowRolledOver(acct.LastClaim, now) {
		acct.ClaimsToday = 1
	} else {
		acct.ClaimsToday++
	}

	awarded := domain.ClaimAward(acct, s.settings.BaseRewardUnit)

	acct.LastClaim = now
	acct.NextClaimPossible = now.Add(s.settings.ClaimInterval)
	if s.settings.ResetPolicy == domain.ResetPolicyZero {
		acct.Points = decimal.Zero
	}

	if err := s.accountRepo.UpdateClaimState(ctx, txExecutor, acct); err != nil {
		return decimal.Zero, fmt.Errorf("settle claim: failed to update account for user '%s': %w", userID, err)
	}

	if err := s.ledgerRepo.AddPoints(ctx, txExecutor, userID, awarded); err != nil {
		return decimal.Zero, fmt.Errorf("settle claim: failed to update user ledger for user '%s': %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return decimal.Zero, fmt.Errorf("settle claim: failed to commit transaction: %w", err)
	}

	claimsSettledTotal.Inc()
	awardedFloat, _ := awarded.Float64()
	pointsAwardedTotal.Add(awardedFloat)

	// The claim is committed; a publish failure must not undo it.
	if err := s.publisher.PublishSettlement(ctx, userID, awarded, now); err != nil {
		s.logger.Error("Failed to publish settlement event", "user_id", userID, "error", err)
	}

	s.logger.Info("Claim settled", "user_id", userID, "awarded", awarded.String(), "claims_today", acct.ClaimsToday)
	return awarded, nil
}

// GetBalance reports the currently accrued amount, the fraction of one full
// reward unit it represents (capped at 1), and whether a full unit is ready.
func (s *rewardService) GetBalance(ctx context.Context, userID string) (*BalanceStatus, error) {
	acct, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: failed to get account for user '%s': %w", userID, err)
	}

	accrued := domain.AccruedPoints(acct, s.settings.AccrualPolicy, s.settings.BaseRewardUnit, time.Now().UTC())

	fraction := decimal.NewFromInt(1)
	if accrued.LessThan(s.settings.BaseRewardUnit) && s.settings.BaseRewardUnit.IsPositive() {
		fraction = accrued.Div(s.settings.BaseRewardUnit)
	}

	return &BalanceStatus{
		Accrued:        accrued,
		FractionOfUnit: fraction,
		IsFullUnit:     accrued.GreaterThanOrEqual(s.settings.BaseRewardUnit),
	}, nil
}

// GetAccountDetails returns the user's accrual record.
func (s *rewardService) GetAccountDetails(ctx context.Context, userID string) (*domain.Account, error) {
	acct, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get account details: failed to get account for user '%s': %w", userID, err)
	}
	return acct, nil
}
