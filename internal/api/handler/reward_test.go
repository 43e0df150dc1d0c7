// internal/api/handler/reward_test.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accrual-service/internal/auth"
	"accrual-service/internal/domain"
	"accrual-service/internal/service"
	"accrual-service/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRewardService is a mock implementation of service.RewardService.
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) CreateAccount(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRewardService) SettleClaim(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRewardService) GetBalance(ctx context.Context, userID string) (*service.BalanceStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BalanceStatus), args.Error(1)
}

func (m *MockRewardService) GetAccountDetails(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func authedRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(auth.ContextWithUserID(req.Context(), "user-1"))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSettleClaimHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("SettleClaim", mock.Anything, "user-1").Return(decimal.NewFromInt(10), nil).Once()

		rec := httptest.NewRecorder()
		h.SettleClaim(rec, authedRequest(http.MethodPost, "/claims"))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Claim settled", body["message"])
		awarded, err := decimal.NewFromString(body["awarded_points"].(string))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(awarded))
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("SettleClaim", mock.Anything, "user-1").Return(decimal.Zero, util.ErrQuotaExceeded).Once()

		rec := httptest.NewRecorder()
		h.SettleClaim(rec, authedRequest(http.MethodPost, "/claims"))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Daily claim quota exceeded")
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("SettleClaim", mock.Anything, "user-1").Return(decimal.Zero, util.ErrInsufficientBalance).Once()

		rec := httptest.NewRecorder()
		h.SettleClaim(rec, authedRequest(http.MethodPost, "/claims"))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("SettleClaim", mock.Anything, "user-1").Return(decimal.Zero, util.ErrNotFound).Once()

		rec := httptest.NewRecorder()
		h.SettleClaim(rec, authedRequest(http.MethodPost, "/claims"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Resource not found")
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())

		rec := httptest.NewRecorder()
		h.SettleClaim(rec, httptest.NewRequest(http.MethodPost, "/claims", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "SettleClaim", mock.Anything, mock.Anything)
	})
}

func TestCreateAccountHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("CreateAccount", mock.Anything, "user-1").Return(true, nil).Once()

		rec := httptest.NewRecorder()
		h.CreateAccount(rec, authedRequest(http.MethodPost, "/accounts"))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["created"])
		assert.Equal(t, "Account created", body["message"])
	})

	t.Run("AlreadyExistsIsSuccess", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "", util.GetLogger())
		svc.On("CreateAccount", mock.Anything, "user-1").Return(false, nil).Once()

		rec := httptest.NewRecorder()
		h.CreateAccount(rec, authedRequest(http.MethodPost, "/accounts"))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["created"])
		assert.Equal(t, "Account already exists", body["message"])
	})
}

func TestGetBalanceHandler(t *testing.T) {
	t.Run("BelowOneUnitIncludesMessage", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "Keep mining!", util.GetLogger())
		svc.On("GetBalance", mock.Anything, "user-1").Return(&service.BalanceStatus{
			Accrued:        decimal.NewFromInt(4),
			FractionOfUnit: decimal.RequireFromString("0.4"),
			IsFullUnit:     false,
		}, nil).Once()

		rec := httptest.NewRecorder()
		h.GetBalance(rec, authedRequest(http.MethodGet, "/balance"))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Keep mining!", body["message"])
		assert.Equal(t, false, body["is_full_unit"])
	})

	t.Run("FullUnitOmitsMessage", func(t *testing.T) {
		svc := new(MockRewardService)
		h := NewRewardHandler(svc, "Keep mining!", util.GetLogger())
		svc.On("GetBalance", mock.Anything, "user-1").Return(&service.BalanceStatus{
			Accrued:        decimal.NewFromInt(12),
			FractionOfUnit: decimal.NewFromInt(1),
			IsFullUnit:     true,
		}, nil).Once()

		rec := httptest.NewRecorder()
		h.GetBalance(rec, authedRequest(http.MethodGet, "/balance"))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		_, hasMessage := body["message"]
		assert.False(t, hasMessage)
		assert.Equal(t, true, body["is_full_unit"])
	})
}

func TestGetAccountDetailsHandler(t *testing.T) {
	svc := new(MockRewardService)
	h := NewRewardHandler(svc, "", util.GetLogger())

	now := time.Now().UTC()
	svc.On("GetAccountDetails", mock.Anything, "user-1").Return(&domain.Account{
		UserID:            "user-1",
		Points:            decimal.NewFromInt(3),
		MiningRate:        decimal.NewFromInt(2),
		ClaimsToday:       1,
		LastClaim:         now,
		NextClaimPossible: now.Add(24 * time.Hour),
		CreatedAt:         now,
	}, nil).Once()

	rec := httptest.NewRecorder()
	h.GetAccountDetails(rec, authedRequest(http.MethodGet, "/account"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, float64(1), body["claims_today"])
}
