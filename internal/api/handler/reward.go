// internal/api/handler/reward.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"accrual-service/internal/auth"
	"accrual-service/internal/service"
	"accrual-service/internal/util" // For custom errors
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// RewardHandler handles HTTP requests related to reward accrual operations.
type RewardHandler struct {
	service        service.RewardService
	pendingMessage string // Shown on balance queries below one full unit
	logger         *slog.Logger
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(svc service.RewardService, pendingMessage string, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{
		service:        svc,
		pendingMessage: pendingMessage,
		logger:         logger,
	}
}

// Helper function to send JSON responses.
func (h *RewardHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses. Business outcomes map to
// descriptive statuses; anything else is a generic internal failure that does
// not leak query detail.
func (h *RewardHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrQuotaExceeded):
		statusCode = http.StatusTooManyRequests
		message = "Daily claim quota exceeded"
	case util.IsError(err, util.ErrInsufficientBalance):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Accrued balance below one reward unit"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// userID extracts the authenticated identity established by the auth
// middleware; a missing identity means the middleware was bypassed.
func (h *RewardHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondWithJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// CreateAccount handles the account opening request.
// POST /accounts
func (h *RewardHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreateAccount(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	message := "Account already exists"
	if created {
		message = "Account created"
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"message": message,
	})
}

// SettleClaim handles the claim settlement request.
// POST /claims
func (h *RewardHandler) SettleClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	awarded, err := h.service.SettleClaim(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Claim settled",
		"awarded_points": awarded,
	})
}

// GetBalance handles the accrued balance query.
// GET /balance
func (h *RewardHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	status, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	payload := map[string]interface{}{
		"accrued":          status.Accrued,
		"fraction_of_unit": status.FractionOfUnit,
		"is_full_unit":     status.IsFullUnit,
	}
	if !status.IsFullUnit && h.pendingMessage != "" {
		payload["message"] = h.pendingMessage
	}
	h.respondWithJSON(w, http.StatusOK, payload)
}

// GetAccountDetails handles the account details query.
// GET /account
func (h *RewardHandler) GetAccountDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	acct, err := h.service.GetAccountDetails(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":             acct.UserID,
		"mining_rate":         acct.MiningRate,
		"claims_today":        acct.ClaimsToday,
		"last_claim":          acct.LastClaim,
		"next_claim_possible": acct.NextClaimPossible,
		"created_at":          acct.CreatedAt,
	})
}
