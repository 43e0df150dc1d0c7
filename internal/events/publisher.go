// internal/events/publisher.go
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SettlementEvent is emitted after a claim has committed.
type SettlementEvent struct {
	EventID   string          `json:"event_id"`
	UserID    string          `json:"user_id"`
	Awarded   decimal.Decimal `json:"awarded"`
	SettledAt time.Time       `json:"settled_at"`
}

// Publisher delivers settlement events to downstream consumers. Events are
// published only after the settlement transaction commits; delivery is
// best-effort and never affects the committed state.
type Publisher interface {
	PublishSettlement(ctx context.Context, userID string, awarded decimal.Decimal, settledAt time.Time) error
	Close() error
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSettlement(ctx context.Context, userID string, awarded decimal.Decimal, settledAt time.Time) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
