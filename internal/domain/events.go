package domain

import "time"

// Event types
const (
	EventTypeBalanceChanged = "balance.changed"
)

// BalanceChangedEvent is published after an operation changed an
// account's balance. Delivery is best-effort.
type BalanceChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	AccountID  int64     `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
