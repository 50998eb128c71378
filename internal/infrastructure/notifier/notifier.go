package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/willowbank/ledger/internal/domain"
)

// RedisNotifier publishes balance-changed events on a Redis pub/sub
// channel. Subscribers (UI refresh, push alerts) are outside this service;
// delivery is best-effort.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

// BalanceChanged publishes a balance-changed event for the account.
func (n *RedisNotifier) BalanceChanged(ctx context.Context, accountID int64) error {
	event := domain.BalanceChangedEvent{
		EventID:    ulid.Make().String(),
		EventType:  domain.EventTypeBalanceChanged,
		AccountID:  accountID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, n.channel, payload).Err()
}

// LogNotifier writes balance-changed events to the log. Used when Redis
// is not configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BalanceChanged logs a balance-changed event for the account.
func (n *LogNotifier) BalanceChanged(ctx context.Context, accountID int64) error {
	n.logger.Info().
		Str("event_id", ulid.Make().String()).
		Str("event_type", domain.EventTypeBalanceChanged).
		Int64("account_id", accountID).
		Msg("balance changed")

	return nil
}
