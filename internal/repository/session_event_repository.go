package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/models"
)

// DefaultAuthChannel is the pub/sub channel carrying auth-state events.
const DefaultAuthChannel = "careplan:auth-events"

// SessionEventRepository publishes and consumes auth-state events over Redis pub/sub.
type SessionEventRepository struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewSessionEventRepository builds the event bus on channel.
func NewSessionEventRepository(client *redis.Client, channel string, logger *zap.Logger) *SessionEventRepository {
	if channel == "" {
		channel = DefaultAuthChannel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionEventRepository{client: client, channel: channel, logger: logger}
}

// Publish broadcasts an event. A nil client turns publishing into a no-op.
func (r *SessionEventRepository) Publish(ctx context.Context, event models.AuthEvent) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode auth event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish auth event: %w", err)
	}
	return nil
}

// Subscribe confirms the subscription and then delivers events to handle in
// a background goroutine until ctx is cancelled.
func (r *SessionEventRepository) Subscribe(ctx context.Context, handle func(context.Context, models.AuthEvent)) error {
	if r.client == nil {
		return nil
	}
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	go func() {
		defer sub.Close()
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event models.AuthEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					r.logger.Warn("discarding malformed auth event", zap.Error(err))
					continue
				}
				handle(ctx, event)
			}
		}
	}()
	return nil
}
