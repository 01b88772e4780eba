package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/models"
)

type authEventSubscriber interface {
	Subscribe(ctx context.Context, handle func(context.Context, models.AuthEvent)) error
}

// SessionEventListener drops a user's cached dashboards whenever their
// session state changes.
type SessionEventListener struct {
	events  authEventSubscriber
	evictor cacheEvictor
	logger  *zap.Logger
}

// NewSessionEventListener constructs the listener.
func NewSessionEventListener(events authEventSubscriber, evictor cacheEvictor, logger *zap.Logger) *SessionEventListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionEventListener{events: events, evictor: evictor, logger: logger}
}

// Start subscribes until ctx is cancelled.
func (l *SessionEventListener) Start(ctx context.Context) error {
	return l.events.Subscribe(ctx, l.Handle)
}

// Handle reacts to one auth-state event.
func (l *SessionEventListener) Handle(ctx context.Context, event models.AuthEvent) {
	if event.UserID == "" {
		return
	}
	l.logger.Debug("auth event", zap.String("type", string(event.Type)), zap.String("user_id", event.UserID))
	if l.evictor != nil {
		l.evictor.Invalidate(ctx, dashboardUserPattern(event.UserID))
	}
}
