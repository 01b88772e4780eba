package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/internal/models"
)

func TestSessionEventRepositoryPublishSubscribe(t *testing.T) {
	_, client := newMiniRedis(t)
	repo := NewSessionEventRepository(client, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan models.AuthEvent, 1)
	require.NoError(t, repo.Subscribe(ctx, func(_ context.Context, event models.AuthEvent) {
		received <- event
	}))

	require.NoError(t, client.Publish(ctx, DefaultAuthChannel, "not-json").Err())
	require.NoError(t, repo.Publish(ctx, models.AuthEvent{ID: "e-1", Type: models.AuthEventSignedOut, UserID: "u-1", OccurredAt: time.Now().UTC()}))

	select {
	case event := <-received:
		assert.Equal(t, "u-1", event.UserID)
		assert.Equal(t, models.AuthEventSignedOut, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("auth event was not delivered")
	}
}

func TestSessionEventRepositoryNilClient(t *testing.T) {
	repo := NewSessionEventRepository(nil, "", nil)
	assert.NoError(t, repo.Publish(context.Background(), models.AuthEvent{}))
	assert.NoError(t, repo.Subscribe(context.Background(), func(context.Context, models.AuthEvent) {}))
}
