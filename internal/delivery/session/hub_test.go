package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublish(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := hub.Subscribe(ctx, "game")
	b, unsubB := hub.Subscribe(ctx, "game")
	other, _ := hub.Subscribe(ctx, "other")
	assert.Equal(t, 2, hub.Subscribers("game"))

	hub.Publish("game", []byte("move"))
	assert.Equal(t, []byte("move"), <-a)
	assert.Equal(t, []byte("move"), <-b)
	select {
	case <-other:
		t.Fatal("update leaked to another session")
	default:
	}

	unsubB()
	_, open := <-b
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers("game"))
}

func TestHubUnsubscribesOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := hub.Subscribe(ctx, "game")

	cancel()
	select {
	case _, open := <-ch:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
	assert.Equal(t, 0, hub.Subscribers("game"))
}

func TestHubPublishDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := hub.Subscribe(ctx, "game")

	for i := 0; i < 100; i++ {
		hub.Publish("game", []byte{byte(i)})
	}
	assert.Len(t, ch, cap(ch))
}
