package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	client := &Client{Hub: hub, SessionID: "sess-1", Send: make(chan []byte, 4)}
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.IsSessionConnected("sess-1")
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.BroadcastToSession("sess-1", map[string]string{"event": "ping"}))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "ping")
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHub_Stop_ClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, SessionID: "sess-1", Send: make(chan []byte, 4)}
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.IsSessionConnected("sess-1")
	}, time.Second, 5*time.Millisecond)

	hub.Stop()

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on stop")
	}
	assert.False(t, hub.IsSessionConnected("sess-1"))
}
