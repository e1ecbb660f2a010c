package service

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *capturingPublisher) BroadcastToSession(sessionID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.events = append(p.events, string(data))
	p.mu.Unlock()
	return nil
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestNotificationService_PushAndActive(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	t.Cleanup(svc.Shutdown)

	pushed := svc.Push("sess-1", model.NotificationSuccess, "Lamp added to cart!")
	require.NotEmpty(t, pushed.ID)

	active := svc.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, pushed.ID, active[0].ID)
	assert.Equal(t, model.NotificationSuccess, active[0].Type)
	assert.Equal(t, "Lamp added to cart!", active[0].Message)
}

func TestNotificationService_ExpiresAfterTTL(t *testing.T) {
	svc := NewNotificationService(30*time.Millisecond, nil)
	t.Cleanup(svc.Shutdown)

	svc.Push("sess-1", model.NotificationInfo, "hello")
	require.Len(t, svc.Active("sess-1"), 1)

	assert.Eventually(t, func() bool {
		return len(svc.Active("sess-1")) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationService_DismissCancelsExpiry(t *testing.T) {
	svc := NewNotificationService(30*time.Millisecond, nil)
	t.Cleanup(svc.Shutdown)

	pushed := svc.Push("sess-1", model.NotificationError, "something broke")
	svc.Dismiss("sess-1", pushed.ID)
	assert.Len(t, svc.Active("sess-1"), 0)

	// Dismissing again is a no-op
	svc.Dismiss("sess-1", pushed.ID)
	assert.Len(t, svc.Active("sess-1"), 0)
}

func TestNotificationService_DismissUnknown(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	t.Cleanup(svc.Shutdown)

	svc.Dismiss("sess-1", "nope")
	assert.Len(t, svc.Active("sess-1"), 0)
}

func TestNotificationService_QueueOrderPreserved(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	t.Cleanup(svc.Shutdown)

	first := svc.Push("sess-1", model.NotificationInfo, "first")
	second := svc.Push("sess-1", model.NotificationInfo, "second")
	third := svc.Push("sess-1", model.NotificationInfo, "third")

	svc.Dismiss("sess-1", second.ID)

	active := svc.Active("sess-1")
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)
}

func TestNotificationService_SessionsAreIsolated(t *testing.T) {
	svc := NewNotificationService(time.Minute, nil)
	t.Cleanup(svc.Shutdown)

	svc.Push("sess-1", model.NotificationInfo, "only for sess-1")
	assert.Len(t, svc.Active("sess-2"), 0)
}

func TestNotificationService_PublishesToFeed(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := NewNotificationService(time.Minute, publisher)
	t.Cleanup(svc.Shutdown)

	svc.Push("sess-1", model.NotificationSuccess, "published")
	assert.Equal(t, 1, publisher.count())
}
