package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/pkg/logger"
)

// DefaultNotificationTTL is how long a toast stays visible before it
// expires on its own.
const DefaultNotificationTTL = 4 * time.Second

// NotificationPublisher pushes notification events to connected clients.
// The WebSocket hub satisfies this; a nil publisher disables the feed.
type NotificationPublisher interface {
	BroadcastToSession(sessionID string, message interface{}) error
}

type NotificationService interface {
	Push(sessionID string, notifType model.NotificationType, message string) *model.Notification
	Active(sessionID string) []model.Notification
	Dismiss(sessionID, notificationID string)
	Shutdown()
}

type notificationService struct {
	mu        sync.Mutex
	queues    map[string][]*model.Notification
	timers    map[string]*time.Timer
	ttl       time.Duration
	publisher NotificationPublisher
}

// NewNotificationService builds the per-session toast queue. A zero ttl
// falls back to DefaultNotificationTTL; publisher may be nil.
func NewNotificationService(ttl time.Duration, publisher NotificationPublisher) NotificationService {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &notificationService{
		queues:    make(map[string][]*model.Notification),
		timers:    make(map[string]*time.Timer),
		ttl:       ttl,
		publisher: publisher,
	}
}

func (s *notificationService) Push(sessionID string, notifType model.NotificationType, message string) *model.Notification {
	notification := &model.Notification{
		ID:        uuid.NewString(),
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.queues[sessionID] = append(s.queues[sessionID], notification)
	id := notification.ID
	s.timers[id] = time.AfterFunc(s.ttl, func() {
		s.expire(sessionID, id)
	})
	s.mu.Unlock()

	logger.Debug("Notification pushed", map[string]interface{}{
		"session_id": sessionID,
		"type":       string(notifType),
	})

	if s.publisher != nil {
		event := map[string]interface{}{
			"event":        "notification",
			"notification": notification,
		}
		if err := s.publisher.BroadcastToSession(sessionID, event); err != nil {
			logger.Warn("Failed to publish notification", map[string]interface{}{
				"session_id": sessionID,
			})
		}
	}
	return notification
}

func (s *notificationService) Active(sessionID string) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queues[sessionID]
	active := make([]model.Notification, 0, len(queue))
	for _, n := range queue {
		active = append(active, *n)
	}
	return active
}

// Dismiss removes a notification before its timer fires. Dismissing an
// unknown or already-expired id is a no-op.
func (s *notificationService) Dismiss(sessionID, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeLocked(sessionID, notificationID) {
		return
	}

	if timer, ok := s.timers[notificationID]; ok {
		timer.Stop()
		delete(s.timers, notificationID)
	}
}

// Shutdown stops all pending expiry timers.
func (s *notificationService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.queues = make(map[string][]*model.Notification)
}

func (s *notificationService) expire(sessionID, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(sessionID, notificationID) {
		delete(s.timers, notificationID)
	}
}

func (s *notificationService) removeLocked(sessionID, notificationID string) bool {
	queue, ok := s.queues[sessionID]
	if !ok {
		return false
	}
	for i, n := range queue {
		if n.ID == notificationID {
			s.queues[sessionID] = append(queue[:i], queue[i+1:]...)
			if len(s.queues[sessionID]) == 0 {
				delete(s.queues, sessionID)
			}
			return true
		}
	}
	return false
}
