package repository

import (
	"sync"
	"time"

	"github.com/interno-studio/interno-backend/internal/app/model"
)

// CheckoutRepository holds live checkout sessions. Sessions are ephemeral
// by design: they are destroyed on finish/close and never written to the
// database, so the store is an in-process map rather than a table.
//
// Save and Find copy the session both ways. The gateway callback goroutine
// mutates checkout state concurrently with HTTP handlers, so no caller may
// ever hold a pointer into the stored struct.
type CheckoutRepository interface {
	Save(session *model.CheckoutSession)
	Find(sessionID string) (*model.CheckoutSession, bool)
	Delete(sessionID string)
	DeleteStale(olderThan time.Time) int
}

type checkoutRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.CheckoutSession
}

func NewCheckoutRepository() CheckoutRepository {
	return &checkoutRepository{
		sessions: make(map[string]*model.CheckoutSession),
	}
}

func (r *checkoutRepository) Save(session *model.CheckoutSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *session
	r.sessions[session.SessionID] = &stored
}

func (r *checkoutRepository) Find(sessionID string) (*model.CheckoutSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	copied := *session
	return &copied, true
}

func (r *checkoutRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *checkoutRepository) DeleteStale(olderThan time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(olderThan) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
