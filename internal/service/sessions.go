package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/twooter-server/internal/model"
)

// Sessions indexes live sessions by id and by user. A user holds at most one
// live session.
type Sessions struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Session
	byUser map[model.UserID]*Session
}

func NewSessions() *Sessions {
	return &Sessions{
		byID:   make(map[uuid.UUID]*Session),
		byUser: make(map[model.UserID]*Session),
	}
}

func (r *Sessions) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byID[id]
	return session, ok
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// bind registers session and returns the session it replaced for the same
// user, if any.
func (r *Sessions) bind(session *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.byUser[session.userID]
	if previous != nil {
		delete(r.byID, previous.id)
	}
	r.byID[session.id] = session
	r.byUser[session.userID] = session

	return previous
}

// unbind removes session unless it was already replaced.
func (r *Sessions) unbind(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, session.id)
	if r.byUser[session.userID] == session {
		delete(r.byUser, session.userID)
	}
}
