package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dtroode/twooter-server/internal/model"
)

// Session is the capability handed to an authenticated user. Every operation
// acts on behalf of the bound user.
type Session struct {
	id       uuid.UUID
	userID   model.UserID
	receiver model.Receiver
	twooter  *Twooter
	closed   atomic.Bool
}

func newSession(twooter *Twooter, userID model.UserID, receiver model.Receiver) *Session {
	return &Session{
		id:       uuid.New(),
		userID:   userID,
		receiver: receiver,
		twooter:  twooter,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) UserID() model.UserID {
	return s.userID
}

// Closed reports whether the session was logged off or replaced.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func (s *Session) Follow(ctx context.Context, userID model.UserID) (model.FollowStatus, error) {
	if s.closed.Load() {
		return 0, model.ErrSessionClosed
	}
	return s.twooter.follow(ctx, s.userID, userID), nil
}

func (s *Session) Unfollow(ctx context.Context, userID model.UserID) (model.FollowStatus, error) {
	if s.closed.Load() {
		return 0, model.ErrSessionClosed
	}
	return s.twooter.unfollow(ctx, s.userID, userID), nil
}

// SendTwoot publishes content under the caller supplied id and returns the
// position it was assigned.
func (s *Session) SendTwoot(ctx context.Context, id, content string) (model.Position, error) {
	if s.closed.Load() {
		return model.InitialPosition, model.ErrSessionClosed
	}
	if id == "" {
		return model.InitialPosition, fmt.Errorf("send twoot: id is required: %w", model.ErrInvalidArgument)
	}
	return s.twooter.sendTwoot(ctx, s.userID, id, content)
}

func (s *Session) DeleteTwoot(ctx context.Context, id string) (model.DeleteStatus, error) {
	if s.closed.Load() {
		return 0, model.ErrSessionClosed
	}
	return s.twooter.deleteTwoot(ctx, s.userID, id), nil
}

// Logoff detaches the session's receiver and closes the session. Calling it
// again is a no-op.
func (s *Session) Logoff(ctx context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}
	s.twooter.logoff(ctx, s)
	return nil
}
