package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/model"
)

// Twooter orchestrates registration, logon with replay, follow, posting with
// live push, and deletion. It exclusively owns the directory and the log it
// is constructed with.
//
// Lock order: publishMu, then a user's delivery gate. Directory and log locks
// are leaves and are never held across calls into a Receiver.
type Twooter struct {
	users    model.UserDirectory
	twoots   model.TwootLog
	verifier model.CredentialVerifier
	sessions *Sessions
	logger   *logger.Logger

	// serializes append + fan-out so live pushes follow position order
	publishMu sync.Mutex
	gates     sync.Map
}

func NewTwooter(
	users model.UserDirectory,
	twoots model.TwootLog,
	verifier model.CredentialVerifier,
	logger *logger.Logger,
) *Twooter {
	return &Twooter{
		users:    users,
		twoots:   twoots,
		verifier: verifier,
		sessions: NewSessions(),
		logger:   logger,
	}
}

// LogonResult is either a granted session or an authentication failure.
type LogonResult struct {
	session *Session
}

// Session returns the granted session, or false if authentication failed.
func (r LogonResult) Session() (*Session, bool) {
	return r.session, r.session != nil
}

func (s *Twooter) Register(ctx context.Context, userID model.UserID, password string) (model.RegistrationStatus, error) {
	if userID == "" || password == "" {
		return 0, fmt.Errorf("register: user id and password are required: %w", model.ErrInvalidArgument)
	}

	s.logger.DebugContext(ctx, "Twooter service: registering user",
		"user_id", userID)

	salt, err := s.verifier.NewSalt()
	if err != nil {
		s.logger.ErrorContext(ctx, "Twooter service: failed to generate salt",
			"user_id", userID,
			"error", err.Error())
		return 0, fmt.Errorf("failed to generate salt: %w", err)
	}

	status := s.users.Register(userID, model.Credentials{
		Hash: s.verifier.Hash(password, salt),
		Salt: salt,
	})

	s.logger.InfoContext(ctx, "Twooter service: registration finished",
		"user_id", userID,
		"status", status.String())

	return status, nil
}

// Logon authenticates the user, marks it online with receiver, replays every
// followed twoot positioned after the user's cursor and returns a session.
// Wrong credentials yield an empty result, not an error. When replay stops
// early the user is set offline again and the returned session is already
// closed; the next logon resumes from the cursor.
func (s *Twooter) Logon(ctx context.Context, userID model.UserID, password string, receiver model.Receiver) (LogonResult, error) {
	if userID == "" || receiver == nil {
		return LogonResult{}, fmt.Errorf("logon: user id and receiver are required: %w", model.ErrInvalidArgument)
	}

	user, ok := s.users.Lookup(userID)
	if !ok || !s.authenticate(user, password) {
		s.logger.InfoContext(ctx, "Twooter service: authentication failed",
			"user_id", userID)
		return LogonResult{}, nil
	}

	gate := s.gate(userID)
	gate.Lock()
	defer gate.Unlock()

	previous, err := s.users.SetOnline(userID, receiver)
	if err != nil {
		return LogonResult{}, fmt.Errorf("failed to set user online: %w", err)
	}

	session := newSession(s, userID, receiver)
	if replaced := s.sessions.bind(session); replaced != nil {
		replaced.closed.Store(true)
		s.logger.InfoContext(ctx, "Twooter service: session replaced by new logon",
			"user_id", userID,
			"session_id", replaced.ID())
	}
	if previous != nil && previous != receiver {
		closeReceiver(previous)
	}

	delivered, complete := s.replay(ctx, userID, receiver)
	if !complete {
		// a live push would otherwise move the cursor past the undelivered rest
		s.users.Detach(userID, receiver)
		s.sessions.unbind(session)
		session.closed.Store(true)
		closeReceiver(receiver)

		s.logger.WarnContext(ctx, "Twooter service: replay incomplete, session closed",
			"user_id", userID,
			"session_id", session.ID(),
			"replayed", delivered)

		return LogonResult{session: session}, nil
	}

	s.logger.InfoContext(ctx, "Twooter service: user logged on",
		"user_id", userID,
		"session_id", session.ID(),
		"replayed", delivered,
		"live_sessions", s.sessions.Len())

	return LogonResult{session: session}, nil
}

// Session returns the live session with the given id.
func (s *Twooter) Session(id uuid.UUID) (*Session, bool) {
	return s.sessions.Get(id)
}

func (s *Twooter) authenticate(user model.User, password string) bool {
	hash := s.verifier.Hash(password, user.Credentials.Salt)
	return subtle.ConstantTimeCompare(hash, user.Credentials.Hash) == 1
}

// replay pushes missed twoots in position order, advancing the cursor after
// each delivery. It stops at the first failed delivery and reports whether
// every twoot was delivered. Caller holds the user's gate.
func (s *Twooter) replay(ctx context.Context, userID model.UserID, receiver model.Receiver) (int, bool) {
	twoots := s.twoots.Query(model.TwootQuery{
		Senders: s.users.Following(userID),
		After:   s.users.Cursor(userID),
	})

	for i, twoot := range twoots {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "Twooter service: replay interrupted",
				"user_id", userID,
				"delivered", i,
				"error", err.Error())
			return i, false
		}

		if err := receiver.Deliver(twoot); err != nil {
			s.logger.WarnContext(ctx, "Twooter service: replay delivery failed",
				"user_id", userID,
				"twoot_id", twoot.ID,
				"position", twoot.Position,
				"error", err.Error())
			return i, false
		}
		s.users.AdvanceCursor(userID, twoot.Position)
	}

	return len(twoots), true
}

func (s *Twooter) follow(ctx context.Context, followerID, followeeID model.UserID) model.FollowStatus {
	status := s.users.Follow(followerID, followeeID)

	s.logger.DebugContext(ctx, "Twooter service: follow",
		"user_id", followerID,
		"target", followeeID,
		"status", status.String())

	return status
}

func (s *Twooter) unfollow(ctx context.Context, followerID, followeeID model.UserID) model.FollowStatus {
	status := s.users.Unfollow(followerID, followeeID)

	s.logger.DebugContext(ctx, "Twooter service: unfollow",
		"user_id", followerID,
		"target", followeeID,
		"status", status.String())

	return status
}

func (s *Twooter) sendTwoot(ctx context.Context, senderID model.UserID, id, content string) (model.Position, error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	twoot, err := s.twoots.Append(id, senderID, content)
	if err != nil {
		return model.InitialPosition, fmt.Errorf("failed to append twoot: %w", err)
	}

	followers := s.users.OnlineFollowers(senderID)
	pushed := 0
	for _, follower := range followers {
		if s.push(ctx, follower.UserID, twoot) {
			pushed++
		}
	}

	s.logger.DebugContext(ctx, "Twooter service: twoot published",
		"user_id", senderID,
		"twoot_id", id,
		"position", twoot.Position,
		"online_followers", len(followers),
		"pushed", pushed)

	return twoot.Position, nil
}

// push delivers twoot to the user's current receiver unless the user went
// offline or already saw it through replay.
func (s *Twooter) push(ctx context.Context, userID model.UserID, twoot model.Twoot) bool {
	gate := s.gate(userID)
	gate.Lock()
	defer gate.Unlock()

	receiver, ok := s.users.Receiver(userID)
	if !ok {
		return false
	}
	if !twoot.Position.IsAfter(s.users.Cursor(userID)) {
		return false
	}

	if err := receiver.Deliver(twoot); err != nil {
		s.logger.WarnContext(ctx, "Twooter service: push failed, detaching receiver",
			"user_id", userID,
			"twoot_id", twoot.ID,
			"position", twoot.Position,
			"error", err.Error())
		s.users.Detach(userID, receiver)
		return false
	}

	s.users.AdvanceCursor(userID, twoot.Position)

	return true
}

func (s *Twooter) deleteTwoot(ctx context.Context, requesterID model.UserID, id string) model.DeleteStatus {
	twoot, ok := s.twoots.Get(id)
	if !ok {
		return model.DeleteUnknownTwoot
	}
	if twoot.SenderID != requesterID {
		s.logger.InfoContext(ctx, "Twooter service: refused to delete foreign twoot",
			"user_id", requesterID,
			"twoot_id", id,
			"sender_id", twoot.SenderID)
		return model.DeleteNotYourTwoot
	}
	if !s.twoots.Delete(twoot) {
		return model.DeleteUnknownTwoot
	}

	s.logger.DebugContext(ctx, "Twooter service: twoot deleted",
		"user_id", requesterID,
		"twoot_id", id,
		"position", twoot.Position)

	return model.DeleteSuccess
}

func (s *Twooter) logoff(ctx context.Context, session *Session) {
	gate := s.gate(session.userID)
	gate.Lock()
	defer gate.Unlock()

	detached := s.users.Detach(session.userID, session.receiver)
	s.sessions.unbind(session)
	closeReceiver(session.receiver)

	s.logger.InfoContext(ctx, "Twooter service: user logged off",
		"user_id", session.userID,
		"session_id", session.ID(),
		"detached", detached)
}

func (s *Twooter) gate(userID model.UserID) *sync.Mutex {
	gate, _ := s.gates.LoadOrStore(userID, &sync.Mutex{})
	return gate.(*sync.Mutex)
}

func closeReceiver(receiver model.Receiver) {
	if c, ok := receiver.(io.Closer); ok {
		_ = c.Close()
	}
}
