package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/model"
)

// SessionLookup resolves a live session by id.
type SessionLookup interface {
	Session(id uuid.UUID) (*Session, bool)
}

// TokenService issues bearer tokens for sessions and resolves them back. A
// token is honoured only while its session is live, so logoff revokes it.
type TokenService struct {
	manager  model.TokenManager
	sessions SessionLookup
	logger   *logger.Logger
}

func NewTokenService(manager model.TokenManager, sessions SessionLookup, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, sessions: sessions, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, session *Session) (string, error) {
	token, err := s.manager.GenerateSessionToken(session.ID(), session.UserID())
	if err != nil {
		s.logger.ErrorContext(ctx, "Token service: failed to issue session token",
			"user_id", session.UserID(),
			"error", err.Error())
		return "", fmt.Errorf("issue session token: %w", err)
	}

	return token, nil
}

// GetSessionID validates token and returns the id of the live session it
// names.
func (s *TokenService) GetSessionID(ctx context.Context, token string) (uuid.UUID, error) {
	sessionID, userID, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return uuid.Nil, err
	}

	session, ok := s.sessions.Session(sessionID)
	if !ok || session.UserID() != userID {
		s.logger.DebugContext(ctx, "Token service: token names no live session",
			"session_id", sessionID,
			"user_id", userID)
		return uuid.Nil, model.ErrSessionClosed
	}

	return sessionID, nil
}
