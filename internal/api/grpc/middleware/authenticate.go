package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the live session a bearer token names.
type TokenService interface {
	GetSessionID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the session id into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the Authorization header, validates the token and returns
// a context carrying the session id.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	sessionID, authErr := m.authenticateSession(ctx, tokenString)
	if authErr != nil {
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetSessionIDToContext(ctx, sessionID), nil
}

func (m *Authenticate) authenticateSession(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, errMissingToken
	}

	sessionID, err := m.tokenService.GetSessionID(ctx, tokenString)
	if err != nil {
		m.logger.DebugContext(ctx, "Authenticate middleware: token rejected",
			"error", err.Error())
		return uuid.Nil, errInvalidToken
	}

	if sessionID == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}

	return sessionID, nil
}
