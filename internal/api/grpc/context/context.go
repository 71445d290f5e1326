package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/twooter-server/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

// sessionIDKey is the metadata key the authenticated session id travels under.
const (
	sessionIDKey string = "x-session-id"
)

// Manager stores the authenticated session id in incoming gRPC metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetSessionIDToContext overwrites any client supplied value, so handlers
// only ever see the id resolved from the bearer token.
func (m *Manager) SetSessionIDToContext(ctx context.Context, sessionID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{sessionIDKey: sessionID.String()})
	} else {
		md = md.Copy()
		md.Set(sessionIDKey, sessionID.String())
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetSessionIDFromContext returns the session id set by SetSessionIDToContext.
func (m *Manager) GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	ids := md.Get(sessionIDKey)
	if len(ids) == 0 {
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ids[0])
	if err != nil {
		return uuid.Nil, false
	}

	return sessionID, true
}
