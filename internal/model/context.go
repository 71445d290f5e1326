package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores the authenticated session id in a request context.
type ContextManager interface {
	SetSessionIDToContext(ctx context.Context, sessionID uuid.UUID) context.Context
	GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
