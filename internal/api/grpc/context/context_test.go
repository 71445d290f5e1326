package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetSessionID(t *testing.T) {
	m := NewManager()
	sid := uuid.New()
	ctx := m.SetSessionIDToContext(stdctx.Background(), sid)

	got, ok := m.GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sid, got)
}

func TestManager_GetSessionID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetSessionIDFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs("x-trace-id", "t"))
	_, ok = m.GetSessionIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetSessionID_OverridesClientValue(t *testing.T) {
	m := NewManager()
	sid := uuid.New()
	forged := uuid.New()
	baseMD := metadata.New(map[string]string{"x-trace-id": "t", sessionIDKey: forged.String()})
	ctxWithMD := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetSessionIDToContext(ctxWithMD, sid)
	got, ok := m.GetSessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sid, got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))
	assert.Equal(t, []string{forged.String()}, baseMD.Get(sessionIDKey))
}

func TestManager_GetSessionID_InvalidUUID(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{sessionIDKey: "not-a-uuid"})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)
	_, ok := m.GetSessionIDFromContext(ctx)
	assert.False(t, ok)
}
