package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcctx "github.com/dtroode/twooter-server/internal/api/grpc/context"
	"github.com/dtroode/twooter-server/internal/api/grpc/wire"
	"github.com/dtroode/twooter-server/internal/credential"
	"github.com/dtroode/twooter-server/internal/directory"
	"github.com/dtroode/twooter-server/internal/mocks"
	"github.com/dtroode/twooter-server/internal/model"
	"github.com/dtroode/twooter-server/internal/service"
	"github.com/dtroode/twooter-server/internal/testutil"
	"github.com/dtroode/twooter-server/internal/token"
	"github.com/dtroode/twooter-server/internal/twootlog"
)

// fakeLogonStream collects sent events.
type fakeLogonStream struct {
	grpc.ServerStream
	ctx    context.Context
	events chan *wire.Event
}

func newFakeLogonStream(ctx context.Context) *fakeLogonStream {
	return &fakeLogonStream{ctx: ctx, events: make(chan *wire.Event, 64)}
}

func (f *fakeLogonStream) Context() context.Context { return f.ctx }
func (f *fakeLogonStream) Send(e *wire.Event) error {
	f.events <- e
	return nil
}

func (f *fakeLogonStream) next(t *testing.T) *wire.Event {
	t.Helper()
	select {
	case e := <-f.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return nil
	}
}

type env struct {
	handler  *Twooter
	twooter  *service.Twooter
	tokens   *service.TokenService
	ctxMgr   *grpcctx.Manager
	manager  model.TokenManager
	register func(id string)
}

func newEnv(t *testing.T, mailboxSize int) *env {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	svc := service.NewTwooter(
		directory.New(),
		twootlog.New(),
		credential.NewArgon2(credential.KDFParams{Time: 1, MemKiB: 64, Par: 1}),
		lg,
	)
	manager := token.NewJWT("secret", time.Hour)
	tokens := service.NewTokenService(manager, svc, lg)
	ctxMgr := grpcctx.NewManager()

	e := &env{
		handler: NewTwooter(svc, tokens, ctxMgr, mailboxSize, lg),
		twooter: svc,
		tokens:  tokens,
		ctxMgr:  ctxMgr,
		manager: manager,
	}
	e.register = func(id string) {
		resp, err := e.handler.Register(context.Background(), &wire.RegisterRequest{UserID: id, Password: id + "-pw"})
		require.NoError(t, err)
		require.Equal(t, model.RegistrationSuccess.String(), resp.Status)
	}

	return e
}

// logon starts a Logon stream and returns it together with an authenticated
// context for unary calls.
func (e *env) logon(t *testing.T, id string) (*fakeLogonStream, context.Context, context.CancelFunc, chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	stream := newFakeLogonStream(ctx)
	done := make(chan error, 1)
	go func() {
		done <- e.handler.Logon(&wire.LogonRequest{UserID: id, Password: id + "-pw"}, stream)
	}()

	first := stream.next(t)
	require.NotNil(t, first.Session)
	assert.Equal(t, id, first.Session.UserID)

	sid, err := e.tokens.GetSessionID(context.Background(), first.Session.Token)
	require.NoError(t, err)

	return stream, e.ctxMgr.SetSessionIDToContext(context.Background(), sid), cancel, done
}

func TestTwooter_Register_Duplicate(t *testing.T) {
	e := newEnv(t, 16)
	e.register("joe")

	resp, err := e.handler.Register(context.Background(), &wire.RegisterRequest{UserID: "joe", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationDuplicate.String(), resp.Status)

	_, err = e.handler.Register(context.Background(), &wire.RegisterRequest{UserID: "", Password: "x"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestTwooter_Logon_WrongPassword(t *testing.T) {
	e := newEnv(t, 16)
	e.register("joe")

	stream := newFakeLogonStream(context.Background())
	err := e.handler.Logon(&wire.LogonRequest{UserID: "joe", Password: "nope"}, stream)

	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Empty(t, stream.events)
}

func TestTwooter_LiveAndLogoff(t *testing.T) {
	e := newEnv(t, 16)
	e.register("alice")
	e.register("bob")

	aliceStream, aliceCtx, aliceCancel, aliceDone := e.logon(t, "alice")
	defer aliceCancel()

	follow, err := e.handler.Follow(aliceCtx, &wire.FollowRequest{UserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, model.FollowSuccess.String(), follow.Status)

	_, bobCtx, bobCancel, _ := e.logon(t, "bob")
	defer bobCancel()

	sent, err := e.handler.SendTwoot(bobCtx, &wire.SendTwootRequest{ID: "t1", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent.Position)

	ev := aliceStream.next(t)
	require.NotNil(t, ev.Twoot)
	assert.Equal(t, wire.TwootEvent{ID: "t1", SenderID: "bob", Content: "hi", Position: 1}, *ev.Twoot)

	_, err = e.handler.SendTwoot(bobCtx, &wire.SendTwootRequest{ID: "t1", Content: "again"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.AlreadyExists, st.Code())

	del, err := e.handler.DeleteTwoot(aliceCtx, &wire.DeleteTwootRequest{ID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, model.DeleteNotYourTwoot.String(), del.Status)

	_, err = e.handler.Logoff(aliceCtx, &wire.Empty{})
	require.NoError(t, err)

	select {
	case err := <-aliceDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("logon stream did not end after logoff")
	}

	_, err = e.handler.Follow(aliceCtx, &wire.FollowRequest{UserID: "bob"})
	st, _ = status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestTwooter_ClientDisconnect_LogsOff(t *testing.T) {
	e := newEnv(t, 16)
	e.register("alice")

	_, aliceCtx, cancel, done := e.logon(t, "alice")
	cancel()

	select {
	case err := <-done:
		st, _ := status.FromError(err)
		assert.Equal(t, codes.Canceled, st.Code())
	case <-time.After(2 * time.Second):
		t.Fatal("logon stream did not end after cancel")
	}

	sid, ok := e.ctxMgr.GetSessionIDFromContext(aliceCtx)
	require.True(t, ok)
	_, ok = e.twooter.Session(sid)
	assert.False(t, ok)
}

func TestTwooter_Replay_OverflowEndsStream(t *testing.T) {
	e := newEnv(t, 2)
	e.register("alice")
	e.register("bob")

	_, aliceCtx, aliceCancel, aliceDone := e.logon(t, "alice")
	_, err := e.handler.Follow(aliceCtx, &wire.FollowRequest{UserID: "bob"})
	require.NoError(t, err)
	_, err = e.handler.Logoff(aliceCtx, &wire.Empty{})
	require.NoError(t, err)
	<-aliceDone
	aliceCancel()

	_, bobCtx, bobCancel, _ := e.logon(t, "bob")
	defer bobCancel()
	for _, id := range []string{"t1", "t2", "t3", "t4"} {
		_, err := e.handler.SendTwoot(bobCtx, &wire.SendTwootRequest{ID: id, Content: id})
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := newFakeLogonStream(ctx)
	done := make(chan error, 1)
	go func() {
		done <- e.handler.Logon(&wire.LogonRequest{UserID: "alice", Password: "alice-pw"}, stream)
	}()

	first := stream.next(t)
	require.NotNil(t, first.Session)
	_, err = e.tokens.GetSessionID(context.Background(), first.Session.Token)
	assert.ErrorIs(t, err, model.ErrSessionClosed)

	assert.Equal(t, "t1", stream.next(t).Twoot.ID)
	assert.Equal(t, "t2", stream.next(t).Twoot.ID)

	select {
	case err := <-done:
		st, _ := status.FromError(err)
		assert.Equal(t, codes.ResourceExhausted, st.Code())
	case <-time.After(2 * time.Second):
		t.Fatal("overflowed stream did not end")
	}

	_, err = e.handler.SendTwoot(bobCtx, &wire.SendTwootRequest{ID: "t5", Content: "t5"})
	require.NoError(t, err)

	resumed, _, cancel2, _ := e.logon(t, "alice")
	defer cancel2()
	assert.Equal(t, "t3", resumed.next(t).Twoot.ID)
	assert.Equal(t, "t4", resumed.next(t).Twoot.ID)
}

func TestTwooter_MissingSessionInContext(t *testing.T) {
	e := newEnv(t, 16)

	_, err := e.handler.Follow(context.Background(), &wire.FollowRequest{UserID: "bob"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())

	_, err = e.handler.SendTwoot(e.ctxMgr.SetSessionIDToContext(context.Background(), uuid.New()), &wire.SendTwootRequest{ID: "t1"})
	st, _ = status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestTwooter_Logon_TokenIssueFails(t *testing.T) {
	lg := testutil.MakeNoopLogger()
	svc := service.NewTwooter(
		directory.New(),
		twootlog.New(),
		credential.NewArgon2(credential.KDFParams{Time: 1, MemKiB: 64, Par: 1}),
		lg,
	)
	manager := mocks.NewTokenManager(t)
	manager.On("GenerateSessionToken", mock.Anything, model.UserID("joe")).Return("", assert.AnError).Once()

	h := NewTwooter(svc, service.NewTokenService(manager, svc, lg), grpcctx.NewManager(), 16, lg)
	_, err := h.Register(context.Background(), &wire.RegisterRequest{UserID: "joe", Password: "pw"})
	require.NoError(t, err)

	err = h.Logon(&wire.LogonRequest{UserID: "joe", Password: "pw"}, newFakeLogonStream(context.Background()))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
}
