package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twooter-server/internal/api/grpc/wire"
	"github.com/dtroode/twooter-server/internal/delivery"
	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/model"
	"github.com/dtroode/twooter-server/internal/service"
)

var _ wire.TwooterServer = (*Twooter)(nil)

// TwooterService defines registration, logon and session lookup.
type TwooterService interface {
	Register(ctx context.Context, userID model.UserID, password string) (model.RegistrationStatus, error)
	Logon(ctx context.Context, userID model.UserID, password string, receiver model.Receiver) (service.LogonResult, error)
	Session(id uuid.UUID) (*service.Session, bool)
}

// TokenIssuer issues bearer tokens for sessions.
type TokenIssuer interface {
	Issue(ctx context.Context, session *service.Session) (string, error)
}

// Twooter handles gRPC endpoints of the twooter.Twooter service.
type Twooter struct {
	twooterService TwooterService
	tokenIssuer    TokenIssuer
	contextManager model.ContextManager
	mailboxSize    int
	logger         *logger.Logger
}

// NewTwooter creates a new Twooter handler. Each Logon stream gets a mailbox
// of mailboxSize twoots.
func NewTwooter(
	twooterService TwooterService,
	tokenIssuer TokenIssuer,
	contextManager model.ContextManager,
	mailboxSize int,
	logger *logger.Logger,
) *Twooter {
	return &Twooter{
		twooterService: twooterService,
		tokenIssuer:    tokenIssuer,
		contextManager: contextManager,
		mailboxSize:    mailboxSize,
		logger:         logger,
	}
}

// Register creates a user. A taken user id is reported in the status.
func (h *Twooter) Register(ctx context.Context, req *wire.RegisterRequest) (*wire.RegisterResponse, error) {
	h.logger.Debug("Twooter handler: processing register request",
		"user_id", req.UserID)

	result, err := h.twooterService.Register(ctx, model.UserID(req.UserID), req.Password)
	if err != nil {
		h.logger.Error("Twooter handler: register failed",
			"user_id", req.UserID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &wire.RegisterResponse{Status: result.String()}, nil
}

// Logon authenticates the user and keeps the stream open as the session's
// receiver. The first event carries the bearer token; replayed and live
// twoots follow in position order. The stream ends on logoff, on a newer
// logon of the same user or on mailbox overflow. A client disconnect logs
// the session off.
func (h *Twooter) Logon(req *wire.LogonRequest, stream grpc.ServerStreamingServer[wire.Event]) error {
	ctx := stream.Context()

	h.logger.Debug("Twooter handler: processing logon request",
		"user_id", req.UserID)

	mailbox := delivery.NewMailbox(h.mailboxSize)

	result, err := h.twooterService.Logon(ctx, model.UserID(req.UserID), req.Password, mailbox)
	if err != nil {
		h.logger.Error("Twooter handler: logon failed",
			"user_id", req.UserID,
			"error", err.Error())
		return handleError(err)
	}

	session, ok := result.Session()
	if !ok {
		return status.Error(codes.Unauthenticated, "invalid user id or password")
	}
	defer func() {
		_ = session.Logoff(context.WithoutCancel(ctx))
	}()

	token, err := h.tokenIssuer.Issue(ctx, session)
	if err != nil {
		return handleError(err)
	}

	if err := stream.Send(&wire.Event{Session: &wire.SessionEvent{Token: token, UserID: req.UserID}}); err != nil {
		return err
	}

	return h.pump(ctx, session, mailbox, stream)
}

func (h *Twooter) pump(ctx context.Context, session *service.Session, mailbox *delivery.Mailbox, stream grpc.ServerStreamingServer[wire.Event]) error {
	lg := h.logger.With("user_id", session.UserID(), "session_id", session.ID())

	for {
		select {
		case twoot, ok := <-mailbox.C():
			if !ok {
				if err := mailbox.Err(); err != nil {
					lg.Warn("Twooter handler: mailbox overflow, closing stream")
					return handleError(err)
				}
				return nil
			}
			if err := stream.Send(toEvent(twoot)); err != nil {
				lg.Warn("Twooter handler: failed to send twoot",
					"twoot_id", twoot.ID,
					"error", err.Error())
				return err
			}
		case <-ctx.Done():
			lg.Info("Twooter handler: logon stream closed by client")
			return status.FromContextError(ctx.Err()).Err()
		}
	}
}

func (h *Twooter) Follow(ctx context.Context, req *wire.FollowRequest) (*wire.FollowResponse, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.Follow(ctx, model.UserID(req.UserID))
	if err != nil {
		return nil, handleError(err)
	}

	return &wire.FollowResponse{Status: result.String()}, nil
}

func (h *Twooter) Unfollow(ctx context.Context, req *wire.FollowRequest) (*wire.FollowResponse, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.Unfollow(ctx, model.UserID(req.UserID))
	if err != nil {
		return nil, handleError(err)
	}

	return &wire.FollowResponse{Status: result.String()}, nil
}

func (h *Twooter) SendTwoot(ctx context.Context, req *wire.SendTwootRequest) (*wire.SendTwootResponse, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	position, err := session.SendTwoot(ctx, req.ID, req.Content)
	if err != nil {
		if !errors.Is(err, model.ErrDuplicateTwootID) && !errors.Is(err, model.ErrInvalidArgument) {
			h.logger.Error("Twooter handler: send twoot failed",
				"user_id", session.UserID(),
				"twoot_id", req.ID,
				"error", err.Error())
		}
		return nil, handleError(err)
	}

	return &wire.SendTwootResponse{Position: int64(position)}, nil
}

func (h *Twooter) DeleteTwoot(ctx context.Context, req *wire.DeleteTwootRequest) (*wire.DeleteTwootResponse, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.DeleteTwoot(ctx, req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	return &wire.DeleteTwootResponse{Status: result.String()}, nil
}

// Logoff ends the session. Its Logon stream completes once drained.
func (h *Twooter) Logoff(ctx context.Context, _ *wire.Empty) (*wire.Empty, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	if err := session.Logoff(ctx); err != nil {
		return nil, handleError(err)
	}

	return &wire.Empty{}, nil
}

func (h *Twooter) session(ctx context.Context) (*service.Session, error) {
	sessionID, ok := h.contextManager.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "session id not found in context")
	}

	session, ok := h.twooterService.Session(sessionID)
	if !ok {
		return nil, handleError(model.ErrSessionClosed)
	}

	return session, nil
}

func toEvent(twoot model.Twoot) *wire.Event {
	return &wire.Event{Twoot: &wire.TwootEvent{
		ID:       twoot.ID,
		SenderID: string(twoot.SenderID),
		Content:  twoot.Content,
		Position: int64(twoot.Position),
	}}
}
