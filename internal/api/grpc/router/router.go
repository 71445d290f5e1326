package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/twooter-server/internal/api/grpc/handler"
	"github.com/dtroode/twooter-server/internal/api/grpc/middleware"
	"github.com/dtroode/twooter-server/internal/api/grpc/wire"
	"github.com/dtroode/twooter-server/internal/logger"
	"github.com/dtroode/twooter-server/internal/model"
	"github.com/dtroode/twooter-server/internal/service"
)

// Router wires the twooter.Twooter handler and its interceptors into a gRPC
// server.
type Router struct {
	twooterService *service.Twooter
	tokenService   *service.TokenService
	contextManager model.ContextManager
	mailboxSize    int
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	twooterService *service.Twooter,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	mailboxSize int,
	logger *logger.Logger,
) *Router {
	return &Router{
		twooterService: twooterService,
		tokenService:   tokenService,
		contextManager: contextManager,
		mailboxSize:    mailboxSize,
		logger:         logger,
	}
}

// authRequired reports whether the call needs a bearer token. Register and
// Logon are how a client obtains one.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	switch c.FullMethod() {
	case wire.RegisterMethod, wire.LogonMethod:
		return false
	default:
		return true
	}
}

// Register builds the gRPC server with request logging and authentication
// interceptors and registers the twooter service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerTwooterRoutes(s)

	return s
}

func (r *Router) registerTwooterRoutes(server *grpc.Server) {
	twooterHandler := handler.NewTwooter(r.twooterService, r.tokenService, r.contextManager, r.mailboxSize, r.logger)
	wire.RegisterTwooterServer(server, twooterHandler)
}
