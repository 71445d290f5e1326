package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twooter-server/internal/logger"
)

// Logging logs every gRPC call with its duration and resulting status.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC is the unary interceptor.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := l.started(ctx, info.FullMethod)

	resp, err := handler(ctx, req)

	l.completed(ctx, info.FullMethod, start, err)

	return resp, err
}

// HandleGRPCStream is the stream interceptor. A Logon stream is logged once
// when it opens and once when the session ends.
func (l *Logging) HandleGRPCStream(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx := ss.Context()
	start := l.started(ctx, info.FullMethod)

	err := handler(srv, ss)

	l.completed(ctx, info.FullMethod, start, err)

	return err
}

func (l *Logging) started(ctx context.Context, method string) time.Time {
	start := time.Now()

	l.logger.InfoContext(ctx, "gRPC request started",
		"method", method,
		"start_time", start.Format(time.RFC3339))

	return start
}

func (l *Logging) completed(ctx context.Context, method string, start time.Time, err error) {
	duration := time.Since(start)

	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Internal
		}
	}

	l.logger.InfoContext(ctx, "gRPC request completed",
		"method", method,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String())

	if err != nil {
		l.logger.ErrorContext(ctx, "gRPC request failed",
			"method", method,
			"error", err.Error(),
			"status", statusCode.String())
	}
}
