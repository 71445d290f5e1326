package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twooter-server/internal/model"
)

func handleError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, "invalid argument")
	case errors.Is(err, model.ErrDuplicateTwootID):
		return status.Error(codes.AlreadyExists, "twoot id already used")
	case errors.Is(err, model.ErrSessionClosed):
		return status.Error(codes.Unauthenticated, "session is closed")
	case errors.Is(err, model.ErrUnknownUser), errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, model.ErrSlowConsumer):
		return status.Error(codes.ResourceExhausted, "delivery queue overflow, log on again to resume")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
