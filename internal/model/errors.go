package model

import "errors"

// Contract violations. Expected business outcomes are reported through the
// status enums instead.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownUser      = errors.New("unknown user")
	ErrDuplicateTwootID = errors.New("twoot id already used")
	ErrSessionClosed    = errors.New("session closed")
	ErrReceiverClosed   = errors.New("receiver closed")
	ErrSlowConsumer     = errors.New("receiver queue overflow")
)
