package model

import "github.com/google/uuid"

// TokenManager issues and validates session bearer tokens.
type TokenManager interface {
	GenerateSessionToken(sessionID uuid.UUID, userID UserID) (string, error)
	ParseSessionToken(token string) (sessionID uuid.UUID, userID UserID, err error)
}
