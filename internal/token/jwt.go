package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/twooter-server/internal/model"
)

// Claims represents JWT claims binding a session to its user.
type Claims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID    `json:"sid"`
	UserID    model.UserID `json:"user_id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// DefaultTTL is used when NewJWT receives a non-positive ttl.
const DefaultTTL = 24 * time.Hour

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, ttl time.Duration) model.TokenManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// GenerateSessionToken creates a token naming the session and its user.
func (j *JWT) GenerateSessionToken(sessionID uuid.UUID, userID model.UserID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Subject:   string(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		SessionID: sessionID,
		UserID:    userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates a token and extracts the session and user ids.
func (j *JWT) ParseSessionToken(tokenString string) (uuid.UUID, model.UserID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, "", fmt.Errorf("session token is invalid")
	}
	if claims.SessionID == uuid.Nil || claims.UserID == "" {
		return uuid.Nil, "", fmt.Errorf("session token is missing claims")
	}
	return claims.SessionID, claims.UserID, nil
}
