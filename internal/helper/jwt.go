package helper

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// ParticipantIDFromToken extracts the current user's id from the configured
// bearer token. The signature is not verified here: the server is the
// verifier, the client only needs the identity baked into its own credential.
func ParticipantIDFromToken(token string) (uuid.UUID, error) {
	claims := &JWTClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse bearer token: %w", err)
	}

	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("bearer token carries no user_id claim")
	}

	return claims.UserID, nil
}
