package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// Decode failures. Callers treat both identically (lazy logout); the split
// exists for logs and tests.
var (
	// ErrMalformed means the token is not a structurally parseable JWT.
	ErrMalformed = errors.New("credential is malformed")
	// ErrMissingClaims means the payload parsed but lacks a required claim,
	// or carries a role outside the closed set.
	ErrMissingClaims = errors.New("credential is missing required claims")
)

// Claims is the structured content extracted from a bearer credential.
type Claims struct {
	SubjectID string
	ExpiresAt time.Time
	Role      domain.Role
}

// appMetadata mirrors the auth provider's claim layout: the role is nested
// under app_metadata rather than being a top-level claim.
type appMetadata struct {
	Role string `json:"role"`
}

type tokenPayload struct {
	AppMetadata appMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// DecodeToken extracts claims WITHOUT verifying the signature. This is a
// deliberate trust boundary, not an oversight: the portal only needs claims
// for routing and control display, and the backend re-verifies the signature
// on every API call. A forged-but-well-formed token can steer the UI, but
// every protected request it triggers will be rejected server-side.
func DecodeToken(token string) (*Claims, error) {
	payload := &tokenPayload{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return nil, ErrMalformed
	}

	if payload.Subject == "" || payload.ExpiresAt == nil {
		return nil, ErrMissingClaims
	}
	role, ok := domain.ParseRole(payload.AppMetadata.Role)
	if !ok {
		// Unknown role fails closed, same as an absent one.
		return nil, ErrMissingClaims
	}

	return &Claims{
		SubjectID: payload.Subject,
		ExpiresAt: payload.ExpiresAt.Time,
		Role:      role,
	}, nil
}
