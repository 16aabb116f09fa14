package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/keerthana/hushtone/internal/auth"
)

// GuestHeader carries the anonymous session id for callers without an
// account. The server mints one at capture start and the client echoes
// it back on every later request.
const GuestHeader = "X-Guest-ID"

var errUnauthorized = errors.New("unauthorized")

// Identity resolves the caller of a request to an auth.Subject using
// the Authorization bearer token or, failing that, the guest header.
type Identity struct {
	tokens *auth.TokenManager
}

func NewIdentity(tokens *auth.TokenManager) *Identity {
	return &Identity{tokens: tokens}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Claims returns the verified token claims, or errUnauthorized when the
// request carries no valid token.
func (i *Identity) Claims(r *http.Request) (*auth.Claims, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, errUnauthorized
	}
	claims, err := i.tokens.Verify(token)
	if err != nil {
		return nil, errUnauthorized
	}
	return claims, nil
}

// User requires a valid non-admin user token.
func (i *Identity) User(r *http.Request) (*auth.Claims, error) {
	claims, err := i.Claims(r)
	if err != nil {
		return nil, err
	}
	if claims.Role != auth.RoleUser || claims.UserID == 0 {
		return nil, errUnauthorized
	}
	return claims, nil
}

// Admin requires a valid admin token.
func (i *Identity) Admin(r *http.Request) (*auth.Claims, error) {
	claims, err := i.Claims(r)
	if err != nil {
		return nil, err
	}
	if claims.Role != auth.RoleAdmin {
		return nil, errUnauthorized
	}
	return claims, nil
}

// Subject identifies the caller for event attribution. A valid user
// token wins over the guest header; an absent or invalid token with no
// guest header yields a zero subject.
func (i *Identity) Subject(r *http.Request) auth.Subject {
	if claims, err := i.User(r); err == nil {
		return auth.UserSubject(claims.UserID)
	}
	if guestID := strings.TrimSpace(r.Header.Get(GuestHeader)); guestID != "" {
		return auth.GuestSubject(guestID)
	}
	return auth.Subject{}
}
