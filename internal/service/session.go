package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdminSession is an authenticated admin's proof of identity
type AdminSession struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	AdminID   uuid.UUID `json:"admin_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionKey struct{}

// WithSession attaches session to ctx. Mutating operations read it back and
// re-verify it before touching the store.
func WithSession(ctx context.Context, session *AdminSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session attached by WithSession
func SessionFromContext(ctx context.Context) (*AdminSession, bool) {
	s, ok := ctx.Value(sessionKey{}).(*AdminSession)
	return s, ok && s != nil
}
