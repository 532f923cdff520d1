package onboarding

import (
	"context"
	"errors"
)

// ErrSessionNotFound covers unknown and expired sessions alike.
var ErrSessionNotFound = errors.New("onboarding session not found")

// SessionStore holds in-flight onboarding sessions. Sessions are
// TTL-bounded; expiry is equivalent to abandonment and discards everything.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
