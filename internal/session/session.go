// Package session carries the acting user's identity through a request.
package session

import "context"

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID string
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached to ctx, or nil for anonymous
// callers.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	if s == nil || s.UserID == "" {
		return nil
	}
	return s
}

// ViewerID returns the caller's user id, or "" when anonymous.
func ViewerID(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.UserID
	}
	return ""
}
