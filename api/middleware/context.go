package middleware

import (
	"context"

	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

type contextKey string

const (
	ctxClientKey contextKey = "client_key"
	ctxPrincipal contextKey = "principal"
)

// ClientKeyFromContext returns the caller's client key, or "" when the
// request carried none.
func ClientKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxClientKey).(string); ok {
		return v
	}
	return ""
}

// PrincipalFromContext returns the authenticated session, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxPrincipal).(*session.Session); ok {
		return v
	}
	return nil
}

// WithClientKey injects the client key into the context.
func WithClientKey(ctx context.Context, clientKey string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClientKey, clientKey)
}

// WithPrincipal injects the authenticated session into the context.
func WithPrincipal(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, sess)
}
