package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/api/responses"
	pkgauth "github.com/bookeasy/bookeasy-backend/pkg/auth"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

// sessionTokenHeader carries the JWT minted at login. Clients that lost their
// server-side session (or talk to the API without a client key) can replay it
// here or as a standard bearer token.
const sessionTokenHeader = "X-BE-Token"

// RequireSession resolves the caller's server-side session and seeds the
// request context with the principal. When no session is live in either scope,
// the signed token issued at login is accepted as a fallback credential.
// Requests carrying neither get a 401.
func RequireSession(sessions *session.Manager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if clientKey := ClientKeyFromContext(ctx); clientKey != "" {
				sess, err := sessions.Current(ctx, clientKey)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, sess)))
					return
				}
				if !errors.Is(err, session.ErrNoSession) {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session"))
					return
				}
			}

			if sess := principalFromToken(r, cfg); sess != nil {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, sess)))
				return
			}

			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in"))
		})
	}
}

func principalFromToken(r *http.Request, cfg config.SessionConfig) *session.Session {
	token := bearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := pkgauth.ParseSessionToken(cfg, token)
	if err != nil {
		return nil
	}
	sess := &session.Session{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	} else {
		sess.IssuedAt = time.Now().UTC()
	}
	return sess
}

func bearerToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(sessionTokenHeader)); token != "" {
		return token
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
