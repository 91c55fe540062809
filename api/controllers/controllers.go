// Package controllers wires the domain services onto the action-dispatch
// endpoints the booking frontend calls.
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bookeasy/bookeasy-backend/api/middleware"
	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

func errUnknownAction(action string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
}

// requirePrincipal resolves the signed-in session for the request, either
// from the context (when RequireSession ran) or straight from the session
// manager keyed by the client key.
func requirePrincipal(r *http.Request, sessions *session.Manager) (*session.Session, error) {
	if p := middleware.PrincipalFromContext(r.Context()); p != nil {
		return p, nil
	}
	clientKey := middleware.ClientKeyFromContext(r.Context())
	if clientKey == "" || sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in")
	}
	sess, err := sessions.Current(r.Context(), clientKey)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session")
	}
	return sess, nil
}
