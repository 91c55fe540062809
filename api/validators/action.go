package validators

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
)

// PeekAction extracts the `action` discriminator from a JSON body without
// consuming it, so the handler can decode the action-specific payload
// afterwards.
func PeekAction(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return strings.TrimSpace(probe.Action), nil
}
