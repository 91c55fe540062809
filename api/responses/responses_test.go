package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/bookeasy/bookeasy-backend/pkg/errors"
)

func TestWriteSuccessFlattensFields(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]any{"user_id": "u-1", "token": "abc"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success flag, got %v", body["success"])
	}
	if body["user_id"] != "u-1" || body["token"] != "abc" {
		t.Fatalf("payload fields not flattened: %v", body)
	}
}

func TestWriteErrorDomainFailureShipsWith200(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeDuplicateEmail, "Email already registered")
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if body["message"] != "Email already registered" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestWriteErrorValidationSurfacesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "email"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body["details"] == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorUnauthorizedSurfacesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password"))

	if got := w.Code; got != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", got)
	}
}

func TestWriteErrorHidesUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body["message"] != "Something went wrong. Please try again." {
		t.Fatalf("internal detail leaked: %v", body["message"])
	}
}
