package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/bookeasy/bookeasy-backend/api/middleware"
	"github.com/bookeasy/bookeasy-backend/internal/intent"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	redisclient "github.com/bookeasy/bookeasy-backend/pkg/redis"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

func newIntentFixture(t *testing.T) (*intent.Tracker, *session.Manager) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisclient.NewWithBackend(redislib.NewClient(&redislib.Options{Addr: mr.Addr()}))

	tracker, err := intent.NewTracker(intent.TrackerParams{
		Redis:  client,
		Config: config.SessionConfig{IntentTTL: 24 * time.Hour},
	})
	if err != nil {
		t.Fatalf("build tracker: %v", err)
	}

	sessions, err := session.NewManager(client, config.SessionConfig{
		Secret:     "test-secret",
		ShortTTL:   30 * time.Minute,
		DurableTTL: 720 * time.Hour,
	})
	if err != nil {
		t.Fatalf("build session manager: %v", err)
	}
	return tracker, sessions
}

func postIntent(t *testing.T, handler http.HandlerFunc, clientKey, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/intent", bytes.NewReader([]byte(payload)))
	req = req.WithContext(middleware.WithClientKey(req.Context(), clientKey))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodeIntentBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestIntentCheckoutWithoutSessionParksAndRedirects(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	roomID := uuid.New()
	resp := postIntent(t, handler, "ck-1", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","price":"120"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("select: expected 200 got %d", resp.Code)
	}

	resp = postIntent(t, handler, "ck-1", `{"action":"checkout"}`)
	body := decodeIntentBody(t, resp)
	if body["decision"] != decisionRedirectToLogin {
		t.Fatalf("expected redirect_to_login, got %v", body["decision"])
	}
}

func TestIntentSelectKeepsRoomSnapshot(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	roomID := uuid.New()
	resp := postIntent(t, handler, "ck-snap", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","description":"Corner suite","price":"120","image_url":"https://cdn.example.com/suite.jpg","amenities":"wifi,spa"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("select: expected 200 got %d", resp.Code)
	}

	postIntent(t, handler, "ck-snap", `{"action":"checkout"}`)

	resp = postIntent(t, handler, "ck-snap", `{"action":"resume"}`)
	body := decodeIntentBody(t, resp)
	rec, ok := body["intent"].(map[string]any)
	if !ok {
		t.Fatalf("expected intent payload, got %v", body)
	}
	if rec["description"] != "Corner suite" || rec["image_url"] != "https://cdn.example.com/suite.jpg" || rec["amenities"] != "wifi,spa" {
		t.Fatalf("room snapshot lost across the login wall: %v", rec)
	}
}

func TestIntentCheckoutWithoutIntentFailsGracefully(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	resp := postIntent(t, handler, "ck-2", `{"action":"checkout"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeIntentBody(t, resp)
	if body["decision"] != decisionNoIntent {
		t.Fatalf("expected no_intent, got %v", body["decision"])
	}
}

func TestIntentCheckoutAuthenticatedProceeds(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	if err := sessions.Put(context.Background(), "ck-3", session.Session{
		UserID: uuid.New(),
		Email:  "guest@example.com",
		Role:   enums.UserRoleUser,
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	roomID := uuid.New()
	postIntent(t, handler, "ck-3", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","price":"120"}`)

	resp := postIntent(t, handler, "ck-3", `{"action":"checkout"}`)
	body := decodeIntentBody(t, resp)
	if body["decision"] != decisionProceed {
		t.Fatalf("expected proceed, got %v", body["decision"])
	}
	if body["intent"] == nil {
		t.Fatalf("expected intent in payload")
	}
}

func TestIntentResumeIsOneShot(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	roomID := uuid.New()
	postIntent(t, handler, "ck-4", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","price":"120"}`)
	postIntent(t, handler, "ck-4", `{"action":"checkout"}`)

	resp := postIntent(t, handler, "ck-4", `{"action":"resume"}`)
	body := decodeIntentBody(t, resp)
	if body["resumed"] != true {
		t.Fatalf("expected first resume to succeed, got %v", body)
	}

	resp = postIntent(t, handler, "ck-4", `{"action":"resume"}`)
	body = decodeIntentBody(t, resp)
	if body["resumed"] != false {
		t.Fatalf("expected second resume to be a no-op, got %v", body)
	}
}

func TestIntentFinalizeConsumesOnce(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	roomID := uuid.New()
	postIntent(t, handler, "ck-5", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","price":"120"}`)

	resp := postIntent(t, handler, "ck-5", `{"action":"finalize"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := decodeIntentBody(t, resp)
	if body["success"] != true || body["intent"] == nil {
		t.Fatalf("expected consumed intent, got %v", body)
	}

	resp = postIntent(t, handler, "ck-5", `{"action":"finalize"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("domain failure should ship with 200, got %d", resp.Code)
	}
	body = decodeIntentBody(t, resp)
	if body["success"] != false {
		t.Fatalf("expected success=false on reload, got %v", body)
	}
}

func TestIntentClearDropsSessionToo(t *testing.T) {
	tracker, sessions := newIntentFixture(t)
	handler := Intent(tracker, sessions, nil)

	if err := sessions.Put(context.Background(), "ck-6", session.Session{UserID: uuid.New()}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	roomID := uuid.New()
	postIntent(t, handler, "ck-6", `{"action":"select","room_id":"`+roomID.String()+`","room_name":"Suite","price":"120"}`)

	resp := postIntent(t, handler, "ck-6", `{"action":"clear"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	if _, err := sessions.Current(context.Background(), "ck-6"); err != session.ErrNoSession {
		t.Fatalf("expected session dropped, got %v", err)
	}
	rec, err := tracker.Current(context.Background(), "ck-6")
	if err != nil || rec != nil {
		t.Fatalf("expected intent cleared, got %+v err %v", rec, err)
	}
}
