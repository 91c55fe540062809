package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/metrics"
	redisclient "github.com/bookeasy/bookeasy-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// State tracks where a visitor's booking attempt stands.
type State string

const (
	// StateCaptured means a room was selected but checkout has not started.
	StateCaptured State = "captured"
	// StatePendingAuth means checkout was attempted without a signed-in session.
	StatePendingAuth State = "pending_auth"
	// StateResumed means the pending intent was handed back after sign-in.
	StateResumed State = "resumed"
)

// ErrNoIntent is returned by Finalize when the client holds no intent.
var ErrNoIntent = errors.New("no booking intent")

// Record is the persisted booking intent for one client.
type Record struct {
	RoomID      uuid.UUID       `json:"room_id"`
	RoomName    string          `json:"room_name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Amenities   string          `json:"amenities,omitempty"`
	State       State           `json:"state"`
	CapturedAt  time.Time       `json:"captured_at"`
}

// Selection is the room snapshot captured when a visitor picks a room. The
// fields are denormalized so the checkout page resumed after sign-in renders
// without a second room lookup.
type Selection struct {
	RoomID      uuid.UUID
	RoomName    string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Amenities   string
}

type intentStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type intentKeyer interface {
	IntentKey(clientKey string) string
}

// Tracker carries a visitor's room selection across the login wall. Each
// client key holds at most one record; a new selection overwrites whatever
// was there.
type Tracker struct {
	store   intentStore
	keyer   intentKeyer
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.ReservationMetrics
}

// TrackerParams bundles the dependencies required to build a tracker.
type TrackerParams struct {
	Redis   *redisclient.Client
	Config  config.SessionConfig
	Logger  *logger.Logger
	Metrics *metrics.ReservationMetrics
}

// NewTracker constructs an intent tracker backed by Redis.
func NewTracker(params TrackerParams) (*Tracker, error) {
	if params.Redis == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if params.Config.IntentTTL <= 0 {
		return nil, fmt.Errorf("intent ttl must be positive")
	}
	return &Tracker{
		store:   params.Redis,
		keyer:   params.Redis,
		ttl:     params.Config.IntentTTL,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Select captures a room choice for the client, replacing any prior intent.
func (t *Tracker) Select(ctx context.Context, clientKey string, sel Selection) (*Record, error) {
	if err := requireClientKey(clientKey); err != nil {
		return nil, err
	}
	if sel.RoomID == uuid.Nil {
		return nil, fmt.Errorf("room id is required")
	}
	rec := &Record{
		RoomID:      sel.RoomID,
		RoomName:    sel.RoomName,
		Description: sel.Description,
		Price:       sel.Price,
		ImageURL:    sel.ImageURL,
		Amenities:   sel.Amenities,
		State:       StateCaptured,
		CapturedAt:  time.Now().UTC(),
	}
	if err := t.put(ctx, clientKey, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CheckoutAttempt marks the captured intent as waiting on sign-in. Called when
// a visitor reaches checkout without a session.
func (t *Tracker) CheckoutAttempt(ctx context.Context, clientKey string) (*Record, error) {
	if err := requireClientKey(clientKey); err != nil {
		return nil, err
	}
	rec, err := t.Current(ctx, clientKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	rec.State = StatePendingAuth
	if err := t.put(ctx, clientKey, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ResumeAfterLogin hands back the intent parked behind the login wall. The
// hand-off is one-shot: the record moves to resumed, and later calls return
// nothing until a new checkout attempt parks it again.
func (t *Tracker) ResumeAfterLogin(ctx context.Context, clientKey string) (*Record, error) {
	if err := requireClientKey(clientKey); err != nil {
		return nil, err
	}
	rec, err := t.Current(ctx, clientKey)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.State != StatePendingAuth {
		return nil, nil
	}
	rec.State = StateResumed
	if err := t.put(ctx, clientKey, rec); err != nil {
		return nil, err
	}
	t.metrics.IncIntentResumed()
	if t.logg != nil {
		t.logg.Info(t.logg.WithClientKey(ctx, clientKey), "booking intent resumed after sign-in")
	}
	return rec, nil
}

// Finalize consumes the intent once a booking was recorded from it and hands
// the record back to the caller. Reloading a checkout page after the booking
// went through finds nothing and gets ErrNoIntent instead of a duplicate.
func (t *Tracker) Finalize(ctx context.Context, clientKey string) (*Record, error) {
	rec, err := t.Current(ctx, clientKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoIntent
	}
	if err := t.Clear(ctx, clientKey); err != nil {
		return nil, err
	}
	return rec, nil
}

// Clear removes whatever intent the client holds.
func (t *Tracker) Clear(ctx context.Context, clientKey string) error {
	if err := requireClientKey(clientKey); err != nil {
		return err
	}
	return t.store.Del(ctx, t.keyer.IntentKey(clientKey))
}

// Current returns the client's intent, or nil when none is stored.
func (t *Tracker) Current(ctx context.Context, clientKey string) (*Record, error) {
	if err := requireClientKey(clientKey); err != nil {
		return nil, err
	}
	raw, err := t.store.Get(ctx, t.keyer.IntentKey(clientKey))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding intent: %w", err)
	}
	return &rec, nil
}

func (t *Tracker) put(ctx context.Context, clientKey string, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding intent: %w", err)
	}
	return t.store.Set(ctx, t.keyer.IntentKey(clientKey), payload, t.ttl)
}

func requireClientKey(clientKey string) error {
	if strings.TrimSpace(clientKey) == "" {
		return fmt.Errorf("client key is required")
	}
	return nil
}
