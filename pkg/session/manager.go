package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	redisclient "github.com/bookeasy/bookeasy-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

const (
	scopeShort   = "short"
	scopeDurable = "durable"
)

// ErrNoSession is returned when neither scope holds a session for the client.
var ErrNoSession = errors.New("no active session")

// Session is the signed-in principal mirrored into both storage scopes.
type Session struct {
	UserID   uuid.UUID      `json:"user_id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     enums.UserRole `json:"role"`
	IssuedAt time.Time      `json:"issued_at"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(scope, clientKey string) string
}

// Manager keeps each client's session in two scopes: a short-lived copy that
// expires on its own and a durable copy that outlives it. Reads fall back to
// the durable copy and re-seed the short one, so a client whose short copy
// lapsed resumes without logging in again.
type Manager struct {
	store      sessionStore
	keyer      sessionKeyer
	shortTTL   time.Duration
	durableTTL time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.ShortTTL <= 0 {
		return nil, fmt.Errorf("short session ttl must be positive")
	}
	if cfg.DurableTTL <= cfg.ShortTTL {
		return nil, fmt.Errorf("durable session ttl (%s) must exceed short session ttl (%s)", cfg.DurableTTL, cfg.ShortTTL)
	}
	return &Manager{
		store:      client,
		keyer:      client,
		shortTTL:   cfg.ShortTTL,
		durableTTL: cfg.DurableTTL,
	}, nil
}

// Put writes the session into both scopes, replacing any prior state for the client.
func (m *Manager) Put(ctx context.Context, clientKey string, sess Session) error {
	if strings.TrimSpace(clientKey) == "" {
		return fmt.Errorf("client key is required")
	}
	if sess.UserID == uuid.Nil {
		return fmt.Errorf("session user id is required")
	}
	if sess.IssuedAt.IsZero() {
		sess.IssuedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(scopeShort, clientKey), payload, m.shortTTL); err != nil {
		return err
	}
	return m.store.Set(ctx, m.keyer.SessionKey(scopeDurable, clientKey), payload, m.durableTTL)
}

// Current returns the client's session. When the short-lived copy is gone but
// the durable one remains, the durable copy is promoted back into the short
// scope before returning.
func (m *Manager) Current(ctx context.Context, clientKey string) (*Session, error) {
	if strings.TrimSpace(clientKey) == "" {
		return nil, fmt.Errorf("client key is required")
	}

	raw, err := m.store.Get(ctx, m.keyer.SessionKey(scopeShort, clientKey))
	if err == nil {
		return decodeSession(raw)
	}
	if !errors.Is(err, redislib.Nil) {
		return nil, err
	}

	raw, err = m.store.Get(ctx, m.keyer.SessionKey(scopeDurable, clientKey))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	sess, err := decodeSession(raw)
	if err != nil {
		return nil, err
	}
	// Restore failure is not fatal; the durable copy still answers the next read.
	_ = m.store.Set(ctx, m.keyer.SessionKey(scopeShort, clientKey), raw, m.shortTTL)
	return sess, nil
}

// Drop removes both scopes for the client.
func (m *Manager) Drop(ctx context.Context, clientKey string) error {
	if strings.TrimSpace(clientKey) == "" {
		return fmt.Errorf("client key is required")
	}
	return m.store.Del(ctx,
		m.keyer.SessionKey(scopeShort, clientKey),
		m.keyer.SessionKey(scopeDurable, clientKey),
	)
}

func decodeSession(raw string) (*Session, error) {
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}
