package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })
	return NewWithBackend(raw), mr
}

func TestSetGetDel(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "greeting", "hello", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := client.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if err := client.Del(ctx, "greeting"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := client.Get(ctx, "greeting"); err == nil {
		t.Fatal("expected miss after Del")
	}
}

func TestSetNX(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	first, err := client.SetNX(ctx, "lock", "a", time.Minute)
	if err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	if !first {
		t.Fatal("first SetNX should win")
	}
	second, err := client.SetNX(ctx, "lock", "b", time.Minute)
	if err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	if second {
		t.Fatal("second SetNX should lose")
	}
}

func TestIncrWithTTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	count, err := client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil {
		t.Fatalf("IncrWithTTL: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}
	if mr.TTL("counter") != time.Minute {
		t.Fatalf("expected TTL set on first increment, got %s", mr.TTL("counter"))
	}
	count, err = client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil {
		t.Fatalf("IncrWithTTL: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestFixedWindowAllow(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := client.FixedWindowAllow(ctx, "login:1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("FixedWindowAllow: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	allowed, count, err := client.FixedWindowAllow(ctx, "login:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("FixedWindowAllow: %v", err)
	}
	if allowed {
		t.Fatal("fourth request should be blocked")
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}
}

func TestKeyBuilders(t *testing.T) {
	client, _ := newTestClient(t)

	if got := client.RateLimitKey("login:ip"); got != "be:rate_limit:login:ip" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := client.SessionKey("short", "ck-123"); got != "be:session:short:ck-123" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := client.IntentKey("ck-123"); got != "be:intent:ck-123" {
		t.Fatalf("unexpected intent key %q", got)
	}
}
