package cache

import (
	"context"
	"testing"
	"time"
)

func TestRedis_Unavailable_IsNoop(t *testing.T) {
	r := &Redis{defaultTTL: time.Minute}
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set should be a no-op, got %v", err)
	}
	var out map[string]int
	ok, err := r.GetJSON(ctx, "k", &out)
	if err != nil || ok {
		t.Fatalf("get should miss silently, ok=%v err=%v", ok, err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete should be a no-op, got %v", err)
	}
	if n, err := r.Incr(ctx, "matches:gen:u", time.Hour); n != 0 || err != nil {
		t.Fatalf("incr should be a no-op, got n=%d err=%v", n, err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("ping should report unavailability")
	}

	var nilRedis *Redis
	if ok, err := nilRedis.GetJSON(ctx, "k", &out); ok || err != nil {
		t.Fatalf("nil receiver should miss silently")
	}
}
