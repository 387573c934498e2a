package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestHub_PushToUser_OnlyTargetsThatUser(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	alice, bob := uuid.New(), uuid.New()
	ca := &Client{hub: h, userID: alice, send: make(chan []byte, 4)}
	cb := &Client{hub: h, userID: bob, send: make(chan []byte, 4)}
	h.Register(ca)
	h.Register(cb)
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	if !h.PushToUser(alice, map[string]string{"title": "It's a match!"}) {
		t.Fatalf("expected delivery to alice")
	}

	select {
	case raw := <-ca.send:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if env.Type != "notification" {
			t.Fatalf("unexpected envelope type %q", env.Type)
		}
	default:
		t.Fatalf("alice got nothing")
	}
	if len(cb.send) != 0 {
		t.Fatalf("bob must not receive alice's notification")
	}
}

func TestHub_PushToUser_Offline(t *testing.T) {
	h := NewHub(nil)
	if h.PushToUser(uuid.New(), "x") {
		t.Fatalf("no connections means no delivery")
	}
}

func TestHub_Unregister_ClosesSend(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := &Client{hub: h, userID: uuid.New(), send: make(chan []byte, 1)}
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount() == 1 })
	h.Unregister(c)
	waitFor(t, func() bool { return h.ClientCount() == 0 })

	if _, ok := <-c.send; ok {
		t.Fatalf("send channel should be closed")
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	live := &Client{hub: h, userID: uuid.New(), send: make(chan []byte, 1)}
	if !h.Register(live) {
		t.Fatalf("running hub should accept a client")
	}
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	cancel()
	<-stopped

	if _, ok := <-live.send; ok {
		t.Fatalf("stopping should close tracked clients")
	}

	// more calls than the channel buffers hold must all return
	finished := make(chan int)
	go func() {
		accepted := 0
		for i := 0; i < 300; i++ {
			c := &Client{hub: h, userID: uuid.New(), send: make(chan []byte, 1)}
			if h.Register(c) {
				accepted++
			}
			h.Unregister(c)
		}
		finished <- accepted
	}()

	select {
	case accepted := <-finished:
		if accepted != 0 {
			t.Fatalf("stopped hub accepted %d clients", accepted)
		}
	case <-time.After(time.Second):
		t.Fatalf("register/unregister blocked on a stopped hub")
	}
}
