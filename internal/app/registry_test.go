package app_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/core"
)

type stubConn struct{}

func (stubConn) TrySend(core.Frame) error { return nil }
func (stubConn) Close()                   {}

func TestRegistry_MultiDevice(t *testing.T) {
	r := app.NewRegistry()

	if !r.Bind("sid1", "user_a", stubConn{}) {
		t.Fatalf("first session must report first=true")
	}
	if r.Bind("sid2", "user_a", stubConn{}) {
		t.Fatalf("second session of same identity must report first=false")
	}
	if !r.Online("user_a") {
		t.Fatalf("identity with sessions must be online")
	}
	if got := len(r.SessionsOf("user_a")); got != 2 {
		t.Fatalf("expected 2 sessions, got %d", got)
	}

	uid, last, ok := r.Unbind("sid1")
	if !ok || uid != "user_a" || last {
		t.Fatalf("first unbind: uid=%s last=%v ok=%v", uid, last, ok)
	}
	uid, last, ok = r.Unbind("sid2")
	if !ok || uid != "user_a" || !last {
		t.Fatalf("second unbind must be the last: uid=%s last=%v ok=%v", uid, last, ok)
	}
	if r.Online("user_a") {
		t.Fatalf("identity without sessions must be offline")
	}
}

func TestRegistry_RebindDropsStaleIdentity(t *testing.T) {
	r := app.NewRegistry()
	r.Bind("sid1", "user_a", stubConn{})

	if !r.Bind("sid1", "user_b", stubConn{}) {
		t.Fatalf("rebound session must be user_b's first")
	}
	if r.Online("user_a") {
		t.Fatalf("previous identity must not stay online through a rebound session")
	}
	if got := len(r.SessionsOf("user_a")); got != 0 {
		t.Fatalf("previous identity must hold no sessions, got %d", got)
	}

	uid, last, ok := r.Unbind("sid1")
	if !ok || uid != "user_b" || !last {
		t.Fatalf("unbind after rebind: uid=%s last=%v ok=%v", uid, last, ok)
	}
	if r.Online("user_a") || r.Online("user_b") {
		t.Fatalf("no identity may survive the close")
	}
}

func TestRegistry_RebindSameIdentityKeepsSession(t *testing.T) {
	r := app.NewRegistry()
	r.Bind("sid1", "user_a", stubConn{})

	if r.Bind("sid1", "user_a", stubConn{}) {
		t.Fatalf("same-identity rebind must not report a fresh first session")
	}
	if got := len(r.SessionsOf("user_a")); got != 1 {
		t.Fatalf("expected 1 session, got %d", got)
	}
}

func TestRegistry_UnbindUnknownSession(t *testing.T) {
	r := app.NewRegistry()
	if _, _, ok := r.Unbind("ghost"); ok {
		t.Fatalf("unknown session must not unbind")
	}
}
