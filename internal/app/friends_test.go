package app_test

import (
	"errors"
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/app"
)

func TestFriends_RequestAcceptSymmetric(t *testing.T) {
	f := app.NewFriends()

	if err := f.Request("user_a", "user_b"); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending := f.PendingFor("user_b")
	if len(pending) != 1 || pending[0] != "user_a" {
		t.Fatalf("expected pending request from user_a, got %v", pending)
	}

	if err := f.Accept("user_b", "user_a"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !f.AreFriends("user_a", "user_b") || !f.AreFriends("user_b", "user_a") {
		t.Fatalf("friendship must be symmetric")
	}
	if len(f.PendingFor("user_b")) != 0 {
		t.Fatalf("accepted request must be consumed")
	}
}

func TestFriends_SelfAndDuplicate(t *testing.T) {
	f := app.NewFriends()
	if err := f.Request("user_a", "user_a"); !errors.Is(err, app.ErrSelfFriend) {
		t.Fatalf("self request must fail, got %v", err)
	}
	f.Request("user_a", "user_b")
	f.Accept("user_b", "user_a")
	if err := f.Request("user_a", "user_b"); !errors.Is(err, app.ErrAlreadyFriends) {
		t.Fatalf("duplicate request must fail, got %v", err)
	}
}

func TestFriends_AcceptWithoutRequest(t *testing.T) {
	f := app.NewFriends()
	if err := f.Accept("user_b", "user_a"); !errors.Is(err, app.ErrNoRequest) {
		t.Fatalf("accept without request must fail, got %v", err)
	}
}

func TestFriends_RemoveSeversBothSides(t *testing.T) {
	f := app.NewFriends()
	f.Request("user_a", "user_b")
	f.Accept("user_b", "user_a")

	f.Remove("user_b", "user_a")
	if f.AreFriends("user_a", "user_b") || f.AreFriends("user_b", "user_a") {
		t.Fatalf("removal must sever both directions")
	}
}

func TestFriends_BlockSeversAndSuppresses(t *testing.T) {
	f := app.NewFriends()
	f.Request("user_a", "user_b")
	f.Accept("user_b", "user_a")

	f.Block("user_a", "user_b")
	if f.AreFriends("user_a", "user_b") {
		t.Fatalf("block must sever the friendship")
	}
	if !f.IsBlocked("user_b", "user_a") {
		t.Fatalf("expected user_b blocked by user_a")
	}
	// requests are refused in both directions while the block holds
	if err := f.Request("user_b", "user_a"); !errors.Is(err, app.ErrBlocked) {
		t.Fatalf("blocked side request must fail, got %v", err)
	}
	if err := f.Request("user_a", "user_b"); !errors.Is(err, app.ErrBlocked) {
		t.Fatalf("blocking side request must fail, got %v", err)
	}

	f.Unblock("user_a", "user_b")
	if err := f.Request("user_b", "user_a"); err != nil {
		t.Fatalf("request after unblock: %v", err)
	}
}

func TestFriends_BlockClearsPendingRequests(t *testing.T) {
	f := app.NewFriends()
	f.Request("user_a", "user_b")

	f.Block("user_b", "user_a")
	if len(f.PendingFor("user_b")) != 0 {
		t.Fatalf("pending request must vanish on block")
	}
}
