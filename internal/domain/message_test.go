package domain_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func TestAddReaction_Dedup(t *testing.T) {
	u := &domain.User{ID: "user_a", Name: "a"}
	m := domain.NewMessage(u, "hi", nil)

	if !m.AddReaction("👍", "user_b") {
		t.Fatalf("first reaction should register")
	}
	if m.AddReaction("👍", "user_b") {
		t.Fatalf("duplicate reaction should be a no-op")
	}
	if len(m.Reactions["👍"]) != 1 {
		t.Fatalf("expected one reactor, got %d", len(m.Reactions["👍"]))
	}
}

func TestRemoveReaction_DropsEmptyKey(t *testing.T) {
	u := &domain.User{ID: "user_a", Name: "a"}
	m := domain.NewMessage(u, "hi", nil)
	m.AddReaction("🔥", "user_b")

	if !m.RemoveReaction("🔥", "user_b") {
		t.Fatalf("removal of existing reaction should report true")
	}
	if _, ok := m.Reactions["🔥"]; ok {
		t.Fatalf("empty emoji key must be dropped")
	}
	if m.RemoveReaction("🔥", "user_b") {
		t.Fatalf("removing absent reaction should report false")
	}
}
