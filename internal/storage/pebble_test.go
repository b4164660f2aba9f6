package storage_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/internal/storage"
)

func TestPebbleStore_FreshLoadIsEmpty(t *testing.T) {
	s, err := storage.OpenPebble(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap != nil {
		t.Fatalf("fresh store must load nil, got %+v", snap)
	}
}

func TestPebbleStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.OpenPebble(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	room := domain.NewRoom("Test", "user_owner")
	in := &core.Snapshot{
		Accounts: map[string]*domain.User{
			"a@test": {ID: "user_a", Email: "a@test", Name: "alice", Status: domain.StatusOnline},
		},
		Rooms:   map[domain.RoomID]*domain.Room{room.ID: room},
		Friends: map[domain.UserID][]domain.UserID{"user_a": {"user_b"}},
		Invites: map[string]domain.RoomID{"deadbeef": room.ID},
	}
	if err := s.SaveSnapshot(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// reopening reads what the previous process wrote
	s, err = storage.OpenPebble(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	out, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if out == nil {
		t.Fatalf("saved snapshot must load back")
	}
	if out.Accounts["a@test"] == nil || out.Accounts["a@test"].Name != "alice" {
		t.Fatalf("account lost: %+v", out.Accounts)
	}
	got, ok := out.Rooms[room.ID]
	if !ok || got.Name != "Test" || !got.IsMember("user_owner") {
		t.Fatalf("room lost: %+v", got)
	}
	if out.Invites["deadbeef"] != room.ID {
		t.Fatalf("invite lost: %v", out.Invites)
	}
	if len(out.Friends["user_a"]) != 1 {
		t.Fatalf("friend edge lost: %v", out.Friends)
	}
}

func TestPebbleStore_Overwrite(t *testing.T) {
	s, err := storage.OpenPebble(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(&core.Snapshot{Invites: map[string]domain.RoomID{"old": "server_1"}}); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if err := s.SaveSnapshot(&core.Snapshot{Invites: map[string]domain.RoomID{"new": "server_2"}}); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	out, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := out.Invites["old"]; ok {
		t.Fatalf("older snapshot must be fully replaced")
	}
	if out.Invites["new"] != "server_2" {
		t.Fatalf("latest snapshot missing: %v", out.Invites)
	}
}
