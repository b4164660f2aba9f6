package app_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/app"
)

func TestVoice_JoinMoveRejoin(t *testing.T) {
	v := app.NewVoice()

	prev, joined := v.Join("user_a", "server_1", "voice")
	if prev != nil || !joined {
		t.Fatalf("fresh join: prev=%v joined=%v", prev, joined)
	}

	// same channel again is a no-op
	prev, joined = v.Join("user_a", "server_1", "voice")
	if prev != nil || joined {
		t.Fatalf("rejoin must be a no-op: prev=%v joined=%v", prev, joined)
	}

	// moving reports where the occupant came from
	prev, joined = v.Join("user_a", "server_1", "ch_other")
	if !joined || prev == nil || prev.ChannelID != "voice" {
		t.Fatalf("move must surface the vacated channel: prev=%v joined=%v", prev, joined)
	}
	if v.OccupantCount("server_1", "voice") != 0 {
		t.Fatalf("old channel must be empty after move")
	}
	if v.OccupantCount("server_1", "ch_other") != 1 {
		t.Fatalf("new channel must hold the occupant")
	}
}

func TestVoice_RosterSortedByID(t *testing.T) {
	v := app.NewVoice()
	v.Join("user_b2", "server_1", "voice")
	v.Join("user_a1", "server_1", "voice")
	v.Join("user_c3", "server_1", "voice")

	roster := v.Roster("server_1", "voice")
	if len(roster) != 3 {
		t.Fatalf("expected 3 occupants, got %d", len(roster))
	}
	for i, want := range []string{"user_a1", "user_b2", "user_c3"} {
		if string(roster[i].UserID) != want {
			t.Fatalf("roster[%d]=%s, want %s", i, roster[i].UserID, want)
		}
	}
}

func TestVoice_FlagsOnlyWhileOccupying(t *testing.T) {
	v := app.NewVoice()
	if _, ok := v.SetMuted("user_a", true); ok {
		t.Fatalf("flag update without occupancy must fail")
	}
	v.Join("user_a", "server_1", "voice")
	state, ok := v.SetMuted("user_a", true)
	if !ok || !state.Muted {
		t.Fatalf("mute not applied: %+v", state)
	}
	state, ok = v.SetScreen("user_a", true)
	if !ok || !state.Screen {
		t.Fatalf("screen not applied: %+v", state)
	}

	v.Leave("user_a")
	if _, ok := v.Get("user_a"); ok {
		t.Fatalf("occupant record must be gone after leave")
	}
}

func TestVoice_LeaveWithoutJoin(t *testing.T) {
	v := app.NewVoice()
	if _, ok := v.Leave("user_ghost"); ok {
		t.Fatalf("leave without occupancy must be a no-op")
	}
}
