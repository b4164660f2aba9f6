package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func roomWithMembers(t *testing.T) (*app.Rooms, *domain.Room, *domain.User, *domain.User) {
	t.Helper()
	m := app.NewRooms()
	owner := &domain.User{ID: "user_owner", Name: "owner"}
	guest := &domain.User{ID: "user_guest", Name: "guest"}
	r := m.Create(owner.ID, "Test", "")
	code, _ := m.CreateInvite(owner.ID, r.ID)
	if _, err := m.UseInvite(guest.ID, code); err != nil {
		t.Fatalf("join: %v", err)
	}
	return m, r, owner, guest
}

func TestAppendMessage_LogCap(t *testing.T) {
	m, r, owner, _ := roomWithMembers(t)

	var firstID string
	for i := 0; i < app.MessageLogLimit+1; i++ {
		msg, err := m.AppendMessage(owner, r.ID, "general", fmt.Sprintf("msg %d", i), nil)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if i == 0 {
			firstID = msg.ID
		}
	}

	msgs := m.ChannelMessages(r.ID, "general")
	if len(msgs) != app.MessageLogLimit {
		t.Fatalf("expected log capped at %d, got %d", app.MessageLogLimit, len(msgs))
	}
	if msgs[0].ID == firstID {
		t.Fatalf("oldest message must have been evicted")
	}
}

func TestAppendMessage_RequiresMembershipAndTextChannel(t *testing.T) {
	m, r, _, _ := roomWithMembers(t)
	stranger := &domain.User{ID: "user_stranger", Name: "x"}

	if _, err := m.AppendMessage(stranger, r.ID, "general", "hi", nil); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	owner := &domain.User{ID: "user_owner", Name: "owner"}
	if _, err := m.AppendMessage(owner, r.ID, "voice", "hi", nil); !errors.Is(err, domain.ErrChannelNotFound) {
		t.Fatalf("voice channel must not accept messages, got %v", err)
	}
}

func TestEditMessage_AuthorOnly(t *testing.T) {
	m, r, owner, guest := roomWithMembers(t)
	msg, _ := m.AppendMessage(guest, r.ID, "general", "typo", nil)

	if _, err := m.EditMessage(owner.ID, r.ID, "general", msg.ID, "fixed"); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("even the owner cannot edit another's message, got %v", err)
	}
	edited, err := m.EditMessage(guest.ID, r.ID, "general", msg.ID, "fixed")
	if err != nil {
		t.Fatalf("author edit: %v", err)
	}
	if edited.Text != "fixed" || !edited.Edited {
		t.Fatalf("edit not applied: %+v", edited)
	}
}

func TestDeleteMessage_ReplyDegrades(t *testing.T) {
	m, r, owner, guest := roomWithMembers(t)
	orig, _ := m.AppendMessage(guest, r.ID, "general", "original", nil)
	reply, _ := m.AppendMessage(owner, r.ID, "general", "answer", &domain.ReplyRef{
		ID: orig.ID, Author: guest.Name, Text: orig.Text,
	})

	// guest has no manage_messages, cannot delete the owner's message
	if err := m.DeleteMessage(guest.ID, r.ID, "general", reply.ID); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// the author deletes their own message
	if err := m.DeleteMessage(guest.ID, r.ID, "general", orig.ID); err != nil {
		t.Fatalf("delete own: %v", err)
	}

	msgs := m.ChannelMessages(r.ID, "general")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 remaining message, got %d", len(msgs))
	}
	got := msgs[0]
	if got.ReplyTo == nil || !got.ReplyTo.Deleted {
		t.Fatalf("reply preview must be marked deleted")
	}
	if got.ReplyTo.Text != "original" {
		t.Fatalf("reply preview text must survive deletion")
	}
}

func TestDMKey_OrderIndependent(t *testing.T) {
	if app.DMKey("user_b", "user_a") != app.DMKey("user_a", "user_b") {
		t.Fatalf("DM key must not depend on argument order")
	}
}

func TestDMs_HistoryCap(t *testing.T) {
	d := app.NewDMs()
	a := &domain.User{ID: "user_a", Name: "a"}
	for i := 0; i < app.DMHistoryLimit+5; i++ {
		d.Append(a, "user_b", fmt.Sprintf("dm %d", i))
	}
	hist := d.History("user_a", "user_b")
	if len(hist) != app.DMHistoryLimit {
		t.Fatalf("expected history capped at %d, got %d", app.DMHistoryLimit, len(hist))
	}
	if hist[0].Text != "dm 5" {
		t.Fatalf("oldest entries must have been evicted, head is %q", hist[0].Text)
	}
}

func TestRefreshAuthor(t *testing.T) {
	m, r, _, guest := roomWithMembers(t)
	m.AppendMessage(guest, r.ID, "general", "hello", nil)

	m.RefreshAuthor(guest.ID, "renamed", "pic.png")
	msgs := m.ChannelMessages(r.ID, "general")
	if msgs[0].Author != "renamed" || msgs[0].Avatar != "pic.png" {
		t.Fatalf("author snapshot not refreshed: %+v", msgs[0])
	}
}
