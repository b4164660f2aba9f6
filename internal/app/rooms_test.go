package app_test

import (
	"errors"
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func TestRooms_InviteFlow(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")

	code, err := m.CreateInvite("user_owner", r.ID)
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected 8 hex chars, got %q", code)
	}

	joined, err := m.UseInvite("user_guest", code)
	if err != nil {
		t.Fatalf("use invite: %v", err)
	}
	if joined.ID != r.ID || !joined.IsMember("user_guest") {
		t.Fatalf("guest not joined")
	}
	// a fresh member starts on the default role
	roles := joined.RolesOf("user_guest")
	if len(roles) != 1 || roles[0] != domain.RoleDefault {
		t.Fatalf("expected default role, got %v", roles)
	}

	if _, err := m.UseInvite("user_x", "deadbeef"); !errors.Is(err, app.ErrInviteInvalid) {
		t.Fatalf("expected ErrInviteInvalid, got %v", err)
	}
}

func TestRooms_NonMemberCannotInvite(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	if _, err := m.CreateInvite("user_stranger", r.ID); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRooms_KickRequiresPermission(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	code, _ := m.CreateInvite("user_owner", r.ID)
	m.UseInvite("user_a", code)
	m.UseInvite("user_b", code)

	if err := m.Kick("user_a", r.ID, "user_b"); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("plain member must not kick, got %v", err)
	}
	if err := m.Kick("user_a", r.ID, "user_owner"); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("owner can never be kicked, got %v", err)
	}
	if err := m.Kick("user_owner", r.ID, "user_b"); err != nil {
		t.Fatalf("owner kick: %v", err)
	}
	if r.IsMember("user_b") {
		t.Fatalf("kicked member still present")
	}
}

func TestRooms_OwnerCannotLeave(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	if err := m.Leave("user_owner", r.ID); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("owner leave must be refused, got %v", err)
	}
}

func TestRooms_DeleteReturnsMembers(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	code, _ := m.CreateInvite("user_owner", r.ID)
	m.UseInvite("user_a", code)

	members, err := m.Delete("user_owner", r.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected pre-deletion member set of 2, got %d", len(members))
	}
	if _, ok := m.Get(r.ID); ok {
		t.Fatalf("room still present after delete")
	}
	// invites of the deleted room are dead
	if _, err := m.UseInvite("user_b", code); !errors.Is(err, app.ErrInviteInvalid) {
		t.Fatalf("expected dead invite, got %v", err)
	}
}

func TestRooms_DeleteRoleFallsBackToDefault(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	code, _ := m.CreateInvite("user_owner", r.ID)
	m.UseInvite("user_a", code)

	role, err := m.CreateRole("user_owner", r.ID, "mods", "#fff", 5, true, domain.PermManageMessages)
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	if err := m.AssignRole("user_owner", r.ID, "user_a", role.ID, true); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	// clear the default assignment so the custom role is the only one
	if err := m.AssignRole("user_owner", r.ID, "user_a", domain.RoleDefault, false); err != nil {
		t.Fatalf("unassign default: %v", err)
	}
	if !r.HasPermission("user_a", domain.PermManageMessages) {
		t.Fatalf("expected manage_messages via custom role")
	}

	if err := m.DeleteRole("user_owner", r.ID, role.ID); err != nil {
		t.Fatalf("delete role: %v", err)
	}
	roles := r.RolesOf("user_a")
	if len(roles) != 1 || roles[0] != domain.RoleDefault {
		t.Fatalf("member must fall back to default, got %v", roles)
	}
	if r.HasPermission("user_a", domain.PermManageMessages) {
		t.Fatalf("permission must be gone with the role")
	}
}

func TestRooms_BuiltinRolesProtected(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	if err := m.DeleteRole("user_owner", r.ID, domain.RoleOwner); !errors.Is(err, app.ErrBuiltinRole) {
		t.Fatalf("owner role must be protected, got %v", err)
	}
	if err := m.DeleteRole("user_owner", r.ID, domain.RoleDefault); !errors.Is(err, app.ErrBuiltinRole) {
		t.Fatalf("default role must be protected, got %v", err)
	}
}

func TestRooms_EnsureVoiceChannelEphemeral(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")

	ch, created, err := m.EnsureVoiceChannel(r.ID, "ch_adhoc", "Сходка")
	if err != nil || !created {
		t.Fatalf("expected creation, created=%v err=%v", created, err)
	}
	if !ch.Ephemeral {
		t.Fatalf("on-demand channel must be ephemeral")
	}

	// second ensure finds the existing channel
	_, created, err = m.EnsureVoiceChannel(r.ID, "ch_adhoc", "")
	if err != nil || created {
		t.Fatalf("expected reuse, created=%v err=%v", created, err)
	}

	m.DropVoiceChannel(r.ID, "ch_adhoc")
	if _, ok := r.VoiceChannel("ch_adhoc"); ok {
		t.Fatalf("dropped channel still present")
	}
	// the static default channel is never dropped implicitly
	if _, ok := r.VoiceChannel("voice"); !ok {
		t.Fatalf("static voice channel missing")
	}
}

func TestRooms_ChannelPermission(t *testing.T) {
	m := app.NewRooms()
	r := m.Create("user_owner", "Test", "")
	code, _ := m.CreateInvite("user_owner", r.ID)
	m.UseInvite("user_a", code)

	if _, err := m.CreateChannel("user_a", r.ID, "chat", domain.ChannelText); !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("member without manage_channels must be refused, got %v", err)
	}
	ch, err := m.CreateChannel("user_owner", r.ID, "chat", domain.ChannelText)
	if err != nil {
		t.Fatalf("owner create channel: %v", err)
	}
	if _, ok := r.TextChannel(ch.ID); !ok {
		t.Fatalf("created channel not found")
	}
}
