package domain_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func TestNewRoomDefaults(t *testing.T) {
	r := domain.NewRoom("test", "user_owner")

	if !r.IsMember("user_owner") {
		t.Fatalf("owner must be a member")
	}
	if _, ok := r.TextChannel("general"); !ok {
		t.Fatalf("expected default text channel")
	}
	if _, ok := r.VoiceChannel("voice"); !ok {
		t.Fatalf("expected default voice channel")
	}
	if _, ok := r.Role(domain.RoleOwner); !ok {
		t.Fatalf("expected owner role")
	}
	if _, ok := r.Role(domain.RoleDefault); !ok {
		t.Fatalf("expected default role")
	}
}

func TestHasPermission_OwnerAlwaysPasses(t *testing.T) {
	r := domain.NewRoom("test", "user_owner")
	if !r.HasPermission("user_owner", domain.PermManageRoles) {
		t.Fatalf("owner must pass every permission check")
	}
}

func TestHasPermission_UnionAcrossRoles(t *testing.T) {
	r := domain.NewRoom("test", "user_owner")
	r.Members["user_m"] = struct{}{}
	r.Roles = append(r.Roles,
		&domain.Role{ID: "role_a", Name: "A", Perms: domain.PermManageChannels},
		&domain.Role{ID: "role_b", Name: "B", Perms: domain.PermKickMembers},
	)
	r.MemberRoles["user_m"] = map[domain.RoleID]bool{"role_a": true, "role_b": true}

	if !r.HasPermission("user_m", domain.PermManageChannels) {
		t.Fatalf("expected manage_channels from role A")
	}
	if !r.HasPermission("user_m", domain.PermKickMembers) {
		t.Fatalf("expected kick_members from role B")
	}
	if r.HasPermission("user_m", domain.PermManageRoles) {
		t.Fatalf("manage_roles granted by neither role")
	}
}

func TestHasPermission_NonMemberDenied(t *testing.T) {
	r := domain.NewRoom("test", "user_owner")
	if r.HasPermission("user_stranger", domain.PermCreateInvite) {
		t.Fatalf("non-member must be denied")
	}
}

func TestRolesOf_FallsBackToDefault(t *testing.T) {
	r := domain.NewRoom("test", "user_owner")
	r.Members["user_m"] = struct{}{}

	roles := r.RolesOf("user_m")
	if len(roles) != 1 || roles[0] != domain.RoleDefault {
		t.Fatalf("expected implicit default role, got %v", roles)
	}
}

func TestParsePermissions(t *testing.T) {
	p := domain.ParsePermissions([]string{"manage_channels", "kick_members", "nonsense"})
	if !p.Has(domain.PermManageChannels) || !p.Has(domain.PermKickMembers) {
		t.Fatalf("expected both named permissions set")
	}
	if p.Has(domain.PermManageRoles) {
		t.Fatalf("unrequested permission set")
	}

	all := domain.ParsePermissions([]string{"all"})
	if !all.Has(domain.PermManageRoles) || !all.Has(domain.PermManageMessages) {
		t.Fatalf("all must cover every permission")
	}
	names := all.Names()
	if len(names) != 1 || names[0] != "all" {
		t.Fatalf("all must round-trip as the sentinel, got %v", names)
	}
}
