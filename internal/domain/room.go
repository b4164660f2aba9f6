package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrNotMember       = errors.New("not a member")
)

type (
	RoomID    string
	ChannelID string
	RoleID    string
)

// Permission is a bit-set. PermAll is a sentinel granting everything; it is
// checked once instead of comparing permission names one by one.
type Permission uint32

const (
	PermManageChannels Permission = 1 << iota
	PermManageRoles
	PermManageMessages
	PermKickMembers
	PermCreateInvite

	PermAll Permission = 1<<31 - 1
)

func (p Permission) Has(perm Permission) bool {
	return p&perm == perm
}

var permNames = map[string]Permission{
	"all":             PermAll,
	"manage_channels": PermManageChannels,
	"manage_roles":    PermManageRoles,
	"manage_messages": PermManageMessages,
	"kick_members":    PermKickMembers,
	"create_invite":   PermCreateInvite,
}

// ParsePermissions folds permission names into a bit-set, ignoring unknown
// names rather than failing the whole role.
func ParsePermissions(names []string) Permission {
	var p Permission
	for _, n := range names {
		p |= permNames[n]
	}
	return p
}

func (p Permission) Names() []string {
	if p.Has(PermAll) {
		return []string{"all"}
	}
	var out []string
	for _, n := range []string{"manage_channels", "manage_roles", "manage_messages", "kick_members", "create_invite"} {
		if p.Has(permNames[n]) {
			out = append(out, n)
		}
	}
	return out
}

type ChannelKind string

const (
	ChannelText  ChannelKind = "text"
	ChannelVoice ChannelKind = "voice"
)

type Channel struct {
	ID        ChannelID   `json:"id"`
	Name      string      `json:"name"`
	Kind      ChannelKind `json:"kind"`
	Ephemeral bool        `json:"ephemeral,omitempty"`
}

type Role struct {
	ID       RoleID     `json:"id"`
	Name     string     `json:"name"`
	Color    string     `json:"color,omitempty"`
	Position int        `json:"position"`
	Hoist    bool       `json:"hoist,omitempty"`
	Perms    Permission `json:"perms"`
}

const (
	RoleOwner   RoleID = "owner"
	RoleDefault RoleID = "default"
)

// Room is a named group ("server") of members, channels and roles. Members
// with no explicit role assignment are implicitly in RoleDefault. The owner
// is always a member and always passes permission checks.
type Room struct {
	ID            RoomID                     `json:"id"`
	Name          string                     `json:"name"`
	Icon          string                     `json:"icon,omitempty"`
	OwnerID       UserID                     `json:"owner_id"`
	Members       map[UserID]struct{}        `json:"members"`
	TextChannels  []*Channel                 `json:"channels"`
	VoiceChannels []*Channel                 `json:"voice_channels"`
	Roles         []*Role                    `json:"roles"`
	MemberRoles   map[UserID]map[RoleID]bool `json:"member_roles"`
	Messages      map[ChannelID][]*Message   `json:"messages"`
}

func NewRoom(name string, owner UserID) *Room {
	r := &Room{
		ID:      RoomID("server_" + uuid.NewString()),
		Name:    name,
		OwnerID: owner,
		Members: map[UserID]struct{}{owner: {}},
		TextChannels: []*Channel{
			{ID: "general", Name: "общий", Kind: ChannelText},
		},
		VoiceChannels: []*Channel{
			{ID: "voice", Name: "Голосовой", Kind: ChannelVoice},
		},
		Roles: []*Role{
			{ID: RoleOwner, Name: "Владелец", Color: "#f1c40f", Position: 100, Perms: PermAll},
			{ID: RoleDefault, Name: "Участник", Color: "#99aab5", Position: 0},
		},
		MemberRoles: map[UserID]map[RoleID]bool{
			owner: {RoleOwner: true},
		},
		Messages: map[ChannelID][]*Message{"general": {}},
	}
	return r
}

func (r *Room) IsMember(uid UserID) bool {
	_, ok := r.Members[uid]
	return ok
}

func (r *Room) Role(id RoleID) (*Role, bool) {
	for _, role := range r.Roles {
		if role.ID == id {
			return role, true
		}
	}
	return nil, false
}

// RolesOf returns the member's assigned role ids; members without an
// explicit assignment fall back to the default role.
func (r *Room) RolesOf(uid UserID) []RoleID {
	assigned := r.MemberRoles[uid]
	if len(assigned) == 0 {
		return []RoleID{RoleDefault}
	}
	out := make([]RoleID, 0, len(assigned))
	for id := range assigned {
		out = append(out, id)
	}
	return out
}

// HasPermission resolves the union of the member's role permissions.
// The owner always passes.
func (r *Room) HasPermission(uid UserID, perm Permission) bool {
	if uid == r.OwnerID {
		return true
	}
	if !r.IsMember(uid) {
		return false
	}
	var union Permission
	for _, id := range r.RolesOf(uid) {
		if role, ok := r.Role(id); ok {
			union |= role.Perms
		}
	}
	return union.Has(PermAll) || union.Has(perm)
}

func (r *Room) TextChannel(id ChannelID) (*Channel, bool) {
	for _, ch := range r.TextChannels {
		if ch.ID == id {
			return ch, true
		}
	}
	return nil, false
}

func (r *Room) VoiceChannel(id ChannelID) (*Channel, bool) {
	for _, ch := range r.VoiceChannels {
		if ch.ID == id {
			return ch, true
		}
	}
	return nil, false
}
