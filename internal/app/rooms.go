package app

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInviteInvalid = errors.New("invite invalid")
	ErrBuiltinRole   = errors.New("builtin role")
)

// Rooms owns every room ("server"), its membership, channels, roles and
// invites. Authorization lives here: a mutation by a caller without the
// required permission returns ErrForbidden and the orchestrator drops it
// silently, no broadcast.
type Rooms struct {
	mu      sync.RWMutex
	rooms   map[domain.RoomID]*domain.Room
	invites map[string]domain.RoomID
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms:   make(map[domain.RoomID]*domain.Room),
		invites: make(map[string]domain.RoomID),
	}
}

func (m *Rooms) Create(owner domain.UserID, name, icon string) *domain.Room {
	if name == "" {
		name = "Новый сервер"
	}
	r := domain.NewRoom(name, owner)
	r.Icon = icon
	m.mu.Lock()
	m.rooms[r.ID] = r
	m.mu.Unlock()
	log.Info().Str("module", "app.rooms").Str("room", string(r.ID)).Str("owner", string(owner)).Msg("room created")
	return r
}

func (m *Rooms) Get(id domain.RoomID) (*domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// For returns every room the identity is a member of.
func (m *Rooms) For(uid domain.UserID) []*domain.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Room
	for _, r := range m.rooms {
		if r.IsMember(uid) {
			out = append(out, r)
		}
	}
	return out
}

// Members returns the post-mutation member set used to scope broadcasts.
func (m *Rooms) Members(id domain.RoomID) []domain.UserID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil
	}
	out := make([]domain.UserID, 0, len(r.Members))
	for uid := range r.Members {
		out = append(out, uid)
	}
	return out
}

func (m *Rooms) Update(uid domain.UserID, id domain.RoomID, name, icon string, iconSet bool) (*domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if r.OwnerID != uid {
		return nil, ErrForbidden
	}
	if name != "" {
		r.Name = name
	}
	if iconSet {
		r.Icon = icon
	}
	return r, nil
}

// Delete removes the room entirely. Only the owner may; the pre-deletion
// member set is returned so each member can still be notified.
func (m *Rooms) Delete(uid domain.UserID, id domain.RoomID) ([]domain.UserID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if r.OwnerID != uid {
		return nil, ErrForbidden
	}
	members := make([]domain.UserID, 0, len(r.Members))
	for member := range r.Members {
		members = append(members, member)
	}
	delete(m.rooms, id)
	for code, roomID := range m.invites {
		if roomID == id {
			delete(m.invites, code)
		}
	}
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room deleted")
	return members, nil
}

// Leave removes the member. The owner cannot leave their own room, only
// delete it; the member set must always contain the owner.
func (m *Rooms) Leave(uid domain.UserID, id domain.RoomID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if r.OwnerID == uid {
		return ErrForbidden
	}
	if !r.IsMember(uid) {
		return domain.ErrNotMember
	}
	delete(r.Members, uid)
	delete(r.MemberRoles, uid)
	return nil
}

func (m *Rooms) Kick(uid domain.UserID, id domain.RoomID, target domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermKickMembers) || target == r.OwnerID {
		return ErrForbidden
	}
	if !r.IsMember(target) {
		return domain.ErrNotMember
	}
	delete(r.Members, target)
	delete(r.MemberRoles, target)
	return nil
}

func (m *Rooms) CreateInvite(uid domain.UserID, id domain.RoomID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return "", domain.ErrRoomNotFound
	}
	if !r.IsMember(uid) {
		return "", ErrForbidden
	}
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	code := hex.EncodeToString(b[:])
	m.invites[code] = id
	return code, nil
}

func (m *Rooms) UseInvite(uid domain.UserID, code string) (*domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.invites[code]
	if !ok {
		return nil, ErrInviteInvalid
	}
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrInviteInvalid
	}
	r.Members[uid] = struct{}{}
	if _, ok := r.MemberRoles[uid]; !ok {
		r.MemberRoles[uid] = map[domain.RoleID]bool{domain.RoleDefault: true}
	}
	return r, nil
}

func (m *Rooms) CreateChannel(uid domain.UserID, id domain.RoomID, name string, kind domain.ChannelKind) (*domain.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageChannels) {
		return nil, ErrForbidden
	}
	if name == "" {
		name = "новый-канал"
	}
	ch := &domain.Channel{
		ID:   domain.ChannelID("ch_" + uuid.NewString()),
		Name: name,
		Kind: kind,
	}
	if kind == domain.ChannelVoice {
		r.VoiceChannels = append(r.VoiceChannels, ch)
	} else {
		r.TextChannels = append(r.TextChannels, ch)
		r.Messages[ch.ID] = []*domain.Message{}
	}
	return ch, nil
}

func (m *Rooms) UpdateChannel(uid domain.UserID, id domain.RoomID, chID domain.ChannelID, name string) (*domain.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageChannels) {
		return nil, ErrForbidden
	}
	ch, ok := r.TextChannel(chID)
	if !ok {
		ch, ok = r.VoiceChannel(chID)
	}
	if !ok {
		return nil, domain.ErrChannelNotFound
	}
	if name == "" {
		return nil, domain.ErrNameEmpty
	}
	ch.Name = name
	return ch, nil
}

func (m *Rooms) DeleteChannel(uid domain.UserID, id domain.RoomID, chID domain.ChannelID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageChannels) {
		return ErrForbidden
	}
	return m.dropChannelLocked(r, chID)
}

// DropVoiceChannel removes a voice channel without a caller check; the voice
// manager uses it to reap empty ephemeral channels.
func (m *Rooms) DropVoiceChannel(id domain.RoomID, chID domain.ChannelID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		_ = m.dropChannelLocked(r, chID)
	}
}

func (m *Rooms) dropChannelLocked(r *domain.Room, chID domain.ChannelID) error {
	for i, ch := range r.TextChannels {
		if ch.ID == chID {
			r.TextChannels = append(r.TextChannels[:i], r.TextChannels[i+1:]...)
			delete(r.Messages, chID)
			return nil
		}
	}
	for i, ch := range r.VoiceChannels {
		if ch.ID == chID {
			r.VoiceChannels = append(r.VoiceChannels[:i], r.VoiceChannels[i+1:]...)
			return nil
		}
	}
	return domain.ErrChannelNotFound
}

// EnsureVoiceChannel instantiates an ephemeral voice channel on demand.
// It reports whether the channel was created by this call.
func (m *Rooms) EnsureVoiceChannel(id domain.RoomID, chID domain.ChannelID, name string) (*domain.Channel, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, false, domain.ErrRoomNotFound
	}
	if ch, ok := r.VoiceChannel(chID); ok {
		return ch, false, nil
	}
	if name == "" {
		name = string(chID)
	}
	ch := &domain.Channel{ID: chID, Name: name, Kind: domain.ChannelVoice, Ephemeral: true}
	r.VoiceChannels = append(r.VoiceChannels, ch)
	return ch, true, nil
}

func (m *Rooms) CreateRole(uid domain.UserID, id domain.RoomID, name, color string, position int, hoist bool, perms domain.Permission) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageRoles) {
		return nil, ErrForbidden
	}
	if name == "" {
		return nil, domain.ErrNameEmpty
	}
	role := &domain.Role{
		ID:       domain.RoleID("role_" + uuid.NewString()),
		Name:     name,
		Color:    color,
		Position: position,
		Hoist:    hoist,
		Perms:    perms,
	}
	r.Roles = append(r.Roles, role)
	return role, nil
}

// DeleteRole drops the role and its assignments. Members left without any
// explicit role resolve to the implicit default, never role-less.
func (m *Rooms) DeleteRole(uid domain.UserID, id domain.RoomID, roleID domain.RoleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageRoles) {
		return ErrForbidden
	}
	if roleID == domain.RoleOwner || roleID == domain.RoleDefault {
		return ErrBuiltinRole
	}
	for i, role := range r.Roles {
		if role.ID == roleID {
			r.Roles = append(r.Roles[:i], r.Roles[i+1:]...)
			for member, assigned := range r.MemberRoles {
				delete(assigned, roleID)
				if len(assigned) == 0 {
					delete(r.MemberRoles, member)
				}
			}
			return nil
		}
	}
	return domain.ErrRoleNotFound
}

func (m *Rooms) AssignRole(uid domain.UserID, id domain.RoomID, target domain.UserID, roleID domain.RoleID, add bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !r.HasPermission(uid, domain.PermManageRoles) {
		return ErrForbidden
	}
	if !r.IsMember(target) {
		return domain.ErrNotMember
	}
	if _, ok := r.Role(roleID); !ok {
		return domain.ErrRoleNotFound
	}
	if add {
		if r.MemberRoles[target] == nil {
			r.MemberRoles[target] = make(map[domain.RoleID]bool)
		}
		r.MemberRoles[target][roleID] = true
		return nil
	}
	delete(r.MemberRoles[target], roleID)
	if len(r.MemberRoles[target]) == 0 {
		delete(r.MemberRoles, target)
	}
	return nil
}

func (m *Rooms) Export() (map[domain.RoomID]*domain.Room, map[string]domain.RoomID) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make(map[domain.RoomID]*domain.Room, len(m.rooms))
	for id, r := range m.rooms {
		rooms[id] = r
	}
	invites := make(map[string]domain.RoomID, len(m.invites))
	for code, id := range m.invites {
		invites[code] = id
	}
	return rooms, invites
}

func (m *Rooms) Restore(rooms map[domain.RoomID]*domain.Room, invites map[string]domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range rooms {
		if r.MemberRoles == nil {
			r.MemberRoles = make(map[domain.UserID]map[domain.RoleID]bool)
		}
		if r.Messages == nil {
			r.Messages = make(map[domain.ChannelID][]*domain.Message)
		}
		m.rooms[id] = r
	}
	for code, id := range invites {
		m.invites[code] = id
	}
}
