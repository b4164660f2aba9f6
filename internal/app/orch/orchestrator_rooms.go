package orch

import (
	"sort"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

// Room, channel and role mutations follow the deny-by-omission policy: a
// failed authorization or lookup is a silent no-op, nothing is broadcast.

func (o *Orchestrator) CreateServer(uid domain.UserID, conn core.SignalConnection, name, icon string) {
	r := o.Rooms.Create(uid, name, icon)
	o.send(conn, map[string]any{"type": protocol.EvServerCreated, "server": o.serverView(r)})
}

func (o *Orchestrator) UpdateServer(uid domain.UserID, roomID domain.RoomID, name, icon string, iconSet bool) {
	r, err := o.Rooms.Update(uid, roomID, name, icon, iconSet)
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvServerUpdated,
		"serverId": roomID,
		"name":     r.Name,
		"icon":     r.Icon,
	}, "")
}

func (o *Orchestrator) DeleteServer(uid domain.UserID, roomID domain.RoomID) {
	members, err := o.Rooms.Delete(uid, roomID)
	if err != nil {
		return
	}
	for _, member := range members {
		o.ToUser(member, map[string]any{"type": protocol.EvServerDeleted, "serverId": roomID})
	}
}

func (o *Orchestrator) LeaveServer(uid domain.UserID, conn core.SignalConnection, roomID domain.RoomID) {
	if err := o.Rooms.Leave(uid, roomID); err != nil {
		return
	}
	o.send(conn, map[string]any{"type": protocol.EvServerLeft, "serverId": roomID})
	o.ToRoom(roomID, map[string]any{"type": protocol.EvMemberLeft, "serverId": roomID, "userId": uid}, "")
}

func (o *Orchestrator) KickMember(uid domain.UserID, roomID domain.RoomID, target domain.UserID) {
	if err := o.Rooms.Kick(uid, roomID, target); err != nil {
		return
	}
	o.ToUser(target, map[string]any{"type": protocol.EvServerLeft, "serverId": roomID, "kicked": true})
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvMemberLeft,
		"serverId": roomID,
		"userId":   target,
		"kicked":   true,
	}, "")
}

func (o *Orchestrator) CreateChannel(uid domain.UserID, roomID domain.RoomID, name string, voice bool) {
	kind := domain.ChannelText
	if voice {
		kind = domain.ChannelVoice
	}
	ch, err := o.Rooms.CreateChannel(uid, roomID, name, kind)
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvChannelCreated,
		"serverId": roomID,
		"channel":  ch,
		"isVoice":  voice,
	}, "")
}

func (o *Orchestrator) UpdateChannel(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, name string) {
	ch, err := o.Rooms.UpdateChannel(uid, roomID, chID, name)
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvChannelUpdated,
		"serverId":  roomID,
		"channelId": chID,
		"name":      ch.Name,
		"isVoice":   ch.Kind == domain.ChannelVoice,
	}, "")
}

func (o *Orchestrator) DeleteChannel(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID) {
	if err := o.Rooms.DeleteChannel(uid, roomID, chID); err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvChannelDeleted,
		"serverId":  roomID,
		"channelId": chID,
	}, "")
}

func (o *Orchestrator) CreateInvite(uid domain.UserID, conn core.SignalConnection, roomID domain.RoomID) {
	code, err := o.Rooms.CreateInvite(uid, roomID)
	if err != nil {
		return
	}
	o.send(conn, map[string]any{"type": protocol.EvInviteCreated, "code": code, "serverId": roomID})
}

func (o *Orchestrator) UseInvite(uid domain.UserID, conn core.SignalConnection, code string) {
	r, err := o.Rooms.UseInvite(uid, code)
	if err != nil {
		o.send(conn, map[string]any{"type": protocol.EvInviteError, "message": "Недействительный код"})
		return
	}
	o.send(conn, map[string]any{
		"type":     protocol.EvServerJoined,
		"serverId": r.ID,
		"server":   o.serverView(r),
	})
	o.ToRoom(r.ID, map[string]any{
		"type":     protocol.EvMemberJoined,
		"serverId": r.ID,
		"user":     o.userInfo(uid),
	}, uid)
}

func (o *Orchestrator) CreateRole(uid domain.UserID, roomID domain.RoomID, name, color string, position int, hoist bool, perms []string) {
	role, err := o.Rooms.CreateRole(uid, roomID, name, color, position, hoist, domain.ParsePermissions(perms))
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvRoleCreated,
		"serverId": roomID,
		"role":     roleView(role),
	}, "")
}

func (o *Orchestrator) DeleteRole(uid domain.UserID, roomID domain.RoomID, roleID domain.RoleID) {
	if err := o.Rooms.DeleteRole(uid, roomID, roleID); err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvRoleDeleted,
		"serverId": roomID,
		"roleId":   roleID,
	}, "")
}

func (o *Orchestrator) AssignRole(uid domain.UserID, roomID domain.RoomID, target domain.UserID, roleID domain.RoleID, add bool) {
	if err := o.Rooms.AssignRole(uid, roomID, target, roleID, add); err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvRoleAssigned,
		"serverId": roomID,
		"userId":   target,
		"roleId":   roleID,
		"add":      add,
	}, "")
}

// ServerMembers replies with the roster: profile, role set, owner flag.
func (o *Orchestrator) ServerMembers(uid domain.UserID, conn core.SignalConnection, roomID domain.RoomID) {
	r, ok := o.Rooms.Get(roomID)
	if !ok || !r.IsMember(uid) {
		return
	}
	var members []protocol.MemberInfo
	for _, member := range o.Rooms.Members(roomID) {
		info := o.userInfo(member)
		if info == nil {
			continue
		}
		if member == uid {
			// the requester always sees themselves online
			info.Status = string(domain.StatusOnline)
		}
		roles := make([]string, 0, 1)
		for _, roleID := range r.RolesOf(member) {
			roles = append(roles, string(roleID))
		}
		sort.Strings(roles)
		members = append(members, protocol.MemberInfo{
			UserInfo: *info,
			Roles:    roles,
			IsOwner:  member == r.OwnerID,
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	o.send(conn, map[string]any{
		"type":     protocol.EvServerMembersList,
		"serverId": roomID,
		"members":  members,
	})
}
