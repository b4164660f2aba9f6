package orch

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

// Register creates an account and binds the session in one step, the way a
// fresh client expects: a successful register is also a login.
func (o *Orchestrator) Register(sid core.SessionID, conn core.SignalConnection, email, password, name string) {
	user, err := o.Accounts.Register(email, password, name)
	if err != nil {
		msg := "Не удалось зарегистрироваться"
		if errors.Is(err, app.ErrEmailTaken) {
			msg = "Email уже зарегистрирован"
		}
		o.send(conn, map[string]any{"type": protocol.EvAuthError, "message": msg})
		return
	}
	o.bindSession(sid, conn, user)
}

func (o *Orchestrator) Login(sid core.SessionID, conn core.SignalConnection, email, password string) {
	user, err := o.Accounts.Login(email, password)
	if err != nil {
		o.send(conn, map[string]any{"type": protocol.EvAuthError, "message": "Неверный email или пароль"})
		return
	}
	o.bindSession(sid, conn, user)
}

func (o *Orchestrator) bindSession(sid core.SessionID, conn core.SignalConnection, user *domain.User) {
	first := o.Registry.Bind(sid, user.ID, conn)

	o.send(conn, map[string]any{
		"type":            protocol.EvAuthSuccess,
		"userId":          user.ID,
		"user":            o.userInfo(user.ID),
		"servers":         o.serversView(user.ID),
		"friends":         o.friendsView(user.ID),
		"pendingRequests": o.pendingView(user.ID),
	})

	if first {
		o.broadcastPresence(user.ID, map[string]any{
			"type": protocol.EvUserJoin,
			"user": o.userInfo(user.ID),
		})
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("user", string(user.ID)).Msg("session authenticated")
}

// UpdateProfile applies the profile mutation, rewrites the author snapshot
// on the user's past messages and notifies the presence scope.
func (o *Orchestrator) UpdateProfile(uid domain.UserID, conn core.SignalConnection, name string, avatar *string, status domain.Status, customStatus *string) {
	user, err := o.Accounts.UpdateProfile(uid, name, avatar, status, customStatus)
	if err != nil {
		return
	}
	o.Rooms.RefreshAuthor(uid, user.Name, user.Avatar)

	o.send(conn, map[string]any{"type": protocol.EvProfileUpdated, "user": o.userInfo(uid)})
	o.broadcastPresence(uid, map[string]any{"type": protocol.EvUserUpdate, "user": o.userInfo(uid)})
}

func (o *Orchestrator) serversView(uid domain.UserID) map[string]any {
	out := make(map[string]any)
	for _, r := range o.Rooms.For(uid) {
		out[string(r.ID)] = o.serverView(r)
	}
	return out
}

func (o *Orchestrator) serverView(r *domain.Room) map[string]any {
	members := make([]domain.UserID, 0, len(r.Members))
	for member := range r.Members {
		members = append(members, member)
	}
	memberRoles := make(map[string][]domain.RoleID, len(r.Members))
	for member := range r.Members {
		memberRoles[string(member)] = r.RolesOf(member)
	}
	roles := make([]map[string]any, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, roleView(role))
	}
	return map[string]any{
		"id":            r.ID,
		"name":          r.Name,
		"icon":          r.Icon,
		"ownerId":       r.OwnerID,
		"channels":      r.TextChannels,
		"voiceChannels": r.VoiceChannels,
		"messages":      r.Messages,
		"members":       members,
		"roles":         roles,
		"memberRoles":   memberRoles,
	}
}

func roleView(role *domain.Role) map[string]any {
	return map[string]any{
		"id":       role.ID,
		"name":     role.Name,
		"color":    role.Color,
		"position": role.Position,
		"hoist":    role.Hoist,
		"perms":    role.Perms.Names(),
	}
}

func (o *Orchestrator) friendsView(uid domain.UserID) []*protocol.UserInfo {
	var out []*protocol.UserInfo
	for _, friend := range o.Friends.Of(uid) {
		if info := o.userInfo(friend); info != nil {
			out = append(out, info)
		}
	}
	return out
}

func (o *Orchestrator) pendingView(uid domain.UserID) []*protocol.UserInfo {
	var out []*protocol.UserInfo
	for _, from := range o.Friends.PendingFor(uid) {
		if info := o.userInfo(from); info != nil {
			out = append(out, info)
		}
	}
	return out
}
