// Package orch wires the in-memory managers into one hub aggregate and owns
// every outbound broadcast. Handlers mutate state first, then compute the
// affected identity set from the post-mutation state, then fan out.
package orch

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

type Orchestrator struct {
	Registry *app.Registry
	Accounts *app.Accounts
	Rooms    *app.Rooms
	Friends  *app.Friends
	DMs      *app.DMs
	Voice    *app.Voice
	Calls    *app.Calls
}

func New(hasher core.PasswordHasher, ringTimeout time.Duration) *Orchestrator {
	o := &Orchestrator{
		Registry: app.NewRegistry(),
		Accounts: app.NewAccounts(hasher),
		Rooms:    app.NewRooms(),
		Friends:  app.NewFriends(),
		DMs:      app.NewDMs(),
		Voice:    app.NewVoice(),
	}
	o.Calls = app.NewCalls(ringTimeout, o.onCallTimeout)
	return o
}

// send delivers one frame to one connection, best effort. A full send
// buffer drops the frame rather than blocking the handler.
func (o *Orchestrator) send(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal outbound")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "orch").Msg("dropped outbound frame")
	}
}

// ToUser delivers to every live session of the identity.
func (o *Orchestrator) ToUser(uid domain.UserID, v any) {
	for _, conn := range o.Registry.SessionsOf(uid) {
		o.send(conn, v)
	}
}

// ToRoom delivers to every live session of every current member, except the
// excluded identity ("" excludes nobody).
func (o *Orchestrator) ToRoom(roomID domain.RoomID, v any, excluding domain.UserID) {
	for _, member := range o.Rooms.Members(roomID) {
		if member == excluding {
			continue
		}
		o.ToUser(member, v)
	}
}

// ToAll delivers to every live session.
func (o *Orchestrator) ToAll(v any, excluding domain.UserID) {
	for _, snap := range o.Registry.All() {
		if snap.UserID == excluding {
			continue
		}
		o.send(snap.Conn, v)
	}
}

// presenceScope is the identity set interested in uid's presence: everyone
// sharing a room with uid plus uid's friends, deduplicated, uid excluded.
func (o *Orchestrator) presenceScope(uid domain.UserID) []domain.UserID {
	seen := map[domain.UserID]struct{}{uid: {}}
	var out []domain.UserID
	for _, room := range o.Rooms.For(uid) {
		for _, member := range o.Rooms.Members(room.ID) {
			if _, ok := seen[member]; ok {
				continue
			}
			seen[member] = struct{}{}
			out = append(out, member)
		}
	}
	for _, friend := range o.Friends.Of(uid) {
		if _, ok := seen[friend]; ok {
			continue
		}
		seen[friend] = struct{}{}
		out = append(out, friend)
	}
	return out
}

func (o *Orchestrator) broadcastPresence(uid domain.UserID, v any) {
	for _, other := range o.presenceScope(uid) {
		o.ToUser(other, v)
	}
}

// userInfo is the public view of an identity. Offline and invisible
// identities both read as offline to everyone else.
func (o *Orchestrator) userInfo(uid domain.UserID) *protocol.UserInfo {
	acc, ok := o.Accounts.ByID(uid)
	if !ok {
		return nil
	}
	status := acc.Status
	if !o.Registry.Online(uid) || status == domain.StatusInvisible {
		status = domain.StatusOffline
	}
	if status == "" {
		status = domain.StatusOnline
	}
	return &protocol.UserInfo{
		ID:     string(uid),
		Name:   acc.Name,
		Avatar: acc.Avatar,
		Status: string(status),
	}
}

// OnClose runs the disconnect cascade: voice leave, call teardown, presence
// leave, in that order, once the identity's last session closes.
func (o *Orchestrator) OnClose(sid core.SessionID) {
	uid, last, ok := o.Registry.Unbind(sid)
	if !ok || !last {
		return
	}
	o.leaveVoice(uid)
	if peer, err := o.Calls.End(uid); err == nil {
		o.ToUser(peer, map[string]any{"type": protocol.EvCallEnded, "from": uid})
	}
	o.broadcastPresence(uid, map[string]any{"type": protocol.EvUserLeave, "userId": uid})
}

func (o *Orchestrator) onCallTimeout(caller, callee domain.UserID) {
	o.ToUser(caller, map[string]any{
		"type":   protocol.EvCallRejected,
		"from":   callee,
		"reason": protocol.RejectReasonNoAnswer,
	})
	o.ToUser(callee, map[string]any{"type": protocol.EvCallEnded, "from": caller})
}

// Snapshot assembles the durable state for the storage collaborator.
func (o *Orchestrator) Snapshot() *core.Snapshot {
	rooms, invites := o.Rooms.Export()
	friends, requests, blocks := o.Friends.Export()
	return &core.Snapshot{
		Accounts:  o.Accounts.Export(),
		Rooms:     rooms,
		Invites:   invites,
		Friends:   friends,
		Requests:  requests,
		Blocks:    blocks,
		DMHistory: o.DMs.Export(),
	}
}

func (o *Orchestrator) Restore(snap *core.Snapshot) {
	if snap == nil {
		return
	}
	o.Accounts.Restore(snap.Accounts)
	o.Rooms.Restore(snap.Rooms, snap.Invites)
	o.Friends.Restore(snap.Friends, snap.Requests, snap.Blocks)
	o.DMs.Restore(snap.DMHistory)
}
