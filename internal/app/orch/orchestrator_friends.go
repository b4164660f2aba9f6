package orch

import (
	"errors"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

// FriendRequest targets a display name, the way the original product's add
// dialog works.
func (o *Orchestrator) FriendRequest(uid domain.UserID, conn core.SignalConnection, name string) {
	target, ok := o.Accounts.ByName(name)
	if !ok {
		o.send(conn, map[string]any{"type": protocol.EvFriendError, "message": "Пользователь не найден"})
		return
	}
	if err := o.Friends.Request(uid, target.ID); err != nil {
		switch {
		case errors.Is(err, app.ErrSelfFriend):
			o.send(conn, map[string]any{"type": protocol.EvFriendError, "message": "Нельзя добавить себя"})
		case errors.Is(err, app.ErrAlreadyFriends):
			o.send(conn, map[string]any{"type": protocol.EvFriendError, "message": "Уже в друзьях"})
		}
		// blocked requests vanish without a trace; the block must stay
		// unobservable to the blocked side
		return
	}
	o.ToUser(target.ID, map[string]any{
		"type": protocol.EvFriendRequestIncoming,
		"from": uid,
		"user": o.userInfo(uid),
	})
	o.send(conn, map[string]any{"type": protocol.EvFriendRequestSent, "to": target.ID})
}

func (o *Orchestrator) FriendAccept(uid domain.UserID, conn core.SignalConnection, from domain.UserID) {
	if err := o.Friends.Accept(uid, from); err != nil {
		return
	}
	o.send(conn, map[string]any{"type": protocol.EvFriendAdded, "user": o.userInfo(from)})
	o.ToUser(from, map[string]any{"type": protocol.EvFriendAdded, "user": o.userInfo(uid)})
}

func (o *Orchestrator) FriendReject(uid domain.UserID, from domain.UserID) {
	o.Friends.Reject(uid, from)
}

// FriendRemove severs the edge for both sides in one operation and tells
// both, no matter which side asked.
func (o *Orchestrator) FriendRemove(uid domain.UserID, conn core.SignalConnection, other domain.UserID) {
	o.Friends.Remove(uid, other)
	o.send(conn, map[string]any{"type": protocol.EvFriendRemoved, "userId": other})
	o.ToUser(other, map[string]any{"type": protocol.EvFriendRemoved, "userId": uid})
}

func (o *Orchestrator) BlockUser(uid domain.UserID, conn core.SignalConnection, target domain.UserID) {
	wasFriend := o.Friends.AreFriends(uid, target)
	o.Friends.Block(uid, target)
	if wasFriend {
		o.send(conn, map[string]any{"type": protocol.EvFriendRemoved, "userId": target})
		o.ToUser(target, map[string]any{"type": protocol.EvFriendRemoved, "userId": uid})
	}
}

func (o *Orchestrator) UnblockUser(uid domain.UserID, target domain.UserID) {
	o.Friends.Unblock(uid, target)
}

func (o *Orchestrator) FriendsList(uid domain.UserID, conn core.SignalConnection) {
	o.send(conn, map[string]any{
		"type":     protocol.EvFriendsList,
		"friends":  o.friendsView(uid),
		"requests": o.pendingView(uid),
	})
}
