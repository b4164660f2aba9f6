package orch

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

func (o *Orchestrator) SendMessage(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, text string, replyTo *domain.ReplyRef) {
	author, ok := o.Accounts.ByID(uid)
	if !ok {
		return
	}
	msg, err := o.Rooms.AppendMessage(author, roomID, chID, text, replyTo)
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":     protocol.EvMessage,
		"serverId": roomID,
		"channel":  chID,
		"message":  msg,
	}, "")
}

func (o *Orchestrator) EditMessage(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, msgID, text string) {
	msg, err := o.Rooms.EditMessage(uid, roomID, chID, msgID, text)
	if err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvMessageEdited,
		"serverId":  roomID,
		"channelId": chID,
		"message":   msg,
	}, "")
}

func (o *Orchestrator) DeleteMessage(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, msgID string) {
	if err := o.Rooms.DeleteMessage(uid, roomID, chID, msgID); err != nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvMessageDeleted,
		"serverId":  roomID,
		"channelId": chID,
		"messageId": msgID,
	}, "")
}

func (o *Orchestrator) AddReaction(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, msgID, emoji string) {
	msg, err := o.Rooms.AddReaction(uid, roomID, chID, msgID, emoji)
	if err != nil || msg == nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvReactionAdded,
		"serverId":  roomID,
		"channelId": chID,
		"messageId": msgID,
		"emoji":     emoji,
		"userId":    uid,
	}, "")
}

func (o *Orchestrator) RemoveReaction(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, msgID, emoji string) {
	msg, err := o.Rooms.RemoveReaction(uid, roomID, chID, msgID, emoji)
	if err != nil || msg == nil {
		return
	}
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvReactionRemoved,
		"serverId":  roomID,
		"channelId": chID,
		"messageId": msgID,
		"emoji":     emoji,
		"userId":    uid,
	}, "")
}

// SendDM stores and delivers a direct message. A block edge in either
// direction drops it silently.
func (o *Orchestrator) SendDM(uid domain.UserID, conn core.SignalConnection, to domain.UserID, text string) {
	author, ok := o.Accounts.ByID(uid)
	if !ok {
		return
	}
	if o.Friends.IsBlocked(uid, to) || o.Friends.IsBlocked(to, uid) {
		return
	}
	msg := o.DMs.Append(author, to, text)
	o.ToUser(to, map[string]any{
		"type":    protocol.EvDM,
		"from":    uid,
		"message": msg,
		"sender":  o.userInfo(uid),
	})
	o.send(conn, map[string]any{
		"type":      protocol.EvDMSent,
		"to":        to,
		"message":   msg,
		"recipient": o.userInfo(to),
	})
}

func (o *Orchestrator) DMHistory(uid domain.UserID, conn core.SignalConnection, with domain.UserID) {
	o.send(conn, map[string]any{
		"type":     protocol.EvDMHistory,
		"withId":   with,
		"messages": o.DMs.History(uid, with),
	})
}

// VoiceSignal relays an opaque negotiation envelope to every live session
// of the target, tagged with the sender. The hub never looks inside.
func (o *Orchestrator) VoiceSignal(uid domain.UserID, to domain.UserID, signal json.RawMessage) {
	o.ToUser(to, map[string]any{
		"type":   protocol.EvVoiceSignal,
		"from":   uid,
		"signal": signal,
	})
}
