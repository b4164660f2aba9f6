package orch

import (
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

// JoinVoice moves the identity into a voice channel, leaving any previously
// occupied channel first. Joining an unknown channel id with the ephemeral
// flag instantiates the channel; without the flag it is a no-op.
func (o *Orchestrator) JoinVoice(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID, ephemeral bool, name string) {
	r, ok := o.Rooms.Get(roomID)
	if !ok || !r.IsMember(uid) {
		return
	}
	if _, ok := r.VoiceChannel(chID); !ok {
		if !ephemeral {
			return
		}
		_, created, err := o.Rooms.EnsureVoiceChannel(roomID, chID, name)
		if err != nil {
			return
		}
		if created {
			ch, _ := o.roomVoiceChannel(roomID, chID)
			o.ToRoom(roomID, map[string]any{
				"type":     protocol.EvChannelCreated,
				"serverId": roomID,
				"channel":  ch,
				"isVoice":  true,
			}, "")
		}
	}

	prev, joined := o.Voice.Join(uid, roomID, chID)
	if !joined {
		return
	}
	if prev != nil {
		o.afterVacate(prev)
	}
	o.broadcastRoster(roomID, chID)
}

func (o *Orchestrator) LeaveVoice(uid domain.UserID) {
	o.leaveVoice(uid)
}

func (o *Orchestrator) leaveVoice(uid domain.UserID) {
	state, ok := o.Voice.Leave(uid)
	if !ok {
		return
	}
	o.afterVacate(state)
}

// afterVacate broadcasts the vacated channel's roster and reaps the channel
// if it is ephemeral and now empty, so an ephemeral channel exists exactly
// while its occupant set is non-empty.
func (o *Orchestrator) afterVacate(state *domain.VoiceState) {
	roster := o.broadcastRoster(state.RoomID, state.ChannelID)
	if len(roster) > 0 {
		return
	}
	ch, ok := o.roomVoiceChannel(state.RoomID, state.ChannelID)
	if !ok || !ch.Ephemeral {
		return
	}
	o.Rooms.DropVoiceChannel(state.RoomID, state.ChannelID)
	o.ToRoom(state.RoomID, map[string]any{
		"type":      protocol.EvChannelDeleted,
		"serverId":  state.RoomID,
		"channelId": state.ChannelID,
	}, "")
}

func (o *Orchestrator) VoiceMute(uid domain.UserID, muted bool) {
	if state, ok := o.Voice.SetMuted(uid, muted); ok {
		o.broadcastRoster(state.RoomID, state.ChannelID)
	}
}

func (o *Orchestrator) VoiceVideo(uid domain.UserID, video bool) {
	if state, ok := o.Voice.SetVideo(uid, video); ok {
		o.broadcastRoster(state.RoomID, state.ChannelID)
	}
}

func (o *Orchestrator) VoiceScreen(uid domain.UserID, screen bool) {
	state, ok := o.Voice.SetScreen(uid, screen)
	if !ok {
		return
	}
	o.broadcastRoster(state.RoomID, state.ChannelID)
	o.ToRoom(state.RoomID, map[string]any{
		"type":   protocol.EvVoiceScreenUpdate,
		"userId": uid,
		"screen": screen,
	}, "")
}

// broadcastRoster sends the channel's full occupant roster to the room.
// Entries are sorted by id; clients derive the negotiation initiator from
// that order (lower id calls, higher id waits), so no extra coordination
// message exists.
func (o *Orchestrator) broadcastRoster(roomID domain.RoomID, chID domain.ChannelID) []protocol.VoiceUser {
	roster := o.rosterView(roomID, chID)
	o.ToRoom(roomID, map[string]any{
		"type":      protocol.EvVoiceStateUpdate,
		"serverId":  roomID,
		"channelId": chID,
		"users":     roster,
	}, "")
	return roster
}

func (o *Orchestrator) rosterView(roomID domain.RoomID, chID domain.ChannelID) []protocol.VoiceUser {
	states := o.Voice.Roster(roomID, chID)
	out := make([]protocol.VoiceUser, 0, len(states))
	for _, state := range states {
		info := o.userInfo(state.UserID)
		if info == nil {
			continue
		}
		out = append(out, protocol.VoiceUser{
			UserInfo: *info,
			Muted:    state.Muted,
			Video:    state.Video,
			Screen:   state.Screen,
		})
	}
	return out
}

func (o *Orchestrator) roomVoiceChannel(roomID domain.RoomID, chID domain.ChannelID) (*domain.Channel, bool) {
	r, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, false
	}
	return r.VoiceChannel(chID)
}
