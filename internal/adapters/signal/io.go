package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, conn *WsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case frame, ok := <-conn.send:
			_ = conn.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, sid core.SessionID, conn *WsConn) {
	defer func() {
		ctl.Orch.OnClose(sid)
		conn.Close()
	}()

	readTimeout := ctl.PingPeriod * 2
	_ = conn.conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		_, raw, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("ws read")
			}
			return
		}
		ctl.dispatch(sid, conn, raw)
	}
}

// dispatch routes one inbound envelope. A malformed or unknown envelope is
// logged and dropped; the connection stays up.
func (ctl *Controller) dispatch(sid core.SessionID, conn *WsConn, raw []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad envelope")
		return
	}

	switch env.Type {
	case protocol.EvPing:
		_ = conn.TrySend(mustFrame(map[string]string{"type": protocol.EvPong}))
		return
	case protocol.EvRegister, protocol.EvLogin:
		// a bound session stays bound; re-auth on a live socket is ignored
		if _, bound := ctl.Orch.Registry.UserOf(sid); bound {
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("re-auth on bound session dropped")
			return
		}
		if env.Type == protocol.EvRegister {
			ctl.handleRegister(sid, conn, raw)
		} else {
			ctl.handleLogin(sid, conn, raw)
		}
		return
	}

	uid, ok := ctl.Orch.Registry.UserOf(sid)
	if !ok {
		// everything below requires an authenticated session
		log.Debug().Str("module", "signal").Str("type", env.Type).Msg("unauthenticated frame dropped")
		return
	}

	switch env.Type {
	case protocol.EvUpdateProfile:
		ctl.handleUpdateProfile(uid, conn, raw)
	case protocol.EvCreateServer:
		ctl.handleCreateServer(uid, conn, raw)
	case protocol.EvUpdateServer:
		ctl.handleUpdateServer(uid, raw)
	case protocol.EvDeleteServer:
		ctl.handleDeleteServer(uid, raw)
	case protocol.EvLeaveServer:
		ctl.handleLeaveServer(uid, conn, raw)
	case protocol.EvKickMember:
		ctl.handleKickMember(uid, raw)
	case protocol.EvCreateChannel:
		ctl.handleCreateChannel(uid, raw)
	case protocol.EvUpdateChannel:
		ctl.handleUpdateChannel(uid, raw)
	case protocol.EvDeleteChannel:
		ctl.handleDeleteChannel(uid, raw)
	case protocol.EvCreateInvite:
		ctl.handleCreateInvite(uid, conn, raw)
	case protocol.EvUseInvite:
		ctl.handleUseInvite(uid, conn, raw)
	case protocol.EvCreateRole:
		ctl.handleCreateRole(uid, raw)
	case protocol.EvDeleteRole:
		ctl.handleDeleteRole(uid, raw)
	case protocol.EvAssignRole:
		ctl.handleAssignRole(uid, raw)
	case protocol.EvServerMembers:
		ctl.handleGetMembers(uid, conn, raw)
	case protocol.EvMessage:
		ctl.handleMessage(uid, raw)
	case protocol.EvEditMessage:
		ctl.handleEditMessage(uid, raw)
	case protocol.EvDeleteMessage:
		ctl.handleDeleteMessage(uid, raw)
	case protocol.EvAddReaction:
		ctl.handleAddReaction(uid, raw)
	case protocol.EvRemoveReaction:
		ctl.handleRemoveReaction(uid, raw)
	case protocol.EvDM:
		ctl.handleDM(uid, conn, raw)
	case protocol.EvGetDMHistory:
		ctl.handleDMHistory(uid, conn, raw)
	case protocol.EvFriendRequest:
		ctl.handleFriendRequest(uid, conn, raw)
	case protocol.EvFriendAccept:
		ctl.handleFriendAccept(uid, conn, raw)
	case protocol.EvFriendReject:
		ctl.handleFriendReject(uid, raw)
	case protocol.EvFriendRemove:
		ctl.handleFriendRemove(uid, conn, raw)
	case protocol.EvGetFriends:
		ctl.Orch.FriendsList(uid, conn)
	case protocol.EvBlockUser:
		ctl.handleBlockUser(uid, conn, raw)
	case protocol.EvUnblockUser:
		ctl.handleUnblockUser(uid, raw)
	case protocol.EvVoiceJoin:
		ctl.handleVoiceJoin(uid, raw)
	case protocol.EvVoiceLeave:
		ctl.Orch.LeaveVoice(uid)
	case protocol.EvVoiceMute:
		ctl.handleVoiceMute(uid, raw)
	case protocol.EvVoiceVideo:
		ctl.handleVoiceVideo(uid, raw)
	case protocol.EvVoiceScreen:
		ctl.handleVoiceScreen(uid, raw)
	case protocol.EvVoiceSignal:
		ctl.handleVoiceSignal(uid, raw)
	case protocol.EvCallRequest:
		ctl.handleCallRequest(uid, conn, raw)
	case protocol.EvCallAccept:
		ctl.Orch.CallAccept(uid)
	case protocol.EvCallReject:
		ctl.Orch.CallReject(uid)
	case protocol.EvCallSignal:
		ctl.handleCallSignal(uid, raw)
	case protocol.EvCallEnd:
		ctl.Orch.CallEnd(uid)
	default:
		log.Debug().Str("module", "signal").Str("type", env.Type).Msg("unknown envelope dropped")
	}
}

func mustFrame(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("marshal frame")
		return core.Frame("{}")
	}
	return core.Frame(b)
}
