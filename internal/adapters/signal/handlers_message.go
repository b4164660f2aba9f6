package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleMessage(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string           `json:"serverId"`
		Channel  string           `json:"channel"`
		Text     string           `json:"text"`
		ReplyTo  *domain.ReplyRef `json:"replyTo"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.SendMessage(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.Channel), p.Text, p.ReplyTo)
}

func (ctl *Controller) handleEditMessage(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		Channel   string `json:"channel"`
		MessageID string `json:"messageId"`
		Text      string `json:"text"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.EditMessage(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.Channel), p.MessageID, p.Text)
}

func (ctl *Controller) handleDeleteMessage(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		Channel   string `json:"channel"`
		MessageID string `json:"messageId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.DeleteMessage(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.Channel), p.MessageID)
}

func (ctl *Controller) handleAddReaction(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		Channel   string `json:"channel"`
		MessageID string `json:"messageId"`
		Emoji     string `json:"emoji"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.AddReaction(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.Channel), p.MessageID, p.Emoji)
}

func (ctl *Controller) handleRemoveReaction(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		Channel   string `json:"channel"`
		MessageID string `json:"messageId"`
		Emoji     string `json:"emoji"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.RemoveReaction(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.Channel), p.MessageID, p.Emoji)
}

func (ctl *Controller) handleDM(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		To   string `json:"to"`
		Text string `json:"text"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.SendDM(uid, conn, domain.UserID(p.To), p.Text)
}

func (ctl *Controller) handleDMHistory(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		WithID string `json:"withId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.DMHistory(uid, conn, domain.UserID(p.WithID))
}
