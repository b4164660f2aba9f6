package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleCreateServer(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CreateServer(uid, conn, p.Name, p.Icon)
}

func (ctl *Controller) handleUpdateServer(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string  `json:"serverId"`
		Name     string  `json:"name"`
		Icon     *string `json:"icon"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	icon := ""
	if p.Icon != nil {
		icon = *p.Icon
	}
	ctl.Orch.UpdateServer(uid, domain.RoomID(p.ServerID), p.Name, icon, p.Icon != nil)
}

func (ctl *Controller) handleDeleteServer(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.DeleteServer(uid, domain.RoomID(p.ServerID))
}

func (ctl *Controller) handleLeaveServer(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.LeaveServer(uid, conn, domain.RoomID(p.ServerID))
}

func (ctl *Controller) handleKickMember(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
		UserID   string `json:"userId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.KickMember(uid, domain.RoomID(p.ServerID), domain.UserID(p.UserID))
}

func (ctl *Controller) handleCreateChannel(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
		Name     string `json:"name"`
		Voice    bool   `json:"voice"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CreateChannel(uid, domain.RoomID(p.ServerID), p.Name, p.Voice)
}

func (ctl *Controller) handleUpdateChannel(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		ChannelID string `json:"channelId"`
		Name      string `json:"name"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.UpdateChannel(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.ChannelID), p.Name)
}

func (ctl *Controller) handleDeleteChannel(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		ChannelID string `json:"channelId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.DeleteChannel(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.ChannelID))
}

func (ctl *Controller) handleCreateInvite(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CreateInvite(uid, conn, domain.RoomID(p.ServerID))
}

func (ctl *Controller) handleUseInvite(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		Code string `json:"code"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.UseInvite(uid, conn, p.Code)
}

func (ctl *Controller) handleCreateRole(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID    string   `json:"serverId"`
		Name        string   `json:"name"`
		Color       string   `json:"color"`
		Position    int      `json:"position"`
		Hoist       bool     `json:"hoist"`
		Permissions []string `json:"permissions"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CreateRole(uid, domain.RoomID(p.ServerID), p.Name, p.Color, p.Position, p.Hoist, p.Permissions)
}

func (ctl *Controller) handleDeleteRole(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
		RoleID   string `json:"roleId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.DeleteRole(uid, domain.RoomID(p.ServerID), domain.RoleID(p.RoleID))
}

func (ctl *Controller) handleAssignRole(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
		UserID   string `json:"userId"`
		RoleID   string `json:"roleId"`
		Add      bool   `json:"add"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.AssignRole(uid, domain.RoomID(p.ServerID), domain.UserID(p.UserID), domain.RoleID(p.RoleID), p.Add)
}

func (ctl *Controller) handleGetMembers(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		ServerID string `json:"serverId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.ServerMembers(uid, conn, domain.RoomID(p.ServerID))
}
