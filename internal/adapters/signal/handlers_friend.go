package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleFriendRequest(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.FriendRequest(uid, conn, p.Name)
}

func (ctl *Controller) handleFriendAccept(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		From string `json:"from"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.FriendAccept(uid, conn, domain.UserID(p.From))
}

func (ctl *Controller) handleFriendReject(uid domain.UserID, raw []byte) {
	var p struct {
		From string `json:"from"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.FriendReject(uid, domain.UserID(p.From))
}

func (ctl *Controller) handleFriendRemove(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		UserID string `json:"userId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.FriendRemove(uid, conn, domain.UserID(p.UserID))
}

func (ctl *Controller) handleBlockUser(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		UserID string `json:"userId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.BlockUser(uid, conn, domain.UserID(p.UserID))
}

func (ctl *Controller) handleUnblockUser(uid domain.UserID, raw []byte) {
	var p struct {
		UserID string `json:"userId"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.UnblockUser(uid, domain.UserID(p.UserID))
}
