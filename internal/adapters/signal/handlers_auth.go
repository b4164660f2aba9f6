package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleRegister(sid core.SessionID, conn *WsConn, raw []byte) {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.Register(sid, conn, p.Email, p.Password, p.Name)
}

func (ctl *Controller) handleLogin(sid core.SessionID, conn *WsConn, raw []byte) {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.Login(sid, conn, p.Email, p.Password)
}

func (ctl *Controller) handleUpdateProfile(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		Name         string  `json:"name"`
		Avatar       *string `json:"avatar"`
		Status       string  `json:"status"`
		CustomStatus *string `json:"customStatus"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.UpdateProfile(uid, conn, p.Name, p.Avatar, domain.Status(p.Status), p.CustomStatus)
}
