package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleCallRequest(uid domain.UserID, conn *WsConn, raw []byte) {
	var p struct {
		To        string `json:"to"`
		WithVideo bool   `json:"withVideo"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CallRequest(uid, conn, domain.UserID(p.To), p.WithVideo)
}

func (ctl *Controller) handleCallSignal(uid domain.UserID, raw []byte) {
	var p struct {
		To     string          `json:"to"`
		Signal json.RawMessage `json:"signal"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.CallSignal(uid, domain.UserID(p.To), p.Signal)
}
