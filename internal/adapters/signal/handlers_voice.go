package signal

import (
	"encoding/json"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

func (ctl *Controller) handleVoiceJoin(uid domain.UserID, raw []byte) {
	var p struct {
		ServerID  string `json:"serverId"`
		ChannelID string `json:"channelId"`
		Ephemeral bool   `json:"ephemeral"`
		Name      string `json:"name"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.JoinVoice(uid, domain.RoomID(p.ServerID), domain.ChannelID(p.ChannelID), p.Ephemeral, p.Name)
}

func (ctl *Controller) handleVoiceMute(uid domain.UserID, raw []byte) {
	var p struct {
		Muted bool `json:"muted"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.VoiceMute(uid, p.Muted)
}

func (ctl *Controller) handleVoiceVideo(uid domain.UserID, raw []byte) {
	var p struct {
		Video bool `json:"video"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.VoiceVideo(uid, p.Video)
}

func (ctl *Controller) handleVoiceScreen(uid domain.UserID, raw []byte) {
	var p struct {
		Screen bool `json:"screen"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.VoiceScreen(uid, p.Screen)
}

// Voice signaling payloads are relayed verbatim; the hub never inspects SDP
// or candidate contents.
func (ctl *Controller) handleVoiceSignal(uid domain.UserID, raw []byte) {
	var p struct {
		To     string          `json:"to"`
		Signal json.RawMessage `json:"signal"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return
	}
	ctl.Orch.VoiceSignal(uid, domain.UserID(p.To), p.Signal)
}
