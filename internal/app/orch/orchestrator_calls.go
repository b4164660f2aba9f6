package orch

import (
	"encoding/json"
	"errors"

	"github.com/reks-G/Mrdomsetos/internal/app"
	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
	"github.com/reks-G/Mrdomsetos/pkg/protocol"
)

// CallRequest rings the callee. A busy callee answers the caller with an
// immediate busy rejection and is not disturbed; a busy caller is an
// invalid state and the request is ignored.
func (o *Orchestrator) CallRequest(uid domain.UserID, conn core.SignalConnection, to domain.UserID, withVideo bool) {
	if _, ok := o.Accounts.ByID(to); !ok {
		return
	}
	if o.Friends.IsBlocked(uid, to) || o.Friends.IsBlocked(to, uid) {
		o.send(conn, map[string]any{
			"type":   protocol.EvCallRejected,
			"from":   to,
			"reason": protocol.RejectReasonDeclined,
		})
		return
	}
	if err := o.Calls.Request(uid, to, withVideo); err != nil {
		if errors.Is(err, app.ErrCalleeBusy) {
			o.send(conn, map[string]any{
				"type":   protocol.EvCallRejected,
				"from":   to,
				"reason": protocol.RejectReasonBusy,
			})
		}
		return
	}
	o.ToUser(to, map[string]any{
		"type":      protocol.EvCallIncoming,
		"from":      uid,
		"withVideo": withVideo,
	})
}

func (o *Orchestrator) CallAccept(uid domain.UserID) {
	caller, withVideo, err := o.Calls.Accept(uid)
	if err != nil {
		return
	}
	o.ToUser(caller, map[string]any{
		"type":      protocol.EvCallAccepted,
		"from":      uid,
		"withVideo": withVideo,
	})
}

func (o *Orchestrator) CallReject(uid domain.UserID) {
	caller, err := o.Calls.Reject(uid)
	if err != nil {
		return
	}
	o.ToUser(caller, map[string]any{
		"type":   protocol.EvCallRejected,
		"from":   uid,
		"reason": protocol.RejectReasonDeclined,
	})
}

// CallSignal relays a negotiation envelope, but only within the live call
// pair; stray signals from third parties are dropped.
func (o *Orchestrator) CallSignal(uid domain.UserID, to domain.UserID, signal json.RawMessage) {
	if !o.Calls.InCallWith(uid, to) {
		return
	}
	o.ToUser(to, map[string]any{
		"type":   protocol.EvCallSignal,
		"from":   uid,
		"signal": signal,
	})
}

// CallEnd terminates from either side; the peer is notified regardless of
// which side hung up.
func (o *Orchestrator) CallEnd(uid domain.UserID) {
	peer, err := o.Calls.End(uid)
	if err != nil {
		return
	}
	o.ToUser(peer, map[string]any{"type": protocol.EvCallEnded, "from": uid})
}
