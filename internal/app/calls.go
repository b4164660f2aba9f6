package app

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

var (
	ErrCalleeBusy = errors.New("callee busy")
	ErrCallerBusy = errors.New("caller already in a call")
	ErrNoCall     = errors.New("no active call")
	ErrWrongPhase = errors.New("call not in expected phase")
)

type callRecord struct {
	peer  domain.UserID
	phase domain.CallPhase
	video bool
	timer *time.Timer // armed on the caller record while Dialing
}

// Calls is the one-to-one call state machine. An identity is Idle unless it
// has a record here; at most one non-Idle call per identity. The ring timer
// is armed when a pair enters Dialing/Ringing and cleared by any
// state-exiting event; on expiry both sides reset and onTimeout(caller,
// callee) fires so the orchestrator can notify a no-answer outcome.
type Calls struct {
	mu          sync.Mutex
	active      map[domain.UserID]*callRecord
	ringTimeout time.Duration
	onTimeout   func(caller, callee domain.UserID)
}

func NewCalls(ringTimeout time.Duration, onTimeout func(caller, callee domain.UserID)) *Calls {
	if onTimeout == nil {
		onTimeout = func(domain.UserID, domain.UserID) {}
	}
	return &Calls{
		active:      make(map[domain.UserID]*callRecord),
		ringTimeout: ringTimeout,
		onTimeout:   onTimeout,
	}
}

// Request starts a call. The callee must be Idle: a busy callee rejects the
// caller immediately without disturbing the callee's active call.
func (c *Calls) Request(caller, callee domain.UserID, video bool) error {
	if caller == callee {
		return ErrCalleeBusy
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[caller]; ok {
		return ErrCallerBusy
	}
	if _, ok := c.active[callee]; ok {
		return ErrCalleeBusy
	}
	rec := &callRecord{peer: callee, phase: domain.CallDialing, video: video}
	rec.timer = time.AfterFunc(c.ringTimeout, func() { c.expire(caller, callee) })
	c.active[caller] = rec
	c.active[callee] = &callRecord{peer: caller, phase: domain.CallRinging, video: video}
	log.Info().Str("module", "app.calls").Str("caller", string(caller)).Str("callee", string(callee)).Msg("call dialing")
	return nil
}

func (c *Calls) expire(caller, callee domain.UserID) {
	c.mu.Lock()
	rec, ok := c.active[caller]
	if !ok || rec.peer != callee || rec.phase != domain.CallDialing {
		c.mu.Unlock()
		return
	}
	c.clearPairLocked(caller, callee)
	c.mu.Unlock()
	log.Info().Str("module", "app.calls").Str("caller", string(caller)).Str("callee", string(callee)).Msg("call timed out")
	c.onTimeout(caller, callee)
}

// Accept moves both sides to Connected and returns the caller.
func (c *Calls) Accept(callee domain.UserID) (domain.UserID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.active[callee]
	if !ok {
		return "", false, ErrNoCall
	}
	if rec.phase != domain.CallRinging {
		return "", false, ErrWrongPhase
	}
	caller := rec.peer
	callerRec := c.active[caller]
	if callerRec == nil {
		// caller vanished mid-ring; treat as ended
		delete(c.active, callee)
		return "", false, ErrNoCall
	}
	stopTimer(callerRec)
	callerRec.phase = domain.CallConnected
	rec.phase = domain.CallConnected
	log.Info().Str("module", "app.calls").Str("caller", string(caller)).Str("callee", string(callee)).Msg("call connected")
	return caller, rec.video, nil
}

// Reject clears both sides and returns the caller to notify.
func (c *Calls) Reject(callee domain.UserID) (domain.UserID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.active[callee]
	if !ok || rec.phase != domain.CallRinging {
		return "", ErrNoCall
	}
	caller := rec.peer
	c.clearPairLocked(caller, callee)
	return caller, nil
}

// End terminates from either side in any live phase; the peer is returned
// so it can be notified regardless of who hung up.
func (c *Calls) End(uid domain.UserID) (domain.UserID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.active[uid]
	if !ok {
		return "", ErrNoCall
	}
	peer := rec.peer
	c.clearPairLocked(uid, peer)
	log.Info().Str("module", "app.calls").Str("user", string(uid)).Str("peer", string(peer)).Msg("call ended")
	return peer, nil
}

// Phase reports the identity's call phase; ok is false when Idle.
func (c *Calls) Phase(uid domain.UserID) (domain.CallPhase, domain.UserID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.active[uid]
	if !ok {
		return 0, "", false
	}
	return rec.phase, rec.peer, true
}

// InCallWith reports whether the two identities share the active call.
func (c *Calls) InCallWith(a, b domain.UserID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.active[a]
	return ok && rec.peer == b
}

func (c *Calls) clearPairLocked(a, b domain.UserID) {
	if rec, ok := c.active[a]; ok {
		stopTimer(rec)
		delete(c.active, a)
	}
	if rec, ok := c.active[b]; ok && rec.peer == a {
		stopTimer(rec)
		delete(c.active, b)
	}
}

func stopTimer(rec *callRecord) {
	if rec.timer != nil {
		rec.timer.Stop()
		rec.timer = nil
	}
}
