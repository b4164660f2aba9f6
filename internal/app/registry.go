package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
)

type sessionEntry struct {
	UserID   domain.UserID
	Conn     core.SignalConnection
	JoinedAt time.Time
}

// Registry binds live connections to authenticated identities. A session is
// bound exactly once, after login or register succeeds; an identity may hold
// any number of sessions at a time.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	byUser   map[domain.UserID]map[core.SessionID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		byUser:   make(map[domain.UserID]map[core.SessionID]struct{}),
	}
}

// Bind registers the session under uid. It reports whether this is the
// identity's first live session, i.e. whether the identity just came online.
// Rebinding a live session to another identity removes it from the previous
// identity first; a session references exactly one identity at all times.
func (r *Registry) Bind(sid core.SessionID, uid domain.UserID, conn core.SignalConnection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.sessions[sid]; ok && old.UserID != uid {
		stale := r.byUser[old.UserID]
		delete(stale, sid)
		if len(stale) == 0 {
			delete(r.byUser, old.UserID)
		}
		log.Warn().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(old.UserID)).Msg("rebinding live session")
	}
	r.sessions[sid] = &sessionEntry{UserID: uid, Conn: conn, JoinedAt: time.Now()}
	set, ok := r.byUser[uid]
	if !ok {
		set = make(map[core.SessionID]struct{})
		r.byUser[uid] = set
	}
	first := len(set) == 0
	set[sid] = struct{}{}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(uid)).Bool("first", first).Msg("bound session")
	return first
}

// Unbind forgets the session and reports the identity it belonged to and
// whether it was the identity's last live session.
func (r *Registry) Unbind(sid core.SessionID) (domain.UserID, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return "", false, false
	}
	delete(r.sessions, sid)
	set := r.byUser[e.UserID]
	delete(set, sid)
	last := len(set) == 0
	if last {
		delete(r.byUser, e.UserID)
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(e.UserID)).Bool("last", last).Msg("unbound session")
	return e.UserID, last, true
}

func (r *Registry) UserOf(sid core.SessionID) (domain.UserID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.UserID, true
	}
	return "", false
}

// SessionsOf returns every live connection of the identity, for
// multi-device fan-out.
func (r *Registry) SessionsOf(uid domain.UserID) []core.SignalConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.byUser[uid]
	out := make([]core.SignalConnection, 0, len(set))
	for sid := range set {
		if e, ok := r.sessions[sid]; ok {
			out = append(out, e.Conn)
		}
	}
	return out
}

type connSnap struct {
	UserID domain.UserID
	Conn   core.SignalConnection
}

// All snapshots every live session across identities.
func (r *Registry) All() []connSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]connSnap, 0, len(r.sessions))
	for _, e := range r.sessions {
		out = append(out, connSnap{UserID: e.UserID, Conn: e.Conn})
	}
	return out
}

func (r *Registry) Online(uid domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[uid]) > 0
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
