package app

import (
	"errors"
	"sync"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

var (
	ErrSelfFriend     = errors.New("cannot friend yourself")
	ErrAlreadyFriends = errors.New("already friends")
	ErrNoRequest      = errors.New("no pending request")
	ErrBlocked        = errors.New("blocked")
)

// Friends owns the friendship graph: symmetric friend edges, one-directional
// pending requests (keyed by the receiving side) and one-directional blocks.
type Friends struct {
	mu       sync.RWMutex
	friends  map[domain.UserID]map[domain.UserID]struct{}
	requests map[domain.UserID]map[domain.UserID]struct{}
	blocks   map[domain.UserID]map[domain.UserID]struct{}
}

func NewFriends() *Friends {
	return &Friends{
		friends:  make(map[domain.UserID]map[domain.UserID]struct{}),
		requests: make(map[domain.UserID]map[domain.UserID]struct{}),
		blocks:   make(map[domain.UserID]map[domain.UserID]struct{}),
	}
}

// Request records a pending request from `from` toward `to`. A block in
// either direction suppresses it.
func (f *Friends) Request(from, to domain.UserID) error {
	if from == to {
		return ErrSelfFriend
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasEdge(f.blocks, to, from) || f.hasEdge(f.blocks, from, to) {
		return ErrBlocked
	}
	if f.hasEdge(f.friends, from, to) {
		return ErrAlreadyFriends
	}
	f.addEdge(f.requests, to, from)
	return nil
}

// Accept turns the pending request into a symmetric friend edge.
func (f *Friends) Accept(uid, from domain.UserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasEdge(f.requests, uid, from) {
		return ErrNoRequest
	}
	f.delEdge(f.requests, uid, from)
	f.addEdge(f.friends, uid, from)
	f.addEdge(f.friends, from, uid)
	return nil
}

func (f *Friends) Reject(uid, from domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delEdge(f.requests, uid, from)
}

// Remove severs the friend edge from both identities in one operation, no
// matter which side asked.
func (f *Friends) Remove(a, b domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delEdge(f.friends, a, b)
	f.delEdge(f.friends, b, a)
}

// Block records a block edge. Blocking severs any friendship and clears the
// blocked identity's pending request; future requests are refused while the
// edge exists.
func (f *Friends) Block(uid, target domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addEdge(f.blocks, uid, target)
	f.delEdge(f.friends, uid, target)
	f.delEdge(f.friends, target, uid)
	f.delEdge(f.requests, uid, target)
	f.delEdge(f.requests, target, uid)
}

func (f *Friends) Unblock(uid, target domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delEdge(f.blocks, uid, target)
}

func (f *Friends) IsBlocked(uid, by domain.UserID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hasEdge(f.blocks, by, uid)
}

func (f *Friends) AreFriends(a, b domain.UserID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hasEdge(f.friends, a, b)
}

func (f *Friends) Of(uid domain.UserID) []domain.UserID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return keys(f.friends[uid])
}

func (f *Friends) PendingFor(uid domain.UserID) []domain.UserID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return keys(f.requests[uid])
}

func (f *Friends) Export() (friends, requests, blocks map[domain.UserID][]domain.UserID) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return exportEdges(f.friends), exportEdges(f.requests), exportEdges(f.blocks)
}

func (f *Friends) Restore(friends, requests, blocks map[domain.UserID][]domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	restoreEdges(f.friends, friends)
	restoreEdges(f.requests, requests)
	restoreEdges(f.blocks, blocks)
}

func (f *Friends) hasEdge(m map[domain.UserID]map[domain.UserID]struct{}, from, to domain.UserID) bool {
	_, ok := m[from][to]
	return ok
}

func (f *Friends) addEdge(m map[domain.UserID]map[domain.UserID]struct{}, from, to domain.UserID) {
	set, ok := m[from]
	if !ok {
		set = make(map[domain.UserID]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

func (f *Friends) delEdge(m map[domain.UserID]map[domain.UserID]struct{}, from, to domain.UserID) {
	if set, ok := m[from]; ok {
		delete(set, to)
		if len(set) == 0 {
			delete(m, from)
		}
	}
}

func keys(set map[domain.UserID]struct{}) []domain.UserID {
	out := make([]domain.UserID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func exportEdges(m map[domain.UserID]map[domain.UserID]struct{}) map[domain.UserID][]domain.UserID {
	out := make(map[domain.UserID][]domain.UserID, len(m))
	for id, set := range m {
		out[id] = keys(set)
	}
	return out
}

func restoreEdges(dst map[domain.UserID]map[domain.UserID]struct{}, src map[domain.UserID][]domain.UserID) {
	for id, list := range src {
		set := make(map[domain.UserID]struct{}, len(list))
		for _, other := range list {
			set[other] = struct{}{}
		}
		dst[id] = set
	}
}
