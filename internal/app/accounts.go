package app

import (
	"errors"
	"strings"
	"sync"

	"github.com/reks-G/Mrdomsetos/internal/core"
	"github.com/reks-G/Mrdomsetos/internal/domain"
)

var (
	ErrEmailTaken      = errors.New("email taken")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrAccountNotFound = errors.New("account not found")
)

// Accounts is the identity directory: it resolves stable ids to profiles and
// owns registration and login. Hashing goes through the injected
// collaborator, never inline.
type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	byID    map[domain.UserID]*domain.User
	hasher  core.PasswordHasher
}

func NewAccounts(hasher core.PasswordHasher) *Accounts {
	return &Accounts{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[domain.UserID]*domain.User),
		hasher:  hasher,
	}
}

func (a *Accounts) Register(email, password, name string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := domain.NewUser(email, hash, name)
	if err != nil {
		return nil, err
	}
	a.byEmail[email] = u
	a.byID[u.ID] = u
	return u, nil
}

func (a *Accounts) Login(email, password string) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	u, ok := a.byEmail[email]
	if !ok || !a.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func (a *Accounts) ByID(id domain.UserID) (*domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	u, ok := a.byID[id]
	return u, ok
}

func (a *Accounts) ByName(name string) (*domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, u := range a.byID {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return nil, false
}

// UpdateProfile applies the non-empty fields. Avatar is a pointer so the
// caller can distinguish "clear the avatar" from "leave it alone".
func (a *Accounts) UpdateProfile(id domain.UserID, name string, avatar *string, status domain.Status, customStatus *string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if name != "" {
		if err := u.SetName(name); err != nil {
			return nil, err
		}
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	if status != "" {
		if !domain.ValidStatus(status) {
			return nil, domain.ErrBadStatus
		}
		u.Status = status
	}
	if customStatus != nil {
		cs := *customStatus
		if len(cs) > domain.MaxCustomStatusLen {
			cs = cs[:domain.MaxCustomStatusLen]
		}
		u.CustomStatus = cs
	}
	return u, nil
}

// Export and Restore move account state across snapshots.
func (a *Accounts) Export() map[string]*domain.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]*domain.User, len(a.byEmail))
	for email, u := range a.byEmail {
		out[email] = u
	}
	return out
}

func (a *Accounts) Restore(accounts map[string]*domain.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for email, u := range accounts {
		a.byEmail[email] = u
		a.byID[u.ID] = u
	}
}
