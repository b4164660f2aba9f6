// Package domain contains the hub entities, just meta-data without
// transport or lifecycle logic.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLen         = 36
	MaxCustomStatusLen = 128
)

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
	ErrBadStatus   = errors.New("unknown status")
)

type UserID string

type Status string

const (
	StatusOnline    Status = "online"
	StatusIdle      Status = "idle"
	StatusDND       Status = "dnd"
	StatusInvisible Status = "invisible"
	StatusOffline   Status = "offline"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusOnline, StatusIdle, StatusDND, StatusInvisible, StatusOffline:
		return true
	}
	return false
}

// User is a registered account. PasswordHash is opaque to the hub; hashing
// and verification live behind core.PasswordHasher.
type User struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar,omitempty"`
	Status       Status    `json:"status"`
	CustomStatus string    `json:"custom_status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUser(email, passwordHash, name string) (*User, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &User{
		ID:           UserID("user_" + uuid.NewString()),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Status:       StatusOnline,
		CreatedAt:    time.Now(),
	}, nil
}

func (u *User) SetName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	u.Name = name
	return nil
}
