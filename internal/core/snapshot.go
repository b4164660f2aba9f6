package core

import "github.com/reks-G/Mrdomsetos/internal/domain"

// Snapshot is the durable view of hub state. It is read once at startup and
// written on a fixed interval and at shutdown; live connection and voice
// state is deliberately absent, it does not survive a restart.
type Snapshot struct {
	Accounts  map[string]*domain.User           `json:"accounts"` // keyed by email
	Rooms     map[domain.RoomID]*domain.Room    `json:"rooms"`
	Friends   map[domain.UserID][]domain.UserID `json:"friends"`
	Requests  map[domain.UserID][]domain.UserID `json:"requests"`
	Blocks    map[domain.UserID][]domain.UserID `json:"blocks"`
	DMHistory map[string][]*domain.Message      `json:"dm_history"` // keyed by sorted id pair
	Invites   map[string]domain.RoomID          `json:"invites"`
}

// SnapshotStore is the storage collaborator of the hub.
type SnapshotStore interface {
	LoadSnapshot() (*Snapshot, error)
	SaveSnapshot(*Snapshot) error
	Close() error
}
