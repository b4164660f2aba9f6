// Package storage persists hub snapshots in a pebble key-value store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/core"
)

var snapshotKey = []byte("snapshot/v1")

type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	log.Info().Str("module", "storage").Str("dir", dir).Msg("pebble opened")
	return &PebbleStore{db: db}, nil
}

// LoadSnapshot returns (nil, nil) on a fresh store.
func (s *PebbleStore) LoadSnapshot() (*core.Snapshot, error) {
	val, closer, err := s.db.Get(snapshotKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer closer.Close()

	var snap core.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *PebbleStore) SaveSnapshot(snap *core.Snapshot) error {
	buf, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.db.Set(snapshotKey, buf, pebble.Sync); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
