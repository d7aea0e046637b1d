// Package store provides the snapshot persistence backends. The file store
// is the default: one human-readable JSON document rewritten in full on
// every mutation. The mongo store offers the same whole-aggregate contract
// on top of a database for deployments that outgrow the flat file.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/finledger/ledger-api/internal/api/metrics"
	"github.com/finledger/ledger-api/internal/core/domain"
)

// FileStore persists the snapshot as a single JSON file.
//
// Load recovers to an empty snapshot on any failure — missing file,
// unreadable file, malformed JSON. Save overwrites the whole file with no
// partial-write protection beyond the underlying write call and no locking
// against concurrent writers. Both are documented properties of the
// design, not accidents.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Load(_ context.Context) domain.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("snapshot unreadable, starting empty")
		}
		return domain.NewSnapshot()
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("snapshot malformed, starting empty")
		return domain.NewSnapshot()
	}

	// A hand-edited file may omit either map.
	if snap.Users == nil {
		snap.Users = make(map[string]*domain.User)
	}
	if snap.Sessions == nil {
		snap.Sessions = make(map[string]string)
	}
	return snap
}

func (s *FileStore) Save(_ context.Context, snap domain.Snapshot) error {
	timer := prometheus.NewTimer(metrics.SnapshotSaveDuration.WithLabelValues("file"))
	defer timer.ObserveDuration()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Dir returns the directory holding the snapshot file, used by the
// readiness probe.
func (s *FileStore) Dir() string {
	return filepath.Dir(s.path)
}
