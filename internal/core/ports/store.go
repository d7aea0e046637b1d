package ports

import (
	"context"

	"github.com/finledger/ledger-api/internal/core/domain"
)

// SnapshotStore is the persistence boundary for the ledger aggregate.
//
// Load never fails: a backend that cannot produce a snapshot (missing file,
// corrupt content, unreachable database) returns an empty one. That
// recover-to-empty policy is deliberate and documented, not accidental data
// loss handling.
//
// Save rewrites the whole snapshot. There is no locking across the
// load→mutate→save cycle, so two interleaved writers can lose an update;
// a hardened backend slots in behind this interface without touching the
// services.
type SnapshotStore interface {
	Load(ctx context.Context) domain.Snapshot
	Save(ctx context.Context, snap domain.Snapshot) error
}
