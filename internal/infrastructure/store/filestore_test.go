package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finledger/ledger-api/internal/core/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := NewFileStore(path, zerolog.Nop())
	ctx := context.Background()

	snap := domain.NewSnapshot()
	snap.Users["alice"] = &domain.User{
		Username: "alice",
		Password: "p1",
		Balance:  30,
		Transactions: []domain.Transaction{
			{Type: domain.TxDeposit, Amount: 50, Date: "2025-03-01T12:00:01Z"},
			{Type: domain.TxWithdraw, Amount: 20, Date: "2025-03-01T12:00:02Z"},
		},
	}
	snap.Sessions["tok123"] = "alice"

	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := s.Load(ctx)
	user, ok := loaded.Users["alice"]
	if !ok {
		t.Fatalf("user missing after round trip")
	}
	if user.Password != "p1" || user.Balance != 30 {
		t.Fatalf("user fields lost: %+v", user)
	}
	if len(user.Transactions) != 2 ||
		user.Transactions[0].Type != domain.TxDeposit ||
		user.Transactions[1].Type != domain.TxWithdraw {
		t.Fatalf("transactions lost or reordered: %+v", user.Transactions)
	}
	if loaded.Sessions["tok123"] != "alice" {
		t.Fatalf("sessions lost: %+v", loaded.Sessions)
	}
}

func TestFileStore_LoadMissingFileRecoversEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "ledger.json"), zerolog.Nop())

	snap := s.Load(context.Background())
	if snap.Users == nil || snap.Sessions == nil {
		t.Fatalf("recovered snapshot has nil maps")
	}
	if len(snap.Users) != 0 || len(snap.Sessions) != 0 {
		t.Fatalf("recovered snapshot not empty: %+v", snap)
	}
}

// Recover-to-empty on corrupt content is documented behavior of the store,
// not an error path: the service keeps running with a fresh ledger.
func TestFileStore_LoadCorruptFileRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := NewFileStore(path, zerolog.Nop())

	snap := s.Load(context.Background())
	if len(snap.Users) != 0 || len(snap.Sessions) != 0 {
		t.Fatalf("corrupt file did not recover to empty: %+v", snap)
	}
}

func TestFileStore_LoadPartialDocumentAllocatesMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte(`{"users":{}}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := NewFileStore(path, zerolog.Nop())

	snap := s.Load(context.Background())
	if snap.Sessions == nil {
		t.Fatalf("missing sessions map not allocated")
	}
}

func TestFileStore_SaveOverwritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := NewFileStore(path, zerolog.Nop())
	ctx := context.Background()

	first := domain.NewSnapshot()
	first.Users["alice"] = &domain.User{Username: "alice", Password: "p1"}
	first.Users["bob"] = &domain.User{Username: "bob", Password: "p2"}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := domain.NewSnapshot()
	second.Users["carol"] = &domain.User{Username: "carol", Password: "p3"}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded := s.Load(ctx)
	if len(loaded.Users) != 1 {
		t.Fatalf("old users survived the rewrite: %+v", loaded.Users)
	}
	if _, ok := loaded.Users["carol"]; !ok {
		t.Fatalf("new user missing after rewrite")
	}
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.json")
	s := NewFileStore(path, zerolog.Nop())

	if err := s.Save(context.Background(), domain.NewSnapshot()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created: %v", err)
	}
}
