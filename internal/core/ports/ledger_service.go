package ports

import (
	"context"

	"github.com/finledger/ledger-api/internal/core/domain"
)

// Account is the balance view returned to an authenticated caller.
type Account struct {
	Username string
	Balance  float64
}

// LedgerService implements the per-user balance and history operations.
type LedgerService interface {
	// Account returns the current balance for username.
	Account(ctx context.Context, username string) (Account, error)
	// Apply validates and applies a single deposit or withdrawal and
	// returns the resulting balance. Both movement kinds go through this
	// one method so the balance mutation and its invariant checks live in
	// exactly one place.
	Apply(ctx context.Context, username string, txType domain.TransactionType, amount float64) (float64, error)
	// Transactions returns the user's history in chronological order.
	Transactions(ctx context.Context, username string) ([]domain.Transaction, error)
}
