package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/finledger/ledger-api/internal/api/metrics"
	"github.com/finledger/ledger-api/internal/core/domain"
	"github.com/finledger/ledger-api/internal/core/ports"
)

// LedgerService implements balance queries and the deposit/withdraw
// operation over the snapshot store. Every call reloads the snapshot from
// the store; nothing is cached across requests.
type LedgerService struct {
	store  ports.SnapshotStore
	logger zerolog.Logger
	// now is the transaction clock, swappable in tests.
	now func() time.Time
}

func NewLedgerService(store ports.SnapshotStore, logger zerolog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger, now: time.Now}
}

func (s *LedgerService) Account(ctx context.Context, username string) (ports.Account, error) {
	snap := s.store.Load(ctx)
	user, ok := snap.Users[username]
	if !ok {
		return ports.Account{}, domain.ErrInvalidToken
	}
	return ports.Account{Username: user.Username, Balance: user.Balance}, nil
}

// Apply is the single mutation path for both deposits and withdrawals.
// Invariants enforced here:
//   - amount is finite and strictly positive
//   - the balance never goes negative; a withdrawal that would overdraw is
//     rejected without recording a transaction
//   - a successful call appends exactly one transaction, stamped with the
//     server clock at apply time
func (s *LedgerService) Apply(ctx context.Context, username string, txType domain.TransactionType, amount float64) (float64, error) {
	if !txType.Valid() {
		return 0, domain.ErrInvalidInput
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, domain.ErrInvalidInput
	}

	snap := s.store.Load(ctx)
	user, ok := snap.Users[username]
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	if txType == domain.TxWithdraw && amount > user.Balance {
		metrics.TransactionsRejectedTotal.WithLabelValues("insufficient_funds").Inc()
		return 0, domain.ErrInsufficientFunds
	}

	if txType == domain.TxDeposit {
		user.Balance += amount
	} else {
		user.Balance -= amount
	}
	user.Transactions = append(user.Transactions, domain.Transaction{
		Type:   txType,
		Amount: amount,
		Date:   s.now().UTC().Format(time.RFC3339),
	})

	if err := s.store.Save(ctx, snap); err != nil {
		return 0, fmt.Errorf("persist transaction: %w", err)
	}

	metrics.TransactionsTotal.WithLabelValues(string(txType)).Inc()
	s.logger.Info().
		Str("username", username).
		Str("type", string(txType)).
		Float64("amount", amount).
		Float64("balance", user.Balance).
		Msg("transaction applied")

	return user.Balance, nil
}

func (s *LedgerService) Transactions(ctx context.Context, username string) ([]domain.Transaction, error) {
	snap := s.store.Load(ctx)
	user, ok := snap.Users[username]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	out := make([]domain.Transaction, len(user.Transactions))
	copy(out, user.Transactions)
	return out, nil
}
