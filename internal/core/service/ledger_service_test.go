package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finledger/ledger-api/internal/core/domain"
	"github.com/finledger/ledger-api/internal/core/ports"
)

func newLedgerFixture(t *testing.T, usernames ...string) (*stubStore, *LedgerService) {
	t.Helper()
	st := newStubStore()
	for _, name := range usernames {
		st.snap.Users[name] = &domain.User{
			Username:     name,
			Password:     "pw",
			Transactions: []domain.Transaction{},
		}
	}
	return st, NewLedgerService(st, zerolog.Nop())
}

func TestLedgerService_Account(t *testing.T) {
	st, svc := newLedgerFixture(t, "alice")
	st.snap.Users["alice"].Balance = 42.5

	account, err := svc.Account(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Account returned error: %v", err)
	}
	if account.Username != "alice" || account.Balance != 42.5 {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.Account(context.Background(), "nobody"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown user, got %v", err)
	}
}

func TestLedgerService_Apply_BalanceTracksSignedSum(t *testing.T) {
	_, svc := newLedgerFixture(t, "alice")
	ctx := context.Background()

	steps := []struct {
		txType domain.TransactionType
		amount float64
		want   float64
	}{
		{domain.TxDeposit, 50, 50},
		{domain.TxDeposit, 25.5, 75.5},
		{domain.TxWithdraw, 20, 55.5},
		{domain.TxDeposit, 4.5, 60},
		{domain.TxWithdraw, 60, 0},
	}
	for i, step := range steps {
		balance, err := svc.Apply(ctx, "alice", step.txType, step.amount)
		if err != nil {
			t.Fatalf("step %d: Apply returned error: %v", i, err)
		}
		if balance != step.want {
			t.Fatalf("step %d: balance = %v, want %v", i, balance, step.want)
		}
	}

	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("Transactions returned error: %v", err)
	}
	if len(txs) != len(steps) {
		t.Fatalf("recorded %d transactions, want %d", len(txs), len(steps))
	}
	for i, tx := range txs {
		if tx.Type != steps[i].txType || tx.Amount != steps[i].amount {
			t.Fatalf("transaction %d = %+v, want {%s %v}", i, tx, steps[i].txType, steps[i].amount)
		}
		if _, err := time.Parse(time.RFC3339, tx.Date); err != nil {
			t.Fatalf("transaction %d date %q is not RFC3339: %v", i, tx.Date, err)
		}
	}
}

func TestLedgerService_Apply_InsufficientFunds(t *testing.T) {
	st, svc := newLedgerFixture(t, "alice")
	ctx := context.Background()

	if _, err := svc.Apply(ctx, "alice", domain.TxDeposit, 50); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	savesBefore := st.saves

	if _, err := svc.Apply(ctx, "alice", domain.TxWithdraw, 70); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if st.saves != savesBefore {
		t.Fatalf("rejected withdrawal persisted the snapshot")
	}
	if got := st.snap.Users["alice"].Balance; got != 50 {
		t.Fatalf("balance after rejected withdrawal = %v, want 50", got)
	}
	if got := len(st.snap.Users["alice"].Transactions); got != 1 {
		t.Fatalf("rejected withdrawal recorded a transaction (count=%d)", got)
	}
}

func TestLedgerService_Apply_InvalidAmounts(t *testing.T) {
	st, svc := newLedgerFixture(t, "alice")
	ctx := context.Background()

	for _, amount := range []float64{0, -1, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := svc.Apply(ctx, "alice", domain.TxDeposit, amount); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("amount %v: expected ErrInvalidInput, got %v", amount, err)
		}
	}
	if st.saves != 0 {
		t.Fatalf("invalid amounts persisted the snapshot")
	}
}

func TestLedgerService_Apply_InvalidType(t *testing.T) {
	_, svc := newLedgerFixture(t, "alice")

	if _, err := svc.Apply(context.Background(), "alice", domain.TransactionType("transfer"), 10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}
}

func TestLedgerService_Apply_UnknownUser(t *testing.T) {
	_, svc := newLedgerFixture(t)

	if _, err := svc.Apply(context.Background(), "ghost", domain.TxDeposit, 10); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLedgerService_Apply_SaveFailureSurfaces(t *testing.T) {
	st, svc := newLedgerFixture(t, "alice")
	st.saveErr = errors.New("disk full")

	_, err := svc.Apply(context.Background(), "alice", domain.TxDeposit, 10)
	if err == nil {
		t.Fatalf("expected save failure to surface")
	}
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrInvalidToken, domain.ErrInsufficientFunds} {
		if errors.Is(err, sentinel) {
			t.Fatalf("save failure mapped to domain error %v", sentinel)
		}
	}
}

func TestLedgerService_Transactions_ChronologicalOrder(t *testing.T) {
	_, svc := newLedgerFixture(t, "alice")
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	_, _ = svc.Apply(ctx, "alice", domain.TxDeposit, 50)
	_, _ = svc.Apply(ctx, "alice", domain.TxWithdraw, 20)

	txs, err := svc.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("Transactions returned error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Type != domain.TxDeposit || txs[1].Type != domain.TxWithdraw {
		t.Fatalf("history out of order: %+v", txs)
	}
	if !(txs[0].Date < txs[1].Date) {
		t.Fatalf("dates not increasing: %q then %q", txs[0].Date, txs[1].Date)
	}
}

// Compile-time interface checks.
var (
	_ ports.LedgerService = (*LedgerService)(nil)
	_ ports.AuthService   = (*AuthService)(nil)
)
