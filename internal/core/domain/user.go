package domain

// TransactionType distinguishes the two movements a ledger records.
type TransactionType string

const (
	TxDeposit  TransactionType = "deposit"
	TxWithdraw TransactionType = "withdraw"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TxDeposit || t == TxWithdraw
}

// Transaction is a single immutable ledger entry. Entries are appended in
// the order they are applied; that insertion order is the chronological
// order of the account history.
type Transaction struct {
	Type   TransactionType `json:"type" bson:"type"`
	Amount float64         `json:"amount" bson:"amount"`
	// Date is an ISO-8601 timestamp captured at the moment the
	// transaction was applied, using the server clock.
	Date string `json:"date" bson:"date"`
}

// User models a registered account holder.
//
// The password is stored verbatim and compared with plain string equality.
// Hardening this to a salted hash is a known follow-up that must not change
// the register/login contract.
type User struct {
	Username     string        `json:"username" bson:"username"`
	Password     string        `json:"password" bson:"password"`
	Balance      float64       `json:"balance" bson:"balance"`
	Transactions []Transaction `json:"transactions" bson:"transactions"`
}
