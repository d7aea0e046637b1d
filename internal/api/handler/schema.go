package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---
// Transport-layer types are intentionally separate from domain types so the
// JSON contract is not coupled to internal changes.

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type amountRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type registerResponse struct {
	Username string `json:"username"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type accountResponse struct {
	Balance  float64 `json:"balance"`
	Username string  `json:"username"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type transactionItem struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type transactionsResponse struct {
	Transactions []transactionItem `json:"transactions"`
}
