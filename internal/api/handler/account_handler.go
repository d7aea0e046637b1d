package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finledger/ledger-api/internal/core/domain"
	"github.com/finledger/ledger-api/internal/core/ports"
)

// AccountHandler handles the authenticated balance and history routes.
type AccountHandler struct {
	ledger ports.LedgerService
}

func NewAccountHandler(ledger ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// Account handles GET /api/account.
//
// @Summary      Get the authenticated user's balance
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/account [get]
func (h *AccountHandler) Account(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	account, err := h.ledger.Account(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse{
		Balance:  account.Balance,
		Username: account.Username,
	})
}

// Deposit handles POST /api/deposit.
//
// @Summary      Deposit funds
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      amountRequest  true  "Amount to deposit"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	return h.apply(c, domain.TxDeposit)
}

// Withdraw handles POST /api/withdraw.
//
// @Summary      Withdraw funds
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      amountRequest  true  "Amount to withdraw"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/withdraw [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	return h.apply(c, domain.TxWithdraw)
}

// apply is the shared deposit/withdraw path; the movement kind is the only
// difference between the two routes.
func (h *AccountHandler) apply(c echo.Context, txType domain.TransactionType) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.ledger.Apply(c.Request().Context(), username, txType, req.Amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// Transactions handles GET /api/transactions. History is returned in
// stored order, oldest first; display order is the client's concern.
//
// @Summary      List the authenticated user's transactions
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transactionsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/transactions [get]
func (h *AccountHandler) Transactions(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	txs, err := h.ledger.Transactions(c.Request().Context(), username)
	if err != nil {
		return err
	}

	items := make([]transactionItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, transactionItem{
			Type:   string(tx.Type),
			Amount: tx.Amount,
			Date:   tx.Date,
		})
	}

	return c.JSON(http.StatusOK, transactionsResponse{Transactions: items})
}
