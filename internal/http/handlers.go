package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rupya/internal/core"
)

// addTransactionRequest is the wire form of a new ledger entry. Amounts
// arrive as decimal strings ("450", "12.50") and are converted to paise.
type addTransactionRequest struct {
	Amount        string    `json:"amount" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=EXPENSE INCOME TRANSFER REFUND"`
	Category      string    `json:"category"`
	AccountID     string    `json:"accountId" validate:"required"`
	AccountName   string    `json:"accountName" validate:"required"`
	ToAccountID   string    `json:"toAccountId"`
	ToAccountName string    `json:"toAccountName"`
	Date          time.Time `json:"date" validate:"required"`
	Note          string    `json:"note"`
	Merchant      string    `json:"merchant"`
	Cashback      string    `json:"cashback"`
}

type createAccountRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=Bank UPI 'Debit Card' 'Credit Card' Cash Wallet"`
	Balance string `json:"balance"`
}

type renameRequest struct {
	Name string `json:"name" validate:"required"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	typ := core.TransactionType(r.URL.Query().Get("type"))
	if typ != "" && !typ.Valid() {
		writeError(w, http.StatusBadRequest, "unknown transaction type")
		return
	}

	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	filtered := core.FilterTransactions(snap.Transactions, r.URL.Query().Get("q"), typ)
	writeJSON(w, http.StatusOK, map[string]any{"transactions": filtered})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if !s.decode(w, r, &req) {
		return
	}

	amount, err := core.ParseDecimalToPaise(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	var cashback int64
	if req.Cashback != "" {
		cashback, err = core.ParseDecimalToPaise(req.Cashback)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cashback")
			return
		}
	}

	in := core.TransactionInput{
		Amount:        core.Money{Paise: amount},
		Type:          core.TransactionType(req.Type),
		Category:      req.Category,
		AccountID:     req.AccountID,
		AccountName:   req.AccountName,
		ToAccountID:   req.ToAccountID,
		ToAccountName: req.ToAccountName,
		Date:          req.Date,
		Note:          req.Note,
		Merchant:      req.Merchant,
		Cashback:      core.Money{Paise: cashback},
	}
	// Refunds and transfers always land in their fixed category.
	switch in.Type {
	case core.Refund:
		in.Category = core.CategoryRefunds
	case core.Transfer:
		in.Category = core.CategoryTransfer
	}

	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := s.engine.AddTransaction(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.engine.DeleteTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !s.decode(w, r, &req) {
		return
	}

	balance, err := parseSignedPaise(req.Balance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid balance")
		return
	}

	in := core.AccountInput{
		Name:    req.Name,
		Type:    core.AccountType(req.Type),
		Balance: core.Money{Paise: balance},
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := s.engine.CreateAccount(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleRemoveAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RemoveAccount(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenameAccount(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.UpdateAccountName(r.Context(), r.PathValue("id"), req.Name); err != nil {
		if errors.Is(err, core.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to rename account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.MarkAllNotificationsRead(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearAllNotifications(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear notifications")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	name, err := s.engine.UserName(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	theme, err := s.engine.Theme(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, core.Profile{DisplayName: name, Theme: theme})
}

func (s *Server) handleSetUserName(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.SetUserName(r.Context(), req.Name); err != nil {
		if errors.Is(err, core.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save name")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.engine.SetTheme(r.Context(), core.Theme(req.Theme)); err != nil {
		if errors.Is(err, core.ErrInvalidTheme) {
			writeError(w, http.StatusBadRequest, "invalid theme")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.engine.ToggleTheme(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to toggle theme")
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": theme})
}

// summaryReport is the dashboard header payload: totals plus the top
// expense categories.
type summaryReport struct {
	TotalBalance core.Money           `json:"totalBalance"`
	TotalIncome  core.Money           `json:"totalIncome"`
	TotalExpense core.Money           `json:"totalExpense"`
	Categories   []core.CategoryShare `json:"categories"`
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	if report, ok := s.summaries.Get(s.engine.Version()); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	report := summaryReport{
		TotalBalance: core.TotalBalance(snap.Accounts),
		TotalIncome:  core.TotalIncome(snap.Transactions),
		TotalExpense: core.TotalExpense(snap.Transactions),
		Categories:   core.CategoryBreakdown(snap.Transactions),
	}
	s.summaries.Put(snap.Version, report)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days": core.WeeklySeries(snap.Transactions, s.now()),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset")
		return
	}
	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// decode unmarshals and validates a JSON request body, writing the error
// response itself. Returns false when the handler should stop.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// parseSignedPaise parses a decimal rupee string that may carry a leading
// minus, for opening balances (credit cards start in debt).
func parseSignedPaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0.") == "" {
		return 0, nil
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	p, err := core.ParseDecimalToPaise(s)
	if err != nil {
		return 0, err
	}
	if neg {
		p = -p
	}
	return p, nil
}
