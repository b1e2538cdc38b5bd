// Package ledger implements the invariant-preserving operations that keep
// account balances, transaction history and derived notifications mutually
// consistent. It is the only writer of the persistent store.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"rupya/internal/core"
	"rupya/internal/storage"
)

// Engine executes ledger operations against a Store. Operations run as a
// sequence of synchronous full-collection writes with no partial rollback:
// a crash mid-operation can leave a recorded transaction without its balance
// effect. Single local actor, so no locking beyond the store's own.
type Engine struct {
	store   storage.Store
	now     func() time.Time
	newID   func() string
	version atomic.Uint64
}

// Option overrides an Engine collaborator, mainly for tests.
type Option func(*Engine)

// WithClock fixes the engine's notion of now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the uuid source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot is a full, point-in-time read of all collections. The version
// increases on every mutation so consumers can tell whether a refetch is
// needed.
type Snapshot struct {
	Version       uint64                 `json:"version"`
	Transactions  []core.Transaction     `json:"transactions"`
	Accounts      []core.Account         `json:"accounts"`
	Notifications []core.AppNotification `json:"notifications"`
}

// Snapshot returns the current state of all collections. Two calls with no
// intervening mutation return equal collections.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	txs, err := e.store.GetTransactions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load transactions: %w", err)
	}
	accounts, err := e.store.GetAccounts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load accounts: %w", err)
	}
	ns, err := e.store.GetNotifications(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load notifications: %w", err)
	}
	return Snapshot{
		Version:       e.version.Load(),
		Transactions:  txs,
		Accounts:      accounts,
		Notifications: ns,
	}, nil
}

// Version reports the current mutation counter.
func (e *Engine) Version() uint64 {
	return e.version.Load()
}

// AddTransaction validates the input, persists the transaction with a fresh
// id, propagates its balance effect and emits a notification. A
// cashback-bearing expense additionally spawns one companion income
// transaction with category "Cashback" in the same operation.
func (e *Engine) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	tx := in.Transaction(e.newID())
	if err := e.store.SaveTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := e.applyBalanceEffect(ctx, tx, false); err != nil {
		return core.Transaction{}, err
	}

	amount := core.FormatINR(tx.Amount)
	switch tx.Type {
	case core.Expense:
		e.notify(ctx, "Expense Added",
			fmt.Sprintf("Spent %s at %s", amount, tx.MerchantOrCategory()), core.NotifyInfo)
	case core.Income:
		e.notify(ctx, "Income Received",
			fmt.Sprintf("Received %s from %s", amount, tx.MerchantOrCategory()), core.NotifySuccess)
	case core.Refund:
		e.notify(ctx, "Refund Processed",
			fmt.Sprintf("Refund of %s added to %s", amount, tx.AccountName), core.NotifySuccess)
	case core.Transfer:
		e.notify(ctx, "Transfer Successful",
			fmt.Sprintf("Transferred %s to %s", amount, tx.ToAccountName), core.NotifySuccess)
	}

	if tx.Type == core.Expense && tx.Cashback.Paise > 0 {
		if err := e.spawnCashback(ctx, tx); err != nil {
			return core.Transaction{}, err
		}
	}

	e.version.Add(1)
	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"type", tx.Type,
		"amount_paise", tx.Amount.Paise,
		"account_id", tx.AccountID)
	return tx, nil
}

// spawnCashback records the companion income entry for a cashback-bearing
// expense. The child has its own id and no back-reference to the parent.
func (e *Engine) spawnCashback(ctx context.Context, parent core.Transaction) error {
	child := core.Transaction{
		ID:          e.newID(),
		Amount:      parent.Cashback,
		Type:        core.Income,
		Category:    core.CategoryCashback,
		AccountID:   parent.AccountID,
		AccountName: parent.AccountName,
		Date:        parent.Date,
		Note:        fmt.Sprintf("Cashback for %s", parent.MerchantOrCategory()),
		Merchant:    parent.Merchant,
	}
	if err := e.store.SaveTransaction(ctx, child); err != nil {
		return fmt.Errorf("save cashback transaction: %w", err)
	}
	if err := e.store.UpdateAccountBalance(ctx, parent.AccountID, parent.Cashback); err != nil {
		return fmt.Errorf("apply cashback balance: %w", err)
	}
	e.notify(ctx, "Cashback Earned!",
		fmt.Sprintf("You earned %s cashback on this transaction!", core.FormatINR(parent.Cashback)),
		core.NotifySuccess)
	return nil
}

// DeleteTransaction removes the transaction and reverses exactly the balance
// effect recorded on it. A previously spawned cashback child is an
// independent entry and is deliberately left untouched. Returns
// core.ErrNotFound with zero state change when the id does not exist.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) (core.Transaction, error) {
	tx, err := e.store.DeleteTransactionByID(ctx, id)
	if err != nil {
		if err == core.ErrNotFound {
			return core.Transaction{}, core.ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}

	if err := e.applyBalanceEffect(ctx, tx, true); err != nil {
		return core.Transaction{}, err
	}

	e.notify(ctx, "Transaction Deleted",
		fmt.Sprintf("%s of %s removed.", deletionLabel(tx.Type), core.FormatINR(tx.Amount)),
		core.NotifyWarning)

	e.version.Add(1)
	slog.InfoContext(ctx, "Transaction deleted", "id", tx.ID, "type", tx.Type)
	return tx, nil
}

// applyBalanceEffect propagates (or, when reverse is set, exactly undoes)
// the balance effect of a transaction using the type and amount stored on
// the record. Updates against deleted accounts are silent no-ops.
func (e *Engine) applyBalanceEffect(ctx context.Context, tx core.Transaction, reverse bool) error {
	sign := func(m core.Money) core.Money {
		if reverse {
			return m.Neg()
		}
		return m
	}

	if tx.Type == core.Transfer && tx.ToAccountID != "" {
		if err := e.store.UpdateAccountBalance(ctx, tx.AccountID, sign(tx.Amount.Neg())); err != nil {
			return fmt.Errorf("update source balance: %w", err)
		}
		if err := e.store.UpdateAccountBalance(ctx, tx.ToAccountID, sign(tx.Amount)); err != nil {
			return fmt.Errorf("update destination balance: %w", err)
		}
		return nil
	}

	var delta core.Money
	switch tx.Type {
	case core.Income, core.Refund:
		delta = tx.Amount
	case core.Expense:
		delta = tx.Amount.Neg()
	default:
		return nil
	}
	if err := e.store.UpdateAccountBalance(ctx, tx.AccountID, sign(delta)); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func deletionLabel(t core.TransactionType) string {
	switch t {
	case core.Transfer:
		return "Transfer"
	case core.Expense:
		return "Expense"
	default:
		return "Income"
	}
}

// CreateAccount persists a new account and notifies.
func (e *Engine) CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error) {
	if err := in.Validate(); err != nil {
		return core.Account{}, fmt.Errorf("validate account: %w", err)
	}
	account := core.Account{
		ID:      e.newID(),
		Name:    in.Name,
		Type:    in.Type,
		Balance: in.Balance,
	}
	if err := e.store.SaveAccount(ctx, account); err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	e.notify(ctx, "Account Created",
		fmt.Sprintf("%s added successfully.", account.Name), core.NotifySuccess)
	e.version.Add(1)
	return account, nil
}

// RemoveAccount deletes the account. Transactions referencing it are kept:
// they retain the name snapshot and a now-dangling id.
func (e *Engine) RemoveAccount(ctx context.Context, id string) error {
	name := "Account"
	accounts, err := e.store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.ID == id {
			name = a.Name
			break
		}
	}

	if err := e.store.DeleteAccountByID(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	e.notify(ctx, "Account Deleted",
		fmt.Sprintf("%s has been removed.", name), core.NotifyWarning)
	e.version.Add(1)
	return nil
}

// UpdateAccountName renames an account. Historical transactions keep their
// old name snapshot.
func (e *Engine) UpdateAccountName(ctx context.Context, id, name string) error {
	if name == "" {
		return core.ErrEmptyName
	}
	if err := e.store.UpdateAccountName(ctx, id, name); err != nil {
		return fmt.Errorf("update account name: %w", err)
	}
	e.version.Add(1)
	return nil
}

// MarkAllNotificationsRead marks every notification read in bulk.
func (e *Engine) MarkAllNotificationsRead(ctx context.Context) error {
	if err := e.store.MarkNotificationsRead(ctx); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	e.version.Add(1)
	return nil
}

// ClearAllNotifications removes every notification.
func (e *Engine) ClearAllNotifications(ctx context.Context) error {
	if err := e.store.ClearNotifications(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	e.version.Add(1)
	return nil
}

// UserName returns the profile display name.
func (e *Engine) UserName(ctx context.Context) (string, error) {
	p, err := e.store.GetProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	return p.DisplayName, nil
}

// SetUserName updates the profile display name.
func (e *Engine) SetUserName(ctx context.Context, name string) error {
	if name == "" {
		return core.ErrEmptyName
	}
	if err := e.store.SaveUserName(ctx, name); err != nil {
		return fmt.Errorf("save user name: %w", err)
	}
	e.version.Add(1)
	return nil
}

// Theme returns the current theme preference.
func (e *Engine) Theme(ctx context.Context) (core.Theme, error) {
	p, err := e.store.GetProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	return p.Theme, nil
}

// SetTheme stores the theme preference.
func (e *Engine) SetTheme(ctx context.Context, theme core.Theme) error {
	if !theme.Valid() {
		return core.ErrInvalidTheme
	}
	if err := e.store.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	e.version.Add(1)
	return nil
}

// ToggleTheme flips between light and dark and returns the new value.
func (e *Engine) ToggleTheme(ctx context.Context) (core.Theme, error) {
	current, err := e.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := core.ThemeLight
	if current == core.ThemeLight {
		next = core.ThemeDark
	}
	if err := e.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Reset drops all state back to first-run seed data. Exposed for the
// presentation layer's error boundary.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	e.version.Add(1)
	slog.WarnContext(ctx, "Ledger reset to seed state")
	return nil
}

// notify appends an observational notification. Failures are logged and
// swallowed: notifications never gate a ledger mutation.
func (e *Engine) notify(ctx context.Context, title, message string, typ core.NotificationType) {
	n := core.AppNotification{
		ID:      e.newID(),
		Title:   title,
		Message: message,
		Type:    typ,
		Date:    e.now(),
	}
	if err := e.store.AddNotification(ctx, n); err != nil {
		slog.WarnContext(ctx, "Failed to record notification",
			"title", title, "error", err)
	}
}
