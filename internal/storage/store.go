// Package storage defines the persistent store contract for the ledger:
// four independently keyed collections (transactions, accounts,
// notifications, profile) with get-all/replace-all semantics only.
package storage

import (
	"context"

	"rupya/internal/core"
)

// MaxNotifications caps the notification collection; the oldest entries are
// silently dropped beyond it.
const MaxNotifications = 50

// DefaultUserName is the profile display name before the user sets one.
const DefaultUserName = "Rupya User"

// Store is the only owner of durable state. The ledger engine is its only
// writer. Reads never fail fatally: a missing or corrupted collection
// degrades to its empty/default value.
type Store interface {
	// GetAccounts returns the account collection. On the first ever call,
	// when the collection is absent, it seeds and persists the default
	// accounts. This is the only implicit side effect of a read.
	GetAccounts(ctx context.Context) ([]core.Account, error)
	SaveAccount(ctx context.Context, account core.Account) error
	// UpdateAccountBalance adds delta to the account's balance. A missing
	// account id is a silent no-op: orphaned transactions may reference
	// deleted accounts.
	UpdateAccountBalance(ctx context.Context, accountID string, delta core.Money) error
	UpdateAccountName(ctx context.Context, accountID, name string) error
	DeleteAccountByID(ctx context.Context, accountID string) error

	GetTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransaction(ctx context.Context, tx core.Transaction) error
	// DeleteTransactionByID removes the transaction and returns the removed
	// record so the caller can compute reversal effects. Returns
	// core.ErrNotFound when no such id exists.
	DeleteTransactionByID(ctx context.Context, id string) (core.Transaction, error)

	GetNotifications(ctx context.Context) ([]core.AppNotification, error)
	// AddNotification prepends (most-recent-first) and drops entries beyond
	// MaxNotifications.
	AddNotification(ctx context.Context, n core.AppNotification) error
	MarkNotificationsRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error

	GetProfile(ctx context.Context) (core.Profile, error)
	SaveUserName(ctx context.Context, name string) error
	SaveTheme(ctx context.Context, theme core.Theme) error

	// Reset drops all collections back to first-run state. The next
	// GetAccounts call reseeds.
	Reset(ctx context.Context) error
}

// SeedAccounts returns the five accounts persisted on first run.
func SeedAccounts() []core.Account {
	return []core.Account{
		{ID: "1", Name: "HDFC Bank", Type: core.AccountBank, Balance: core.Rupee(25000)},
		{ID: "2", Name: "GPay/PhonePe", Type: core.AccountUPI, Balance: core.Rupee(5000)},
		{ID: "3", Name: "Cash", Type: core.AccountCash, Balance: core.Rupee(1500)},
		{ID: "4", Name: "HDFC Debit", Type: core.AccountDebitCard, Balance: core.Rupee(10000)},
		{ID: "5", Name: "SBI Credit", Type: core.AccountCreditCard, Balance: core.Rupee(-15000)},
	}
}

// DefaultProfile is the profile before any user mutation.
func DefaultProfile() core.Profile {
	return core.Profile{DisplayName: DefaultUserName, Theme: core.ThemeLight}
}
