package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
	Refund   TransactionType = "REFUND"
)

const (
	AccountBank       AccountType = "Bank"
	AccountUPI        AccountType = "UPI"
	AccountDebitCard  AccountType = "Debit Card"
	AccountCreditCard AccountType = "Credit Card"
	AccountCash       AccountType = "Cash"
	AccountWallet     AccountType = "Wallet"
)

const (
	NotifySuccess NotificationType = "success"
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type (
	TransactionType  string
	AccountType      string
	NotificationType string
	Theme            string

	// Account is a user-defined balance holder. Balance is signed:
	// credit-card accounts carry debt as a negative balance.
	Account struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Type    AccountType `json:"type"`
		Balance Money       `json:"balance"`
	}

	// Transaction is a single ledger entry. Amount is always a positive
	// magnitude; direction is derived from Type. AccountName is a
	// point-in-time snapshot and is not kept in sync with later renames.
	Transaction struct {
		ID            string          `json:"id"`
		Amount        Money           `json:"amount"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category"`
		AccountID     string          `json:"accountId"`
		AccountName   string          `json:"accountName"`
		ToAccountID   string          `json:"toAccountId,omitempty"`
		ToAccountName string          `json:"toAccountName,omitempty"`
		Date          time.Time       `json:"date"`
		Note          string          `json:"note,omitempty"`
		Merchant      string          `json:"merchant,omitempty"`
		Cashback      Money           `json:"cashback"`
	}

	// TransactionInput carries everything needed to record a transaction
	// except the id, which the ledger engine assigns.
	TransactionInput struct {
		Amount        Money
		Type          TransactionType
		Category      string
		AccountID     string
		AccountName   string
		ToAccountID   string
		ToAccountName string
		Date          time.Time
		Note          string
		Merchant      string
		Cashback      Money
	}

	// AccountInput carries a new account before an id is assigned.
	AccountInput struct {
		Name    string
		Type    AccountType
		Balance Money
	}

	// AppNotification is an observational record emitted by ledger
	// mutations. The engine never reads these back.
	AppNotification struct {
		ID      string           `json:"id"`
		Title   string           `json:"title"`
		Message string           `json:"message"`
		Type    NotificationType `json:"type"`
		Date    time.Time        `json:"date"`
		Read    bool             `json:"read"`
	}

	// Profile holds the global display name and theme preference.
	Profile struct {
		DisplayName string `json:"displayName"`
		Theme       Theme  `json:"theme"`
	}
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidType           = errors.New("invalid transaction type")
	ErrInvalidAccountType    = errors.New("invalid account type")
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrEmptyName             = errors.New("empty name")
	ErrMissingAccount        = errors.New("missing account reference")
	ErrMissingDestination    = errors.New("transfer requires a destination account")
	ErrUnexpectedDestination = errors.New("destination account only valid for transfers")
	ErrSameAccount           = errors.New("destination account must differ from source")
	ErrNegativeCashback      = errors.New("cashback cannot be negative")
	ErrZeroDate              = errors.New("date cannot be zero")
)

func (t TransactionType) Valid() bool {
	switch t {
	case Expense, Income, Transfer, Refund:
		return true
	default:
		return false
	}
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountBank, AccountUPI, AccountDebitCard, AccountCreditCard, AccountCash, AccountWallet:
		return true
	default:
		return false
	}
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Validate rejects malformed input before it reaches the ledger engine.
// A failed validation leaves no partial state behind.
func (in TransactionInput) Validate() error {
	if in.Amount.Paise <= 0 {
		return ErrInvalidAmount
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return ErrMissingAccount
	}
	if in.Date.IsZero() {
		return ErrZeroDate
	}
	if in.Type == Transfer {
		if strings.TrimSpace(in.ToAccountID) == "" {
			return ErrMissingDestination
		}
		if in.ToAccountID == in.AccountID {
			return ErrSameAccount
		}
	} else if in.ToAccountID != "" {
		return ErrUnexpectedDestination
	}
	if in.Cashback.Paise < 0 {
		return ErrNegativeCashback
	}
	return nil
}

// Transaction materializes the input as a ledger entry with the given id.
func (in TransactionInput) Transaction(id string) Transaction {
	return Transaction{
		ID:            id,
		Amount:        in.Amount,
		Type:          in.Type,
		Category:      in.Category,
		AccountID:     in.AccountID,
		AccountName:   in.AccountName,
		ToAccountID:   in.ToAccountID,
		ToAccountName: in.ToAccountName,
		Date:          in.Date,
		Note:          in.Note,
		Merchant:      in.Merchant,
		Cashback:      in.Cashback,
	}
}

func (in AccountInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if !in.Type.Valid() {
		return ErrInvalidAccountType
	}
	return nil
}

// MerchantOrCategory is the display handle used in notification messages
// and in history search: the merchant when present, the category otherwise.
func (t Transaction) MerchantOrCategory() string {
	if t.Merchant != "" {
		return t.Merchant
	}
	return t.Category
}
