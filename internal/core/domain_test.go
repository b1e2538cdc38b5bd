package core

import (
	"errors"
	"testing"
	"time"
)

func validInput() TransactionInput {
	return TransactionInput{
		Amount:      Money{Paise: 50000},
		Type:        Expense,
		Category:    "Groceries",
		AccountID:   "acc-1",
		AccountName: "HDFC Bank",
		Date:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionInputValidate(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TransactionInput)
		want   error
	}{
		{"zero amount", func(in *TransactionInput) { in.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(in *TransactionInput) { in.Amount = Money{Paise: -100} }, ErrInvalidAmount},
		{"unknown type", func(in *TransactionInput) { in.Type = "LOAN" }, ErrInvalidType},
		{"blank account", func(in *TransactionInput) { in.AccountID = "  " }, ErrMissingAccount},
		{"zero date", func(in *TransactionInput) { in.Date = time.Time{} }, ErrZeroDate},
		{"transfer without destination", func(in *TransactionInput) {
			in.Type = Transfer
		}, ErrMissingDestination},
		{"transfer to itself", func(in *TransactionInput) {
			in.Type = Transfer
			in.ToAccountID = in.AccountID
		}, ErrSameAccount},
		{"destination on expense", func(in *TransactionInput) {
			in.ToAccountID = "acc-2"
		}, ErrUnexpectedDestination},
		{"negative cashback", func(in *TransactionInput) {
			in.Cashback = Money{Paise: -1}
		}, ErrNegativeCashback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if err := in.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTransferInputValid(t *testing.T) {
	in := validInput()
	in.Type = Transfer
	in.ToAccountID = "acc-2"
	in.ToAccountName = "GPay/PhonePe"
	if err := in.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestAccountInputValidate(t *testing.T) {
	good := AccountInput{Name: "SBI Credit", Type: AccountCreditCard, Balance: Money{Paise: -1500000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (AccountInput{Name: " ", Type: AccountCash}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName")
	}
	if err := (AccountInput{Name: "x", Type: "Crypto"}).Validate(); !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType")
	}
}

func TestMerchantOrCategory(t *testing.T) {
	tx := Transaction{Category: "Fuel"}
	if got := tx.MerchantOrCategory(); got != "Fuel" {
		t.Fatalf("got %q", got)
	}
	tx.Merchant = "Indian Oil"
	if got := tx.MerchantOrCategory(); got != "Indian Oil" {
		t.Fatalf("got %q", got)
	}
}
