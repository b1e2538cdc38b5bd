// Package memory provides a process-local Store used by tests and as the
// default backend when no database path is configured.
package memory

import (
	"context"
	"sync"

	"rupya/internal/core"
	"rupya/internal/storage"
)

// Store keeps all four collections in memory behind one mutex.
type Store struct {
	mu sync.Mutex

	accountsInit  bool // collection exists, even when empty
	accounts      []core.Account
	transactions  []core.Transaction
	notifications []core.AppNotification

	profileInit bool
	profile     core.Profile
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) GetAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accountsInit {
		s.accounts = storage.SeedAccounts()
		s.accountsInit = true
	}
	return cloneSlice(s.accounts), nil
}

func (s *Store) SaveAccount(_ context.Context, account core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureAccountsLocked()
	s.accounts = append(s.accounts, account)
	return nil
}

func (s *Store) UpdateAccountBalance(_ context.Context, accountID string, delta core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureAccountsLocked()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Balance = s.accounts[i].Balance.Add(delta)
			return nil
		}
	}
	// Unknown account: no-op by design.
	return nil
}

func (s *Store) UpdateAccountName(_ context.Context, accountID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureAccountsLocked()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Name = name
			return nil
		}
	}
	return nil
}

func (s *Store) DeleteAccountByID(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureAccountsLocked()
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.ID != accountID {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	return nil
}

func (s *Store) GetTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.transactions), nil
}

func (s *Store) SaveTransaction(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *Store) DeleteTransactionByID(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return tx, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) GetNotifications(_ context.Context) ([]core.AppNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.notifications), nil
}

func (s *Store) AddNotification(_ context.Context, n core.AppNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]core.AppNotification{n}, s.notifications...)
	if len(s.notifications) > storage.MaxNotifications {
		s.notifications = s.notifications[:storage.MaxNotifications]
	}
	return nil
}

func (s *Store) MarkNotificationsRead(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	return nil
}

func (s *Store) ClearNotifications(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
	return nil
}

func (s *Store) GetProfile(_ context.Context) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.profileInit {
		return storage.DefaultProfile(), nil
	}
	return s.profile, nil
}

func (s *Store) SaveUserName(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProfileLocked()
	s.profile.DisplayName = name
	return nil
}

func (s *Store) SaveTheme(_ context.Context, theme core.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProfileLocked()
	s.profile.Theme = theme
	return nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = nil
	s.accountsInit = false
	s.transactions = nil
	s.notifications = nil
	s.profile = core.Profile{}
	s.profileInit = false
	return nil
}

func (s *Store) ensureAccountsLocked() {
	if !s.accountsInit {
		s.accounts = storage.SeedAccounts()
		s.accountsInit = true
	}
}

func (s *Store) ensureProfileLocked() {
	if !s.profileInit {
		s.profile = storage.DefaultProfile()
		s.profileInit = true
	}
}

func cloneSlice[T any](in []T) []T {
	return append([]T(nil), in...)
}
