// Package sqlite persists the ledger's four collections as JSON blobs in a
// single SQLite table. Every mutation rewrites the whole collection; there
// are no partial writes.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"rupya/internal/core"
	"rupya/internal/storage"

	_ "modernc.org/sqlite"
)

// Collection names. These are the keyed blobs of the persisted-state layout.
const (
	collTransactions  = "transactions"
	collAccounts      = "accounts"
	collNotifications = "notifications"
	collProfile       = "profile"
)

type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// readCollection fetches one blob. ok is false when the collection has never
// been written. A corrupted blob degrades to absent rather than failing.
func (s *Store) readCollection(ctx context.Context, name string, out any) (ok bool, err error) {
	var body []byte
	err = s.db.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.WarnContext(ctx, "Corrupted collection, treating as empty", "collection", name, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) writeCollection(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, body, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, body)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

func (s *Store) GetAccounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	ok, err := s.readCollection(ctx, collAccounts, &accounts)
	if err != nil {
		return nil, err
	}
	if !ok {
		accounts = storage.SeedAccounts()
		if err := s.writeCollection(ctx, collAccounts, accounts); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		slog.InfoContext(ctx, "Seeded default accounts", "count", len(accounts))
	}
	return accounts, nil
}

func (s *Store) SaveAccount(ctx context.Context, account core.Account) error {
	accounts, err := s.GetAccounts(ctx)
	if err != nil {
		return err
	}
	return s.writeCollection(ctx, collAccounts, append(accounts, account))
}

func (s *Store) UpdateAccountBalance(ctx context.Context, accountID string, delta core.Money) error {
	accounts, err := s.GetAccounts(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == accountID {
			accounts[i].Balance = accounts[i].Balance.Add(delta)
			return s.writeCollection(ctx, collAccounts, accounts)
		}
	}
	// Unknown account: no-op by design, the transaction may be orphaned.
	return nil
}

func (s *Store) UpdateAccountName(ctx context.Context, accountID, name string) error {
	accounts, err := s.GetAccounts(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == accountID {
			accounts[i].Name = name
			return s.writeCollection(ctx, collAccounts, accounts)
		}
	}
	return nil
}

func (s *Store) DeleteAccountByID(ctx context.Context, accountID string) error {
	accounts, err := s.GetAccounts(ctx)
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.ID != accountID {
			kept = append(kept, a)
		}
	}
	return s.writeCollection(ctx, collAccounts, kept)
}

func (s *Store) GetTransactions(ctx context.Context) ([]core.Transaction, error) {
	var txs []core.Transaction
	if _, err := s.readCollection(ctx, collTransactions, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Store) SaveTransaction(ctx context.Context, tx core.Transaction) error {
	txs, err := s.GetTransactions(ctx)
	if err != nil {
		return err
	}
	return s.writeCollection(ctx, collTransactions, append(txs, tx))
}

func (s *Store) DeleteTransactionByID(ctx context.Context, id string) (core.Transaction, error) {
	txs, err := s.GetTransactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	for i, tx := range txs {
		if tx.ID == id {
			txs = append(txs[:i], txs[i+1:]...)
			if err := s.writeCollection(ctx, collTransactions, txs); err != nil {
				return core.Transaction{}, err
			}
			return tx, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) GetNotifications(ctx context.Context) ([]core.AppNotification, error) {
	var ns []core.AppNotification
	if _, err := s.readCollection(ctx, collNotifications, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (s *Store) AddNotification(ctx context.Context, n core.AppNotification) error {
	ns, err := s.GetNotifications(ctx)
	if err != nil {
		return err
	}
	ns = append([]core.AppNotification{n}, ns...)
	if len(ns) > storage.MaxNotifications {
		ns = ns[:storage.MaxNotifications]
	}
	return s.writeCollection(ctx, collNotifications, ns)
}

func (s *Store) MarkNotificationsRead(ctx context.Context) error {
	ns, err := s.GetNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range ns {
		ns[i].Read = true
	}
	return s.writeCollection(ctx, collNotifications, ns)
}

func (s *Store) ClearNotifications(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collNotifications)
	if err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context) (core.Profile, error) {
	var p core.Profile
	ok, err := s.readCollection(ctx, collProfile, &p)
	if err != nil {
		return core.Profile{}, err
	}
	if !ok {
		return storage.DefaultProfile(), nil
	}
	return p, nil
}

func (s *Store) SaveUserName(ctx context.Context, name string) error {
	p, err := s.GetProfile(ctx)
	if err != nil {
		return err
	}
	p.DisplayName = name
	return s.writeCollection(ctx, collProfile, p)
}

func (s *Store) SaveTheme(ctx context.Context, theme core.Theme) error {
	p, err := s.GetProfile(ctx)
	if err != nil {
		return err
	}
	p.Theme = theme
	return s.writeCollection(ctx, collProfile, p)
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	slog.InfoContext(ctx, "Store reset to first-run state")
	return nil
}
