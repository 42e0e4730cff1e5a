package service

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
)

// memStore is an in-memory store.Store. Transactions work on a copy of the
// rows and are serialized by txMu, which is enough to model BEGIN IMMEDIATE.
type memStore struct {
	txMu sync.Mutex

	mu   sync.Mutex
	rows map[string]domain.Account

	// blindLogins makes GetAccountByLogin miss, so registration always
	// reaches the insert.
	blindLogins bool
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]domain.Account{}}
}

func (s *memStore) Accounts() store.Accounts {
	return &memAccounts{s: s, rows: func() map[string]domain.Account { return s.rows }}
}

func (s *memStore) ApplyMigrations() error         { return nil }
func (s *memStore) Close() error                   { return nil }
func (s *memStore) Ping(ctx context.Context) error { return nil }

func (s *memStore) Tx(ctx context.Context) (store.Tx, error) {
	s.txMu.Lock()

	s.mu.Lock()
	snapshot := maps.Clone(s.rows)
	s.mu.Unlock()

	return &memTx{parent: s, rows: snapshot}, nil
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type memTx struct {
	parent *memStore
	rows   map[string]domain.Account
	done   bool
}

func (t *memTx) Accounts() store.Accounts {
	return &memAccounts{s: t.parent, rows: func() map[string]domain.Account { return t.rows }}
}

func (t *memTx) ApplyMigrations() error         { return nil }
func (t *memTx) Close() error                   { return nil }
func (t *memTx) Ping(ctx context.Context) error { return nil }

func (t *memTx) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *memTx) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *memTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true

	t.parent.mu.Lock()
	t.parent.rows = t.rows
	t.parent.mu.Unlock()
	t.parent.txMu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.parent.txMu.Unlock()
	return nil
}

type memAccounts struct {
	s    *memStore
	rows func() map[string]domain.Account
}

func (r *memAccounts) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.rows()[id]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	return a, nil
}

func (r *memAccounts) GetAccountByLogin(ctx context.Context, login string) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.blindLogins {
		return domain.Account{}, store.ErrNotFound
	}
	for _, a := range r.rows() {
		if a.Login == login {
			return a, nil
		}
	}
	return domain.Account{}, store.ErrNotFound
}

func (r *memAccounts) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []domain.Account{}
	for _, a := range r.rows() {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *memAccounts) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.rows()
	for _, existing := range rows {
		if existing.Login == a.Login {
			return domain.Account{}, store.ErrAlreadyExists
		}
	}
	if _, ok := rows[a.ID]; ok {
		return domain.Account{}, store.ErrAlreadyExists
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	a.LeaseUntil = nil
	rows[a.ID] = a
	return a, nil
}

func (r *memAccounts) ClaimLease(ctx context.Context, id string, at time.Time, reclaimBefore *time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.rows()
	a, ok := rows[id]
	if !ok || at.Before(a.CreatedAt) {
		return false, nil
	}
	if a.LeaseUntil != nil && (reclaimBefore == nil || !a.LeaseUntil.Before(*reclaimBefore)) {
		return false, nil
	}
	a.LeaseUntil = &at
	rows[id] = a
	return true, nil
}

func (r *memAccounts) ClearLease(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.rows()
	a, ok := rows[id]
	if !ok {
		return store.ErrNotFound
	}
	a.LeaseUntil = nil
	rows[id] = a
	return nil
}
