package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off it so a Tx-scoped Store hands out
// repositories bound to the same transaction.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns ErrNotFound when no row has the id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByLogin is the registration pre-check.
	GetAccountByLogin(ctx context.Context, login string) (domain.Account, error)

	// ListAccounts applies every non-nil filter field, ordered by creation.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// CreateAccount inserts the account (id is provided by the app via ULID).
	// A zero CreatedAt is assigned by the store. A login collision is
	// reported as ErrAlreadyExists, even when two inserts race.
	CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	// ClaimLease sets lease_until = at, but only while the row is unleased or
	// its lease was granted strictly before reclaimBefore (nil: unleased only),
	// and never to a time before created_at. It reports whether the row was
	// written.
	ClaimLease(ctx context.Context, id string, at time.Time, reclaimBefore *time.Time) (bool, error)

	// ClearLease sets lease_until = NULL. ErrNotFound if the id is unknown.
	ClearLease(ctx context.Context, id string) error
}
