package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres store tests in short mode")
	}

	ctx := context.Background()
	container, err := tcPostgres.Run(ctx,
		"postgres:16-alpine",
		tcPostgres.WithDatabase("botofarm_test"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAccount(id, login string, project uuid.UUID) domain.Account {
	return domain.Account{
		ID:           id,
		Login:        login,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		ProjectID:    project,
		Env:          domain.EnvPreprod,
		Domain:       domain.DomainCanary,
	}
}

// One container serves all subtests; each subtest uses its own logins.
func TestPostgresStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, s.ApplyMigrations())
	})

	t.Run("create get and duplicate", func(t *testing.T) {
		project := uuid.New()
		created, err := s.Accounts().CreateAccount(ctx, newAccount("pg-01", "pg1@example.com", project))
		require.NoError(t, err)
		require.False(t, created.CreatedAt.IsZero())

		got, err := s.Accounts().GetAccountByID(ctx, "pg-01")
		require.NoError(t, err)
		require.Equal(t, project, got.ProjectID)
		require.Equal(t, domain.EnvPreprod, got.Env)
		require.Equal(t, domain.DomainCanary, got.Domain)
		require.Nil(t, got.LeaseUntil)

		_, err = s.Accounts().GetAccountByLogin(ctx, "pg1@example.com")
		require.NoError(t, err)

		_, err = s.Accounts().CreateAccount(ctx, newAccount("pg-02", "pg1@example.com", project))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = s.Accounts().GetAccountByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list by project and lease state", func(t *testing.T) {
		project := uuid.New()
		for i, login := range []string{"l1@example.com", "l2@example.com"} {
			_, err := s.Accounts().CreateAccount(ctx, newAccount("pg-l"+string(rune('a'+i)), login, project))
			require.NoError(t, err)
		}
		ok, err := s.Accounts().ClaimLease(ctx, "pg-la", time.Now().UTC().Add(time.Minute), nil)
		require.NoError(t, err)
		require.True(t, ok)

		list, err := s.Accounts().ListAccounts(ctx, domain.AccountFilter{ProjectID: &project})
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "pg-la", list[0].ID)

		free := false
		list, err = s.Accounts().ListAccounts(ctx, domain.AccountFilter{ProjectID: &project, Leased: &free})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "pg-lb", list[0].ID)
	})

	t.Run("claim lease honours cutoff", func(t *testing.T) {
		_, err := s.Accounts().CreateAccount(ctx, newAccount("pg-c", "claim@example.com", uuid.New()))
		require.NoError(t, err)

		t0 := time.Now().UTC().Truncate(time.Microsecond).Add(time.Hour)
		ok, err := s.Accounts().ClaimLease(ctx, "pg-c", t0, nil)
		require.NoError(t, err)
		require.True(t, ok)

		cutoff := t0
		ok, err = s.Accounts().ClaimLease(ctx, "pg-c", t0.Add(time.Minute), &cutoff)
		require.NoError(t, err)
		require.False(t, ok)

		cutoff = t0.Add(time.Microsecond)
		ok, err = s.Accounts().ClaimLease(ctx, "pg-c", t0.Add(time.Minute), &cutoff)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, s.Accounts().ClearLease(ctx, "pg-c"))
		require.ErrorIs(t, s.Accounts().ClearLease(ctx, "nope"), store.ErrNotFound)
	})

	t.Run("claim never predates created_at", func(t *testing.T) {
		created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		acc := newAccount("pg-t", "stamp@example.com", uuid.New())
		acc.CreatedAt = created

		got, err := s.Accounts().CreateAccount(ctx, acc)
		require.NoError(t, err)
		require.True(t, created.Equal(got.CreatedAt))

		ok, err := s.Accounts().ClaimLease(ctx, "pg-t", created.Add(-time.Second), nil)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = s.Accounts().ClaimLease(ctx, "pg-t", created, nil)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("concurrent claims have one winner", func(t *testing.T) {
		_, err := s.Accounts().CreateAccount(ctx, newAccount("pg-r", "race@example.com", uuid.New()))
		require.NoError(t, err)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		now := time.Now().UTC().Add(time.Minute)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.Accounts().ClaimLease(ctx, "pg-r", now, nil)
				if err != nil {
					t.Errorf("claim: %v", err)
					return
				}
				if ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, wins)
	})
}
