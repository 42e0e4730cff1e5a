package leases_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLockLifecycle(t *testing.T) {
	client := setupService(t, nil)
	ctx := t.Context()

	acc := registerAccount(t, client, uuid.New())

	lock, err := client.Lock(ctx, acc.ID)
	require.NoError(t, err)
	require.True(t, lock.Locked)
	require.NotNil(t, lock.LockTime)

	_, err = client.Lock(ctx, acc.ID)
	require.ErrorIs(t, err, leasesdk.ErrAccountLeased)

	unlock, err := client.Unlock(ctx, acc.ID)
	require.NoError(t, err)
	require.False(t, unlock.Locked)

	_, err = client.Lock(ctx, acc.ID)
	require.NoError(t, err)
}

func TestLockUnknownAccount(t *testing.T) {
	client := setupService(t, nil)

	_, err := client.Lock(t.Context(), "01J0000000000000000000000Z")
	require.ErrorIs(t, err, leasesdk.ErrAccountNotFound)
}

func TestLockExpiresAfterTTL(t *testing.T) {
	client := setupService(t, map[string]string{"LEASE_TTL": "2s"})
	ctx := t.Context()

	acc := registerAccount(t, client, uuid.New())

	_, err := client.Lock(ctx, acc.ID)
	require.NoError(t, err)

	_, err = client.Lock(ctx, acc.ID)
	require.ErrorIs(t, err, leasesdk.ErrAccountLeased)

	time.Sleep(3 * time.Second)

	_, err = client.Lock(ctx, acc.ID)
	require.NoError(t, err, "an abandoned lease is reclaimable after the TTL")
}

// TestConcurrentLockPostgres races callers for one account against the
// Postgres driver; exactly one may win.
func TestConcurrentLockPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres e2e in short mode")
	}
	client := setupServiceWithPostgres(t, nil)
	ctx := t.Context()

	acc := registerAccount(t, client, uuid.New())

	const callers = 16
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Lock(ctx, acc.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, leasesdk.ErrAccountLeased)
	}
	require.Equal(t, 1, wins)

	locked := true
	held, err := client.ListAccounts(ctx, leasesdk.ListFilter{IsLocked: &locked})
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Equal(t, acc.ID, held[0].ID)
}
