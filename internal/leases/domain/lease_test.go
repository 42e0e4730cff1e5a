package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLeasePolicyUnbounded(t *testing.T) {
	p := UnboundedLeases()
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	ttl, ok := p.TTL()
	require.False(t, ok)
	require.Zero(t, ttl)

	require.True(t, p.Held(t0, t0.Add(24*365*time.Hour)))

	_, bounded := p.ReclaimBefore(t0)
	require.False(t, bounded)
	require.Equal(t, "unbounded", p.String())
}

func TestLeasePolicyBoundaryIsInclusive(t *testing.T) {
	p := LeasesExpireAfter(60 * time.Second)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, p.Held(t0, t0))
	require.True(t, p.Held(t0, t0.Add(60*time.Second)), "exactly at TTL the lease still holds")
	require.False(t, p.Held(t0, t0.Add(60*time.Second+time.Nanosecond)))
	require.False(t, p.Held(t0, t0.Add(61*time.Second)))
}

func TestLeasePolicyReclaimBefore(t *testing.T) {
	p := LeasesExpireAfter(time.Minute)
	now := time.Date(2025, 1, 1, 12, 1, 0, 0, time.UTC)

	cutoff, ok := p.ReclaimBefore(now)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), cutoff)

	// A grant exactly at the cutoff is still held; strictly before has lapsed.
	require.True(t, p.Held(cutoff, now))
	require.False(t, p.Held(cutoff.Add(-time.Microsecond), now))
}

func TestLeasePolicyReclaimable(t *testing.T) {
	p := LeasesExpireAfter(10 * time.Second)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	free := Account{}
	require.True(t, p.Reclaimable(free, t0))

	held := Account{LeaseUntil: &t0}
	require.False(t, p.Reclaimable(held, t0.Add(10*time.Second)))
	require.True(t, p.Reclaimable(held, t0.Add(11*time.Second)))

	require.False(t, UnboundedLeases().Reclaimable(held, t0.Add(time.Hour)))
}

func TestLeasePolicyZeroTTL(t *testing.T) {
	p := LeasesExpireAfter(0)
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, p.Held(t0, t0))
	require.False(t, p.Held(t0, t0.Add(time.Microsecond)))
}
