package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/pkg/cryptox"
	"github.com/juju/clock"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountLeased    = errors.New("account already leased")
	ErrInvalidAccount   = errors.New("invalid account")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// LeaseManager owns account registration and every lease_until transition.
// Store is the only shared state; the manager holds no locks of its own.
type LeaseManager struct {
	Store  store.Store
	Policy domain.LeasePolicy

	// Clock defaults to the wall clock.
	Clock clock.Clock

	// Hasher defaults to cryptox.HashPassword.
	Hasher func(secret string) (string, error)
}

func (m *LeaseManager) now() time.Time {
	c := m.Clock
	if c == nil {
		c = clock.WallClock
	}
	return normalize(c.Now())
}

func (m *LeaseManager) hash(secret string) (string, error) {
	if m.Hasher != nil {
		return m.Hasher(secret)
	}
	return cryptox.HashPassword(secret)
}

// normalize drops monotonic readings and sub-microsecond precision, which
// neither store keeps, so a returned lease_until equals the persisted one.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// storeFailure classifies err: domain sentinels pass through, anything else
// is reported as ErrStoreUnavailable with the cause attached.
func storeFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAccountExists),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAccountLeased),
		errors.Is(err, ErrInvalidAccount),
		errors.Is(err, ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
