package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"
)

// Acquire leases the account at the manager's clock time.
func (m *LeaseManager) Acquire(ctx context.Context, id string) (domain.Account, error) {
	return m.AcquireAt(ctx, id, m.now())
}

// AcquireAt leases the account as of now. A held lease is only taken over
// once the policy says it has lapsed; the claim itself is a single
// conditional update, so of several concurrent callers at most one wins.
// A now earlier than the account's creation is raised to created_at.
func (m *LeaseManager) AcquireAt(ctx context.Context, id string, now time.Time) (domain.Account, error) {
	ctx, log := slogx.WithAccount(ctx, id)
	now = normalize(now)

	var leased domain.Account
	err := m.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Fetch
		a, err := tx.Accounts().GetAccountByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		// A lease never predates its account; clock skew between callers
		// is absorbed by granting at created_at
		if now.Before(a.CreatedAt) {
			log.Debug("lease time before account creation, clamping",
				slog.Time("requested", now), slog.Time("created_at", a.CreatedAt))
			now = a.CreatedAt
		}

		// 2. Apply the TTL policy to the recorded lease
		if !m.Policy.Reclaimable(a, now) {
			return ErrAccountLeased
		}

		// 3. Claim only if nobody else got there first
		var cutoff *time.Time
		if c, ok := m.Policy.ReclaimBefore(now); ok {
			cutoff = &c
		}
		ok, err := tx.Accounts().ClaimLease(ctx, id, now, cutoff)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAccountLeased
		}

		a.LeaseUntil = &now
		leased = a
		return nil
	})

	switch {
	case err == nil:
		log.Info("lease acquired", slog.Time("lease_until", now))
		return leased, nil
	case errors.Is(err, ErrAccountNotFound):
		log.Warn("lease requested for unknown account")
		return domain.Account{}, ErrAccountNotFound
	case errors.Is(err, ErrAccountLeased):
		log.Warn("lease contention", slog.String("policy", m.Policy.String()))
		return domain.Account{}, ErrAccountLeased
	default:
		log.Error("failed to acquire lease", slog.Any("error", err))
		return domain.Account{}, storeFailure(err)
	}
}

// Release clears the lease. Releasing a free account succeeds.
func (m *LeaseManager) Release(ctx context.Context, id string) (domain.Account, error) {
	ctx, log := slogx.WithAccount(ctx, id)

	var released domain.Account
	err := m.Store.WithTx(ctx, func(tx store.Tx) error {
		a, err := tx.Accounts().GetAccountByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Accounts().ClearLease(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		a.LeaseUntil = nil
		released = a
		return nil
	})

	switch {
	case err == nil:
		log.Info("lease released")
		return released, nil
	case errors.Is(err, ErrAccountNotFound):
		log.Warn("release requested for unknown account")
		return domain.Account{}, ErrAccountNotFound
	default:
		log.Error("failed to release lease", slog.Any("error", err))
		return domain.Account{}, storeFailure(err)
	}
}
