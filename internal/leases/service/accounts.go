package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/pkg/idx"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"
	"github.com/google/uuid"
)

// Registration is a candidate account. Password is hashed before storage.
type Registration struct {
	Login     string
	Password  string
	ProjectID uuid.UUID
	Env       domain.Environment
	Domain    domain.DomainClass
}

func (r Registration) validate() error {
	if strings.TrimSpace(r.Login) == "" || r.Password == "" || r.ProjectID == uuid.Nil {
		return ErrInvalidAccount
	}
	if _, err := domain.ParseEnvironment(string(r.Env)); err != nil {
		return errors.Join(ErrInvalidAccount, err)
	}
	if _, err := domain.ParseDomainClass(string(r.Domain)); err != nil {
		return errors.Join(ErrInvalidAccount, err)
	}
	return nil
}

// Register creates a new unleased account. The login pre-check only saves a
// hash; the store's unique constraint decides races between registrations.
func (m *LeaseManager) Register(ctx context.Context, reg Registration) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if err := reg.validate(); err != nil {
		return domain.Account{}, err
	}

	// 1. Pre-check the login
	_, err := m.Store.Accounts().GetAccountByLogin(ctx, reg.Login)
	if err == nil {
		log.Warn("registration rejected, login taken", slog.String("login", reg.Login))
		return domain.Account{}, ErrAccountExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up login", slog.Any("error", err))
		return domain.Account{}, storeFailure(err)
	}

	// 2. Hash the secret
	hash, err := m.hash(reg.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Insert, reclassifying a lost uniqueness race
	var created domain.Account
	err = m.Store.WithTx(ctx, func(tx store.Tx) error {
		created, err = tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           idx.New().String(),
			Login:        reg.Login,
			PasswordHash: hash,
			ProjectID:    reg.ProjectID,
			Env:          reg.Env,
			Domain:       reg.Domain,
			CreatedAt:    m.now(), // same clock as lease_until
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAccountExists
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			log.Warn("registration lost uniqueness race", slog.String("login", reg.Login))
			return domain.Account{}, ErrAccountExists
		}
		log.Error("failed to create account", slog.String("login", reg.Login), slog.Any("error", err))
		return domain.Account{}, storeFailure(err)
	}

	log.Info("account registered",
		slog.String("account_id", created.ID),
		slog.String("login", created.Login),
		slog.String("project_id", created.ProjectID.String()),
		slog.String("env", created.Env.String()),
		slog.String("domain", created.Domain.String()),
	)
	return created, nil
}

// List returns the accounts matching every set filter field, oldest first.
func (m *LeaseManager) List(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := m.Store.Accounts().ListAccounts(ctx, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accounts", slog.Any("error", err))
		return nil, storeFailure(err)
	}
	return accounts, nil
}

// Get fetches a single account by id.
func (m *LeaseManager) Get(ctx context.Context, id string) (domain.Account, error) {
	a, err := m.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, storeFailure(err)
	}
	return a, nil
}
