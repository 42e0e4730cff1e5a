package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
)

const accountColumns = `id, login, password_hash, project_id, env, domain, lease_until, created_at`

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByLogin(ctx context.Context, login string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE login = $1`, login)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context, f domain.AccountFilter) ([]domain.Account, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ProjectID != nil {
		where = append(where, "project_id = "+arg(*f.ProjectID))
	}
	if f.Env != nil {
		where = append(where, "env = "+arg(string(*f.Env)))
	}
	if f.Domain != nil {
		where = append(where, "domain = "+arg(string(*f.Domain)))
	}
	if f.Leased != nil {
		if *f.Leased {
			where = append(where, "lease_until IS NOT NULL")
		} else {
			where = append(where, "lease_until IS NULL")
		}
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	// A zero CreatedAt falls back to the database clock
	var stamp sql.NullTime
	if !a.CreatedAt.IsZero() {
		stamp = sql.NullTime{Time: a.CreatedAt.UTC(), Valid: true}
	}

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, login, password_hash, project_id, env, domain, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		RETURNING created_at`,
		a.ID, a.Login, a.PasswordHash, a.ProjectID, string(a.Env), string(a.Domain), stamp,
	).Scan(&createdAt)
	if err != nil {
		return domain.Account{}, mapConstraint(err)
	}

	a.CreatedAt = createdAt.UTC()
	a.LeaseUntil = nil
	return a, nil
}

func (r *accountsRepo) ClaimLease(ctx context.Context, id string, at time.Time, reclaimBefore *time.Time) (bool, error) {
	query := `UPDATE accounts SET lease_until = $1 WHERE id = $2 AND created_at <= $1 AND (lease_until IS NULL`
	args := []any{at.UTC(), id}
	if reclaimBefore != nil {
		query += ` OR lease_until < $3`
		args = append(args, reclaimBefore.UTC())
	}
	query += `)`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountsRepo) ClearLease(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET lease_until = NULL WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a          domain.Account
		env        string
		class      string
		leaseUntil sql.NullTime
	)
	if err := row.Scan(
		&a.ID, &a.Login, &a.PasswordHash, &a.ProjectID, &env, &class, &leaseUntil, &a.CreatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	a.Env = domain.Environment(env)
	a.Domain = domain.DomainClass(class)
	a.CreatedAt = a.CreatedAt.UTC()
	if leaseUntil.Valid {
		t := leaseUntil.Time.UTC()
		a.LeaseUntil = &t
	}
	return a, nil
}
