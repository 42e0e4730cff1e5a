package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/google/uuid"
)

const accountColumns = `id, login, password_hash, project_id, env, domain, lease_until, created_at`

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByLogin(ctx context.Context, login string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE login = ?`, login)
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
	if f.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID.String())
	}
	if f.Env != nil {
		where = append(where, "env = ?")
		args = append(args, string(*f.Env))
	}
	if f.Domain != nil {
		where = append(where, "domain = ?")
		args = append(args, string(*f.Domain))
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
	// A zero CreatedAt falls back to the column default
	var stamp sql.NullInt64
	if !a.CreatedAt.IsZero() {
		stamp = sql.NullInt64{Int64: toMicros(a.CreatedAt), Valid: true}
	}

	var createdAt int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, login, password_hash, project_id, env, domain, created_at)
		VALUES (?, ?, ?, ?, ?, ?, COALESCE(?, CAST((julianday('now') - 2440587.5) * 86400000000 AS INTEGER)))
		RETURNING created_at`,
		a.ID, a.Login, a.PasswordHash, a.ProjectID.String(), string(a.Env), string(a.Domain), stamp,
	).Scan(&createdAt)
	if err != nil {
		return domain.Account{}, mapConstraint(err)
	}

	a.CreatedAt = fromMicros(createdAt)
	a.LeaseUntil = nil
	return a, nil
}

func (r *accountsRepo) ClaimLease(ctx context.Context, id string, at time.Time, reclaimBefore *time.Time) (bool, error) {
	query := `UPDATE accounts SET lease_until = ? WHERE id = ? AND created_at <= ? AND (lease_until IS NULL`
	args := []any{toMicros(at), id, toMicros(at)}
	if reclaimBefore != nil {
		query += ` OR lease_until < ?`
		args = append(args, toMicros(*reclaimBefore))
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
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET lease_until = NULL WHERE id = ?`, id)
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
		projectID  string
		env        string
		class      string
		leaseUntil sql.NullInt64
		createdAt  int64
	)
	if err := row.Scan(
		&a.ID, &a.Login, &a.PasswordHash, &projectID, &env, &class, &leaseUntil, &createdAt,
	); err != nil {
		return domain.Account{}, err
	}

	pid, err := uuid.Parse(projectID)
	if err != nil {
		return domain.Account{}, err
	}
	a.ProjectID = pid
	a.Env = domain.Environment(env)
	a.Domain = domain.DomainClass(class)
	a.LeaseUntil = mapNullMicros(leaseUntil)
	a.CreatedAt = fromMicros(createdAt)
	return a, nil
}
