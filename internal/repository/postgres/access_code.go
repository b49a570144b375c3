package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/repository"

	"github.com/lib/pq"
)

type accessCodeRepository struct {
	db *sql.DB
}

func NewAccessCodeRepository(db *sql.DB) repository.AccessCodeRepository {
	return &accessCodeRepository{db: db}
}

func (r *accessCodeRepository) Create(ctx context.Context, code *domain.AccessCode) error {
	query := `INSERT INTO access_codes (code, email, first_name, last_name, constituency, roles, expires_on, used, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		code.Code, code.Email, code.FirstName, code.LastName, code.Constituency,
		pq.Array(domain.RoleStrings(code.Roles)), code.ExpiresOn,
	).Scan(&code.CreatedOn)
}

func (r *accessCodeRepository) GetByCode(ctx context.Context, code string) (*domain.AccessCode, error) {
	ac := &domain.AccessCode{}
	var roles pq.StringArray
	query := `SELECT code, email, first_name, last_name, constituency, roles, expires_on, used, used_on, created_on
	          FROM access_codes WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&ac.Code, &ac.Email, &ac.FirstName, &ac.LastName, &ac.Constituency,
		&roles, &ac.ExpiresOn, &ac.Used, &ac.UsedOn, &ac.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		ac.Roles = append(ac.Roles, domain.Role(role))
	}
	return ac, nil
}

func (r *accessCodeRepository) Consume(ctx context.Context, code string) error {
	// Conditional update, checked by rows-affected; exactly one concurrent
	// caller can flip used to true.
	result, err := r.db.ExecContext(ctx,
		`UPDATE access_codes SET used = true, used_on = NOW() WHERE code = $1 AND used = false`, code)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}

	// Zero rows: distinguish a missing code from one consumed earlier.
	var used bool
	err = r.db.QueryRowContext(ctx, `SELECT used FROM access_codes WHERE code = $1`, code).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	return repository.ErrAlreadyUsed
}

func (r *accessCodeRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM access_codes WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *accessCodeRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM access_codes WHERE created_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
