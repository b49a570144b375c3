package postgres

import (
	"context"
	"database/sql"
	"errors"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/repository"

	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone, constituency, roles, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.FirstName, account.LastName,
		account.Phone, account.Constituency, pq.Array(domain.RoleStrings(account.Roles)),
	).Scan(&account.ID, &account.CreatedOn, &account.UpdatedOn)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrDuplicateUser
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone, constituency, roles, created_on, updated_on
	          FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone, constituency, roles, created_on, updated_on
	          FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	var roles pq.StringArray
	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.FirstName,
		&account.LastName, &account.Phone, &account.Constituency, &roles,
		&account.CreatedOn, &account.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		account.Roles = append(account.Roles, domain.Role(role))
	}
	return account, nil
}
