package postgres

import (
	"database/sql"

	"memberbase-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ApplicationRepository
	repository.AccessCodeRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ApplicationRepository: NewApplicationRepository(db),
		AccessCodeRepository:  NewAccessCodeRepository(db),
		UserRepository:        NewUserRepository(db),
	}
}
