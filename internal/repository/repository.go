package repository

import (
	"context"
	"errors"
	"time"

	"memberbase-backend/internal/domain"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePending is returned by Upsert when an UNREVIEWED
	// application already holds the email.
	ErrDuplicatePending = errors.New("pending application exists for email")
	// ErrStaleStatus is returned by the compare-and-swap status updates when
	// the row's status no longer matches the expected value.
	ErrStaleStatus = errors.New("application status changed concurrently")
	// ErrAlreadyUsed is returned by Consume when the code was consumed
	// before.
	ErrAlreadyUsed = errors.New("access code already used")
	// ErrDuplicateUser is returned when an account already exists for the
	// email.
	ErrDuplicateUser = errors.New("account exists for email")
)

type ApplicationRepository interface {
	// Upsert creates the application, or overwrites a non-UNREVIEWED row for
	// the same email in place, resetting all review fields. The email
	// uniqueness constraint resolves the concurrent-submission race.
	Upsert(ctx context.Context, app *domain.PendingApplication) error
	GetByID(ctx context.Context, id int32) (*domain.PendingApplication, error)
	GetByEmail(ctx context.Context, email string) (*domain.PendingApplication, error)
	// List returns applications, filtered by status when status is non-empty.
	List(ctx context.Context, status domain.ApplicationStatus) ([]domain.PendingApplication, error)
	// UpdateStatus performs a compare-and-swap from the expected current
	// status; ErrStaleStatus when zero rows matched.
	UpdateStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, reviewedBy int32, notes string, resolvedAt *time.Time) error
	// ApproveAndMintCode flips the application to APPROVED and inserts the
	// access code in a single transaction, CAS-guarded on the expected
	// current status.
	ApproveAndMintCode(ctx context.Context, id int32, from domain.ApplicationStatus, reviewedBy int32, notes string, code *domain.AccessCode) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteUnreviewedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type AccessCodeRepository interface {
	Create(ctx context.Context, code *domain.AccessCode) error
	GetByCode(ctx context.Context, code string) (*domain.AccessCode, error)
	// Consume marks the code used with a single conditional update; exactly
	// one caller can ever succeed per code.
	Consume(ctx context.Context, code string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}
