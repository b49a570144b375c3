package service

import (
	"context"

	"memberbase-backend/internal/domain"
)

type ApplicationService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*domain.PendingApplication, error)
}

type ReviewService interface {
	Transition(ctx context.Context, appID int32, target domain.ApplicationStatus, adminID int32, notes string) (*domain.PendingApplication, error)
	// Approve and Reject are the narrow entry points: only reachable from
	// UNREVIEWED or CONTACTED, then delegating to Transition.
	Approve(ctx context.Context, appID, adminID int32, notes string) (*domain.PendingApplication, error)
	Reject(ctx context.Context, appID, adminID int32, notes string) (*domain.PendingApplication, error)
	GetApplication(ctx context.Context, appID int32) (*domain.PendingApplication, error)
	ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.PendingApplication, error)
}

type RedemptionService interface {
	// Validate is read-only; it never marks the code used, so a UI "check my
	// code" step cannot burn a code before registration completes.
	Validate(ctx context.Context, code, email string) (*domain.Redemption, error)
	// Consume is the only mutator; the second of two calls for the same code
	// always fails.
	Consume(ctx context.Context, code string) error
}

type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, string, string, error) // account, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
}

type EmailService interface {
	SendApplicationReceived(ctx context.Context, email, firstName string) error
	SendApprovalEmail(ctx context.Context, email, firstName, code string) error
}
