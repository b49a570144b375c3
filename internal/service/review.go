package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/logger"
	"memberbase-backend/internal/repository"
	"memberbase-backend/internal/security"
)

// accessCodeTTL is how long a minted code stays redeemable.
const accessCodeTTL = 30 * 24 * time.Hour

type reviewService struct {
	appRepo  repository.ApplicationRepository
	emailSvc EmailService
}

func NewReviewService(appRepo repository.ApplicationRepository, emailSvc EmailService) ReviewService {
	return &reviewService{
		appRepo:  appRepo,
		emailSvc: emailSvc,
	}
}

func (s *reviewService) Transition(ctx context.Context, appID int32, target domain.ApplicationStatus, adminID int32, notes string) (*domain.PendingApplication, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "application"}
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	if !domain.ValidStatus(target) || !domain.CanTransition(app.Status, target) {
		return nil, &domain.InvalidTransitionError{From: app.Status, To: target}
	}

	if target == domain.ApplicationStatusApproved {
		return s.approve(ctx, app, adminID, notes)
	}

	// REJECTED stamps the resolution time; moving back to UNREVIEWED or
	// CONTACTED clears it.
	var resolvedAt *time.Time
	if target == domain.ApplicationStatusRejected {
		now := time.Now()
		resolvedAt = &now
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, app.Status, target, adminID, notes, resolvedAt); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, s.staleTransitionError(ctx, app, target)
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	app.Status = target
	app.ReviewedBy = &adminID
	app.ReviewNotes = notes
	app.ResolvedAt = resolvedAt
	return app, nil
}

// approve flips the application to APPROVED and mints the access code in one
// transaction, so no reader can observe an approved application without a
// code.
func (s *reviewService) approve(ctx context.Context, app *domain.PendingApplication, adminID int32, notes string) (*domain.PendingApplication, error) {
	codeValue, err := security.NewAccessCode()
	if err != nil {
		return nil, err
	}

	role := domain.RoleMember
	if app.Volunteer {
		role = domain.RoleVolunteer
	}

	now := time.Now()
	code := &domain.AccessCode{
		Code:         codeValue,
		Email:        app.Email,
		FirstName:    app.FirstName,
		LastName:     app.LastName,
		Constituency: app.Constituency,
		Roles:        []domain.Role{role},
		ExpiresOn:    now.Add(accessCodeTTL),
	}

	if err := s.appRepo.ApproveAndMintCode(ctx, app.ID, app.Status, adminID, notes, code); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, s.staleTransitionError(ctx, app, domain.ApplicationStatusApproved)
		}
		return nil, fmt.Errorf("failed to approve application: %w", err)
	}

	// The acceptance email carries the code; delivery failure never rolls
	// back the approval.
	go func() {
		if err := s.emailSvc.SendApprovalEmail(context.Background(), app.Email, app.FirstName, code.Code); err != nil {
			logger.Error("failed to send approval email", "email", app.Email, "error", err)
		}
	}()

	app.Status = domain.ApplicationStatusApproved
	app.ReviewedBy = &adminID
	app.ReviewNotes = notes
	app.ResolvedAt = &now
	return app, nil
}

// staleTransitionError rebuilds the transition error after a lost CAS race,
// reporting the status the concurrent writer left behind.
func (s *reviewService) staleTransitionError(ctx context.Context, app *domain.PendingApplication, target domain.ApplicationStatus) error {
	from := app.Status
	if current, err := s.appRepo.GetByID(ctx, app.ID); err == nil {
		from = current.Status
	}
	return &domain.InvalidTransitionError{From: from, To: target}
}

func (s *reviewService) Approve(ctx context.Context, appID, adminID int32, notes string) (*domain.PendingApplication, error) {
	if err := s.requireReviewable(ctx, appID, domain.ApplicationStatusApproved); err != nil {
		return nil, err
	}
	return s.Transition(ctx, appID, domain.ApplicationStatusApproved, adminID, notes)
}

func (s *reviewService) Reject(ctx context.Context, appID, adminID int32, notes string) (*domain.PendingApplication, error) {
	if err := s.requireReviewable(ctx, appID, domain.ApplicationStatusRejected); err != nil {
		return nil, err
	}
	return s.Transition(ctx, appID, domain.ApplicationStatusRejected, adminID, notes)
}

// requireReviewable enforces the narrower precondition of the dedicated
// approve/reject entry points: only UNREVIEWED or CONTACTED applications
// qualify.
func (s *reviewService) requireReviewable(ctx context.Context, appID int32, target domain.ApplicationStatus) error {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.NotFoundError{Resource: "application"}
		}
		return fmt.Errorf("failed to load application: %w", err)
	}
	if app.Status != domain.ApplicationStatusUnreviewed && app.Status != domain.ApplicationStatusContacted {
		return &domain.InvalidTransitionError{From: app.Status, To: target}
	}
	return nil
}

func (s *reviewService) GetApplication(ctx context.Context, appID int32) (*domain.PendingApplication, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "application"}
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return app, nil
}

func (s *reviewService) ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.PendingApplication, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Fields: []string{"status"}}
	}
	return s.appRepo.List(ctx, status)
}
