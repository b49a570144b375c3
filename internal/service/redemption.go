package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/repository"
)

type redemptionService struct {
	codeRepo repository.AccessCodeRepository
	appRepo  repository.ApplicationRepository
}

func NewRedemptionService(codeRepo repository.AccessCodeRepository, appRepo repository.ApplicationRepository) RedemptionService {
	return &redemptionService{
		codeRepo: codeRepo,
		appRepo:  appRepo,
	}
}

func (s *redemptionService) Validate(ctx context.Context, code, email string) (*domain.Redemption, error) {
	ac, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "access code"}
		}
		return nil, fmt.Errorf("failed to load access code: %w", err)
	}

	// Used-ness is reported separately from time-expiry; both are terminal.
	if ac.Used {
		return nil, &domain.ExpiredError{Used: true}
	}
	if time.Now().After(ac.ExpiresOn) {
		return nil, &domain.ExpiredError{}
	}
	if !strings.EqualFold(strings.TrimSpace(email), ac.Email) {
		return nil, &domain.MismatchError{}
	}

	// Cross-check: the code and its application can diverge if the
	// application was altered after minting; both must agree.
	app, err := s.appRepo.GetByEmail(ctx, ac.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "approved application"}
		}
		return nil, fmt.Errorf("failed to load application for code: %w", err)
	}
	if app.Status != domain.ApplicationStatusApproved {
		return nil, &domain.NotFoundError{Resource: "approved application"}
	}

	roles := ac.Roles
	primary := domain.PrimaryRole(roles, app.Volunteer)
	if len(roles) == 0 {
		roles = []domain.Role{primary}
	}

	return &domain.Redemption{
		FirstName:    ac.FirstName,
		LastName:     ac.LastName,
		Constituency: ac.Constituency,
		Role:         primary,
		Roles:        roles,
	}, nil
}

func (s *redemptionService) Consume(ctx context.Context, code string) error {
	err := s.codeRepo.Consume(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.NotFoundError{Resource: "access code"}
	}
	if errors.Is(err, repository.ErrAlreadyUsed) {
		return &domain.ExpiredError{Used: true}
	}
	if err != nil {
		return fmt.Errorf("failed to consume access code: %w", err)
	}
	return nil
}
