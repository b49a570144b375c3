package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/logger"
	"memberbase-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// SubmitApplicationInput carries a prospective member's or volunteer's
// submission. The volunteer-only fields become required when Volunteer is
// true; pointer booleans let an explicit false pass while a missing value
// fails.
type SubmitApplicationInput struct {
	FirstName    string   `json:"first_name" validate:"required" label:"First name"`
	LastName     string   `json:"last_name" validate:"required" label:"Last name"`
	Email        string   `json:"email" validate:"required,email" label:"Email"`
	Phone        string   `json:"phone"`
	Constituency string   `json:"constituency"`
	Interests    []string `json:"interests"`
	Volunteer    bool     `json:"volunteer"`
	Newsletter   bool     `json:"newsletter"`

	SocialMediaHandle string   `json:"social_media_handle" validate:"required_if=Volunteer true" label:"Social media handle"`
	IsBritishCitizen  *bool    `json:"is_british_citizen" validate:"required_if=Volunteer true" label:"British citizen"`
	LivesInUK         *bool    `json:"lives_in_uk" validate:"required_if=Volunteer true" label:"Lives in UK"`
	BriefBio          string   `json:"brief_bio" validate:"required_if=Volunteer true" label:"Brief bio"`
	BriefCV           string   `json:"brief_cv" validate:"required_if=Volunteer true" label:"Brief CV"`
	OtherAffiliations string   `json:"other_affiliations"`
	InterestedIn      []string `json:"interested_in"`
	CanContribute     []string `json:"can_contribute"`
	SignedNDA         *bool    `json:"signed_nda" validate:"required_if=Volunteer true" label:"Signed NDA"`
	GDPRConsent       *bool    `json:"gdpr_consent" validate:"required_if=Volunteer true" label:"GDPR consent"`
}

type applicationService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
	validate *validator.Validate
}

func NewApplicationService(appRepo repository.ApplicationRepository, userRepo repository.UserRepository, emailSvc EmailService) ApplicationService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		validate: v,
	}
}

func (s *applicationService) Submit(ctx context.Context, input SubmitApplicationInput) (*domain.PendingApplication, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return nil, &domain.ValidationError{Fields: fields}
		}
		return nil, fmt.Errorf("failed to validate submission: %w", err)
	}

	email := input.Email

	// An existing account always blocks a new application.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, &domain.ConflictError{Message: "user exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	// Only an UNREVIEWED application blocks resubmission; resolved or
	// in-review records are overwritten below, resetting the review state.
	if existing, err := s.appRepo.GetByEmail(ctx, email); err == nil {
		if existing.Status == domain.ApplicationStatusUnreviewed {
			return nil, &domain.ConflictError{Message: "application pending"}
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	app := &domain.PendingApplication{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Constituency: input.Constituency,
		Interests:    input.Interests,
		Volunteer:    input.Volunteer,
		Newsletter:   input.Newsletter,
		Status:       domain.ApplicationStatusUnreviewed,
	}
	if input.Volunteer {
		app.SocialMediaHandle = input.SocialMediaHandle
		app.IsBritishCitizen = input.IsBritishCitizen
		app.LivesInUK = input.LivesInUK
		app.BriefBio = input.BriefBio
		app.BriefCV = input.BriefCV
		app.OtherAffiliations = input.OtherAffiliations
		app.InterestedIn = input.InterestedIn
		app.CanContribute = input.CanContribute
		app.SignedNDA = input.SignedNDA
		app.GDPRConsent = input.GDPRConsent
	}

	if err := s.appRepo.Upsert(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			return nil, &domain.ConflictError{Message: "application pending"}
		}
		return nil, fmt.Errorf("failed to store application: %w", err)
	}

	// Notification is best-effort; a mail-provider outage must not fail the
	// submission.
	go func() {
		if err := s.emailSvc.SendApplicationReceived(context.Background(), app.Email, app.FirstName); err != nil {
			logger.Error("failed to send application-received email", "email", app.Email, "error", err)
		}
	}()

	return app, nil
}
