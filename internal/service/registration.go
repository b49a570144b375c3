package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/logger"
	"memberbase-backend/internal/repository"
	"memberbase-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	Code     string `json:"code"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type registrationService struct {
	userRepo     repository.UserRepository
	appRepo      repository.ApplicationRepository
	codeRepo     repository.AccessCodeRepository
	redemption   RedemptionService
	tokens       security.TokenManager
	cleanupDelay time.Duration
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	appRepo repository.ApplicationRepository,
	codeRepo repository.AccessCodeRepository,
	redemption RedemptionService,
	tokens security.TokenManager,
	cleanupDelay time.Duration,
) RegistrationService {
	return &registrationService{
		userRepo:     userRepo,
		appRepo:      appRepo,
		codeRepo:     codeRepo,
		redemption:   redemption,
		tokens:       tokens,
		cleanupDelay: cleanupDelay,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*domain.Account, string, string, error) {
	var missing []string
	if input.Code == "" {
		missing = append(missing, "Code")
	}
	if input.Email == "" {
		missing = append(missing, "Email")
	}
	if input.Password == "" {
		missing = append(missing, "Password")
	}
	if len(missing) > 0 {
		return nil, "", "", &domain.ValidationError{Fields: missing}
	}

	red, err := s.redemption.Validate(ctx, input.Code, input.Email)
	if err != nil {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    red.FirstName,
		LastName:     red.LastName,
		Phone:        input.Phone,
		Constituency: red.Constituency,
		Roles:        red.Roles,
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, "", "", &domain.ConflictError{Message: "user exists"}
		}
		return nil, "", "", fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.redemption.Consume(ctx, input.Code); err != nil {
		return nil, "", "", err
	}

	s.scheduleCleanup(account.Email)

	access, err := s.tokens.GenerateAccessToken(account.ID, account.Email, domain.RoleStrings(account.Roles))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return account, access, refresh, nil
}

// scheduleCleanup removes the now-stale application and code shortly after
// conversion so admin lists don't keep showing an approved applicant who has
// already registered. Best-effort: the deletes are no-ops when the retention
// sweep got there first, and the sweep remains the durable backstop if the
// process dies before the timer fires.
func (s *registrationService) scheduleCleanup(email string) {
	time.AfterFunc(s.cleanupDelay, func() {
		ctx := context.Background()
		if _, err := s.appRepo.DeleteByEmail(ctx, email); err != nil {
			logger.Error("post-registration application cleanup failed", "email", email, "error", err)
		}
		if _, err := s.codeRepo.DeleteByEmail(ctx, email); err != nil {
			logger.Error("post-registration access-code cleanup failed", "email", email, "error", err)
		}
	})
}

func (s *registrationService) Login(ctx context.Context, email, password string) (string, string, error) {
	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(account.ID, account.Email, domain.RoleStrings(account.Roles))
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return access, refresh, nil
}
