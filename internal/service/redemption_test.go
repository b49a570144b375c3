package service

import (
	"context"
	"testing"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/repository"

	"github.com/stretchr/testify/assert"
)

func validCode() *domain.AccessCode {
	return &domain.AccessCode{
		Code:         "WXYZ2345",
		Email:        "ada@example.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Constituency: "North",
		Roles:        []domain.Role{domain.RoleVolunteer},
		ExpiresOn:    time.Now().Add(10 * 24 * time.Hour),
	}
}

func approvedApp() *domain.PendingApplication {
	return &domain.PendingApplication{
		ID:        1,
		Email:     "ada@example.com",
		Volunteer: true,
		Status:    domain.ApplicationStatusApproved,
	}
}

func TestRedemptionService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil).Once()
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(approvedApp(), nil).Once()

		red, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Ada", red.FirstName)
		assert.Equal(t, "North", red.Constituency)
		assert.Equal(t, domain.RoleVolunteer, red.Role)
		assert.Equal(t, []domain.Role{domain.RoleVolunteer}, red.Roles)
	})

	t.Run("EmailComparedCaseInsensitively", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil).Once()
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(approvedApp(), nil).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "  Ada@Example.COM ")
		assert.NoError(t, err)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		codeRepo.On("GetByCode", ctx, "NOPE2345").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Validate(ctx, "NOPE2345", "ada@example.com")
		var nerr *domain.NotFoundError
		assert.ErrorAs(t, err, &nerr)
	})

	t.Run("UsedCode", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		ac := validCode()
		ac.Used = true
		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(ac, nil).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		var xerr *domain.ExpiredError
		assert.ErrorAs(t, err, &xerr)
		assert.True(t, xerr.Used)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		ac := validCode()
		ac.ExpiresOn = time.Now().Add(-time.Hour)
		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(ac, nil).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		var xerr *domain.ExpiredError
		assert.ErrorAs(t, err, &xerr)
		assert.False(t, xerr.Used)
	})

	t.Run("EmailMismatch", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "someone.else@example.com")
		var merr *domain.MismatchError
		assert.ErrorAs(t, err, &merr)
		appRepo.AssertNotCalled(t, "GetByEmail", ctx, "ada@example.com")
	})

	t.Run("ApplicationNoLongerApproved", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		app := approvedApp()
		app.Status = domain.ApplicationStatusRejected
		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil).Once()
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(app, nil).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		var nerr *domain.NotFoundError
		assert.ErrorAs(t, err, &nerr)
		assert.Equal(t, "approved application", nerr.Resource)
	})

	t.Run("ApplicationMissing", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil).Once()
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		var nerr *domain.NotFoundError
		assert.ErrorAs(t, err, &nerr)
	})

	t.Run("RoleFallsBackToVolunteerFlag", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		ac := validCode()
		ac.Roles = nil
		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(ac, nil).Once()
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(approvedApp(), nil).Once()

		red, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleVolunteer, red.Role)
		assert.Equal(t, []domain.Role{domain.RoleVolunteer}, red.Roles)
	})

	t.Run("ValidateDoesNotConsume", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		appRepo := new(MockApplicationRepo)
		svc := NewRedemptionService(codeRepo, appRepo)

		codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(validCode(), nil)
		appRepo.On("GetByEmail", ctx, "ada@example.com").Return(approvedApp(), nil)

		for i := 0; i < 3; i++ {
			_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
			assert.NoError(t, err)
		}
		codeRepo.AssertNotCalled(t, "Consume", ctx, "WXYZ2345")
	})
}

func TestRedemptionService_Consume(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		codeRepo.On("Consume", ctx, "WXYZ2345").Return(nil).Once()
		assert.NoError(t, svc.Consume(ctx, "WXYZ2345"))
	})

	t.Run("SecondConsumeFails", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		codeRepo.On("Consume", ctx, "WXYZ2345").Return(nil).Once()
		codeRepo.On("Consume", ctx, "WXYZ2345").Return(repository.ErrAlreadyUsed).Once()

		assert.NoError(t, svc.Consume(ctx, "WXYZ2345"))
		err := svc.Consume(ctx, "WXYZ2345")
		var xerr *domain.ExpiredError
		assert.ErrorAs(t, err, &xerr)
		assert.True(t, xerr.Used)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		codeRepo := new(MockAccessCodeRepo)
		svc := NewRedemptionService(codeRepo, new(MockApplicationRepo))

		codeRepo.On("Consume", ctx, "NOPE2345").Return(repository.ErrNotFound).Once()

		err := svc.Consume(ctx, "NOPE2345")
		var nerr *domain.NotFoundError
		assert.ErrorAs(t, err, &nerr)
	})
}

// Redeeming a code and then re-validating it reports the used state, not a
// missing code.
func TestRedemption_ConsumeThenValidate(t *testing.T) {
	ctx := context.Background()
	codeRepo := new(MockAccessCodeRepo)
	appRepo := new(MockApplicationRepo)
	svc := NewRedemptionService(codeRepo, appRepo)

	codeRepo.On("Consume", ctx, "WXYZ2345").Return(nil).Once()
	used := validCode()
	used.Used = true
	codeRepo.On("GetByCode", ctx, "WXYZ2345").Return(used, nil).Once()

	assert.NoError(t, svc.Consume(ctx, "WXYZ2345"))
	_, err := svc.Validate(ctx, "WXYZ2345", "ada@example.com")
	var xerr *domain.ExpiredError
	assert.ErrorAs(t, err, &xerr)
	assert.True(t, xerr.Used)
}
