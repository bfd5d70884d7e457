package usecase

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/auth/mocks"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"strings"
	"testing"
	"time"
)

func TestRegisterUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	today := time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)
	validPassword := "Secure123!"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{
			Username: "newlearner",
			Email:    "newlearner@example.com",
			Password: validPassword,
		}

		created := &domain.User{UUID: "user-123", Username: "newlearner"}
		mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "newlearner" &&
				u.Email == "newlearner@example.com" &&
				u.Password != validPassword &&
				middleware.CheckPassword(u.Password, validPassword) &&
				u.DailyLives == domain.MaxDailyLives &&
				u.LivesResetDate.Equal(domain.NormalizeDate(today)) &&
				u.PreferredLanguage == "es" &&
				u.Timezone == "UTC" &&
				u.Active
		})).Return(created, nil)

		user, err := authUC.RegisterUser(ctx, req, today)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", user.UUID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Username", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{Username: "/~~~", Email: "a@b.com", Password: validPassword}
		_, err := authUC.RegisterUser(ctx, req, today)
		assert.Error(t, err)
		assert.Equal(t, "not correct username", err.Error())
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("Invalid Email", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{Username: "newlearner", Email: "not-an-email", Password: validPassword}
		_, err := authUC.RegisterUser(ctx, req, today)
		assert.Error(t, err)
		assert.Equal(t, "not correct email", err.Error())
	})

	t.Run("Invalid Password", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{Username: "newlearner", Email: "newlearner@example.com", Password: "short"}
		_, err := authUC.RegisterUser(ctx, req, today)
		assert.Error(t, err)
		assert.Equal(t, "not correct password", err.Error())
	})

	t.Run("Name Exceeds Character Limit", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{
			Username:  "newlearner",
			Email:     "newlearner@example.com",
			Password:  validPassword,
			FirstName: strings.Repeat("a", 101),
		}
		_, err := authUC.RegisterUser(ctx, req, today)
		assert.Error(t, err)
		assert.Equal(t, "Input exceeds character limit", err.Error())
	})

	t.Run("User Already Exists", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		req := domain.RegisterRequest{Username: "newlearner", Email: "newlearner@example.com", Password: validPassword}
		mockRepo.On("CreateUser", mock.Anything, mock.Anything).Return(nil, domain.ErrUserAlreadyExists)

		_, err := authUC.RegisterUser(ctx, req, today)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		mockRepo.AssertExpectations(t)
	})
}

func TestLoginUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	validUsername := "validUser"
	validPassword := "Secure123!"
	tooLongString := strings.Repeat("a", 101)
	invalidUsername := "/~~~~~~~"
	invalidPassword := "short"

	hashedPassword, _ := middleware.HashPassword(validPassword)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByUsername", mock.Anything, validUsername).
			Return(&domain.User{UUID: "user-123", Username: validUsername, Password: hashedPassword}, nil)

		userID, err := authUC.LoginUser(ctx, validUsername, validPassword)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByUsername", mock.Anything, validUsername).
			Return(&domain.User{UUID: "user-123", Username: validUsername, Password: hashedPassword}, nil)

		userID, err := authUC.LoginUser(ctx, validUsername, "WrongPass123!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, userID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		mockRepo.On("GetUserByUsername", mock.Anything, validUsername).
			Return(nil, domain.ErrUserNotFound)

		userID, err := authUC.LoginUser(ctx, validUsername, validPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, userID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Input Exceeds Character Limit", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		userID, err := authUC.LoginUser(ctx, tooLongString, validPassword)
		assert.Error(t, err)
		assert.Equal(t, "Input exceeds character limit", err.Error())
		assert.Empty(t, userID)
	})

	t.Run("Invalid Username Format", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		userID, err := authUC.LoginUser(ctx, invalidUsername, validPassword)
		assert.Error(t, err)
		assert.Equal(t, "not correct username", err.Error())
		assert.Empty(t, userID)
	})

	t.Run("Invalid Password Format", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		userID, err := authUC.LoginUser(ctx, validUsername, invalidPassword)
		assert.Error(t, err)
		assert.Equal(t, "not correct password", err.Error())
		assert.Empty(t, userID)
	})
}

func TestGetProfile(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		expected := &domain.User{UUID: "user-123", Username: "learner", TotalPoints: 120}
		mockRepo.On("GetUserByUUID", mock.Anything, "user-123").Return(expected, nil)

		user, err := authUC.GetProfile(ctx, "user-123")
		assert.NoError(t, err)
		assert.Equal(t, expected, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		_, err := authUC.GetProfile(ctx, "")
		assert.Error(t, err)
		assert.Equal(t, "missing user id", err.Error())
	})
}

func TestUpdateProfile(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		firstName := "Ana"
		patch := domain.ProfilePatch{FirstName: &firstName}
		updated := &domain.User{UUID: "user-123", FirstName: "Ana"}
		mockRepo.On("UpdateProfile", mock.Anything, "user-123", patch).Return(updated, nil)

		user, err := authUC.UpdateProfile(ctx, "user-123", patch)
		assert.NoError(t, err)
		assert.Equal(t, "Ana", user.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Patch", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		_, err := authUC.UpdateProfile(ctx, "user-123", domain.ProfilePatch{})
		assert.Error(t, err)
		assert.Equal(t, "no fields to update", err.Error())
	})

	t.Run("Input Exceeds Character Limit", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		long := strings.Repeat("a", 101)
		_, err := authUC.UpdateProfile(ctx, "user-123", domain.ProfilePatch{FirstName: &long})
		assert.Error(t, err)
		assert.Equal(t, "Input exceeds character limit", err.Error())
	})
}

func TestDeactivateUser(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		mockRepo.On("DeactivateUser", mock.Anything, "user-123").Return(nil)

		err := authUC.DeactivateUser(ctx, "user-123")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		authUC := NewAuthUsecase(mockRepo)

		err := authUC.DeactivateUser(ctx, "")
		assert.Error(t, err)
		assert.Equal(t, "missing user id", err.Error())
	})
}
