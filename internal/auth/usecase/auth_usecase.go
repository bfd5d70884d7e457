package usecase

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"lingua_backend/internal/service/validation"
	"time"
)

const (
	defaultLanguage = "es"
	defaultTimezone = "UTC"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, req domain.RegisterRequest, today time.Time) (*domain.User, error)
	LoginUser(ctx context.Context, username string, password string) (string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID string) error
}

type authUsecase struct {
	authRepository domain.AuthRepository
}

func NewAuthUsecase(authRepository domain.AuthRepository) AuthUsecase {
	return &authUsecase{
		authRepository: authRepository,
	}
}

func (uc *authUsecase) RegisterUser(ctx context.Context, req domain.RegisterRequest, today time.Time) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateUsername(req.Username) {
		logger.AccessLogger.Warn("not correct username", zap.String("request_id", requestID))
		return nil, errors.New("not correct username")
	}
	if !validation.ValidateEmail(req.Email) {
		logger.AccessLogger.Warn("not correct email", zap.String("request_id", requestID))
		return nil, errors.New("not correct email")
	}
	if !validation.ValidatePassword(req.Password) {
		logger.AccessLogger.Warn("not correct password", zap.String("request_id", requestID))
		return nil, errors.New("not correct password")
	}

	const maxNameLen = 100
	if len(req.FirstName) > maxNameLen || len(req.LastName) > maxNameLen {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return nil, errors.New("Input exceeds character limit")
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		logger.AccessLogger.Error("Failed to hash password", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to hash password")
	}

	preferredLanguage := req.PreferredLanguage
	if preferredLanguage == "" {
		preferredLanguage = defaultLanguage
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	user := &domain.User{
		Username:          req.Username,
		Email:             req.Email,
		Password:          hashedPassword,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PreferredLanguage: preferredLanguage,
		Timezone:          timezone,
		DailyLives:        domain.MaxDailyLives,
		LivesResetDate:    domain.NormalizeDate(today),
		Active:            true,
	}

	return uc.authRepository.CreateUser(ctx, user)
}

func (uc *authUsecase) LoginUser(ctx context.Context, username string, password string) (string, error) {
	requestID := middleware.GetRequestID(ctx)
	const maxLen = 100
	if len(username) > maxLen || len(password) > maxLen {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return "", errors.New("Input exceeds character limit")
	}
	if !validation.ValidateUsername(username) {
		logger.AccessLogger.Warn("not correct username", zap.String("request_id", requestID))
		return "", errors.New("not correct username")
	}
	if !validation.ValidatePassword(password) {
		logger.AccessLogger.Warn("not correct password", zap.String("request_id", requestID))
		return "", errors.New("not correct password")
	}

	user, err := uc.authRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !middleware.CheckPassword(user.Password, password) {
		logger.AccessLogger.Warn("Password mismatch", zap.String("request_id", requestID), zap.String("username", username))
		return "", domain.ErrInvalidCredentials
	}

	return user.UUID, nil
}

func (uc *authUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return nil, errors.New("missing user id")
	}
	return uc.authRepository.GetUserByUUID(ctx, userID)
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return nil, errors.New("missing user id")
	}

	if patch.FirstName == nil && patch.LastName == nil && patch.AvatarURL == nil &&
		patch.PreferredLanguage == nil && patch.Timezone == nil {
		logger.AccessLogger.Warn("Empty profile patch", zap.String("request_id", requestID), zap.String("user_id", userID))
		return nil, errors.New("no fields to update")
	}

	const maxNameLen = 100
	const maxURLLen = 255
	if (patch.FirstName != nil && len(*patch.FirstName) > maxNameLen) ||
		(patch.LastName != nil && len(*patch.LastName) > maxNameLen) ||
		(patch.AvatarURL != nil && len(*patch.AvatarURL) > maxURLLen) ||
		(patch.PreferredLanguage != nil && len(*patch.PreferredLanguage) > 10) ||
		(patch.Timezone != nil && len(*patch.Timezone) > 50) {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return nil, errors.New("Input exceeds character limit")
	}

	return uc.authRepository.UpdateProfile(ctx, userID, patch)
}

func (uc *authUsecase) DeactivateUser(ctx context.Context, userID string) error {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return errors.New("missing user id")
	}
	return uc.authRepository.DeactivateUser(ctx, userID)
}
