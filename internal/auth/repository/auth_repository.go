package repository

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"lingua_backend/domain"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepository {
	return &authRepository{
		db: db,
	}
}

func (r *authRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateUser called", zap.String("request_id", requestID), zap.String("username", user.Username))

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("username = ? OR email = ?", user.Username, user.Email).Count(&count).Error; err != nil {
			logger.DBLogger.Error("Failed to check user existence", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to check user existence")
		}
		if count > 0 {
			logger.DBLogger.Warn("User already exists", zap.String("request_id", requestID), zap.String("username", user.Username))
			return domain.ErrUserAlreadyExists
		}

		if err := tx.Create(user).Error; err != nil {
			logger.DBLogger.Error("Failed to create user", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to create user")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	logger.DBLogger.Info("Successfully created user", zap.String("request_id", requestID), zap.String("username", user.Username), zap.String("user_id", user.UUID))
	return user, nil
}

func (r *authRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetUserByUsername called", zap.String("request_id", requestID), zap.String("username", username))

	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ? AND active = ?", username, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("username", username))
			return nil, domain.ErrUserNotFound
		}
		logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}

	logger.DBLogger.Info("Successfully got user", zap.String("request_id", requestID), zap.String("username", username))
	return &user, nil
}

func (r *authRepository) GetUserByUUID(ctx context.Context, userID string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetUserByUUID called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var user domain.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("user_id", userID))
			return nil, domain.ErrUserNotFound
		}
		logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}

	logger.DBLogger.Info("Successfully got user", zap.String("request_id", requestID), zap.String("user_id", userID))
	return &user, nil
}

func (r *authRepository) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateProfile called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var user domain.User
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uuid = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("user_id", userID))
				return domain.ErrUserNotFound
			}
			logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to fetch user")
		}

		columns := make(map[string]interface{})
		if patch.FirstName != nil {
			user.FirstName = *patch.FirstName
			columns["first_name"] = user.FirstName
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
			columns["last_name"] = user.LastName
		}
		if patch.AvatarURL != nil {
			user.AvatarURL = *patch.AvatarURL
			columns["avatar_url"] = user.AvatarURL
		}
		if patch.PreferredLanguage != nil {
			user.PreferredLanguage = *patch.PreferredLanguage
			columns["preferred_language"] = user.PreferredLanguage
		}
		if patch.Timezone != nil {
			user.Timezone = *patch.Timezone
			columns["timezone"] = user.Timezone
		}

		if err := tx.Model(&domain.User{}).Where("uuid = ?", userID).Updates(columns).Error; err != nil {
			logger.DBLogger.Error("Failed to update profile", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update profile")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	logger.DBLogger.Info("Successfully updated profile", zap.String("request_id", requestID), zap.String("user_id", userID))
	return &user, nil
}

func (r *authRepository) DeactivateUser(ctx context.Context, userID string) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("DeactivateUser called", zap.String("request_id", requestID), zap.String("user_id", userID))

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Where("uuid = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("user_id", userID))
				return domain.ErrUserNotFound
			}
			logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to fetch user")
		}

		if err := tx.Model(&domain.User{}).Where("uuid = ?", userID).Update("active", false).Error; err != nil {
			logger.DBLogger.Error("Failed to deactivate user", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to deactivate user")
		}

		if err := tx.Where("uuid = ?", userID).Delete(&domain.User{}).Error; err != nil {
			logger.DBLogger.Error("Failed to delete user", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to delete user")
		}
		return nil
	}); err != nil {
		return err
	}

	logger.DBLogger.Info("Successfully deactivated user", zap.String("request_id", requestID), zap.String("user_id", userID))
	return nil
}
