package repository

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lingua_backend/domain"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"time"
)

type gameStateRepository struct {
	db *gorm.DB
}

func NewGameStateRepository(db *gorm.DB) domain.GameStateRepository {
	return &gameStateRepository{
		db: db,
	}
}

// lockUser fetches the user's row FOR UPDATE so concurrent game-state
// mutations serialize on the same account.
func (r *gameStateRepository) lockUser(tx *gorm.DB, requestID string, userID string) (*domain.User, error) {
	var user domain.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("uuid = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("user_id", userID))
			return nil, domain.ErrUserNotFound
		}
		logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}
	return &user, nil
}

func (r *gameStateRepository) saveLives(tx *gorm.DB, requestID string, user *domain.User) error {
	err := tx.Model(&domain.User{}).Where("uuid = ?", user.UUID).Updates(map[string]interface{}{
		"daily_lives":      user.DailyLives,
		"lives_reset_date": user.LivesResetDate,
	}).Error
	if err != nil {
		logger.DBLogger.Error("Failed to update daily lives", zap.String("request_id", requestID), zap.Error(err))
		return errors.New("failed to update daily lives")
	}
	return nil
}

func (r *gameStateRepository) GetGameState(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetGameState called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		if user.RefreshDailyLives(today) {
			if err := r.saveLives(tx, requestID, user); err != nil {
				return err
			}
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully got game state", zap.String("request_id", requestID), zap.String("user_id", userID))
	return stats, nil
}

func (r *gameStateRepository) ResetDailyLives(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ResetDailyLives called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		if user.RefreshDailyLives(today) {
			if err := r.saveLives(tx, requestID, user); err != nil {
				return err
			}
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully reset daily lives", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("daily_lives", stats.DailyLives))
	return stats, nil
}

func (r *gameStateRepository) ConsumeLife(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ConsumeLife called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		if err := user.SpendLife(today); err != nil {
			logger.DBLogger.Info("No lives remaining", zap.String("request_id", requestID), zap.String("user_id", userID))
			return err
		}

		if err := r.saveLives(tx, requestID, user); err != nil {
			return err
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully consumed life", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("daily_lives", stats.DailyLives))
	return stats, nil
}

func (r *gameStateRepository) UpdatePoints(ctx context.Context, userID string, delta int) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdatePoints called", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("delta", delta))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		user.AddPoints(delta)
		if err := tx.Model(&domain.User{}).Where("uuid = ?", userID).Update("total_points", user.TotalPoints).Error; err != nil {
			logger.DBLogger.Error("Failed to update points", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update points")
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully updated points", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("total_points", stats.TotalPoints))
	return stats, nil
}

func (r *gameStateRepository) UpdateStreak(ctx context.Context, userID string, streak int) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateStreak called", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("streak", streak))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		user.SetStreak(streak)
		err = tx.Model(&domain.User{}).Where("uuid = ?", userID).Updates(map[string]interface{}{
			"current_streak": user.CurrentStreak,
			"max_streak":     user.MaxStreak,
		}).Error
		if err != nil {
			logger.DBLogger.Error("Failed to update streak", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update streak")
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully updated streak", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("current_streak", stats.CurrentStreak))
	return stats, nil
}

func (r *gameStateRepository) ApplyGameStatsPatch(ctx context.Context, userID string, patch domain.GameStatsPatch) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ApplyGameStatsPatch called", zap.String("request_id", requestID), zap.String("user_id", userID))

	var stats domain.GameStats
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.lockUser(tx, requestID, userID)
		if err != nil {
			return err
		}

		user.ApplyStatsPatch(patch)

		columns := make(map[string]interface{})
		if patch.TotalPoints != nil {
			columns["total_points"] = user.TotalPoints
		}
		if patch.CurrentStreak != nil {
			columns["current_streak"] = user.CurrentStreak
		}
		if patch.MaxStreak != nil {
			columns["max_streak"] = user.MaxStreak
		}
		if patch.DailyLives != nil {
			columns["daily_lives"] = user.DailyLives
		}

		if err := tx.Model(&domain.User{}).Where("uuid = ?", userID).Updates(columns).Error; err != nil {
			logger.DBLogger.Error("Failed to update game stats", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update game stats")
		}

		stats = user.GameStats()
		return nil
	}); err != nil {
		return domain.GameStats{}, err
	}

	logger.DBLogger.Info("Successfully updated game stats", zap.String("request_id", requestID), zap.String("user_id", userID))
	return stats, nil
}

func (r *gameStateRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("Leaderboard called", zap.String("request_id", requestID), zap.Int("limit", limit))

	var users []domain.User
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("total_points DESC").Limit(limit).Find(&users).Error; err != nil {
		logger.DBLogger.Error("Failed to get leaderboard", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch leaderboard")
	}

	entries := make([]domain.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = domain.LeaderboardEntry{
			Position:      i + 1,
			UserID:        user.UUID,
			Username:      user.Username,
			AvatarURL:     user.AvatarURL,
			TotalPoints:   user.TotalPoints,
			CurrentStreak: user.CurrentStreak,
			MaxStreak:     user.MaxStreak,
		}
	}

	logger.DBLogger.Info("Successfully got leaderboard", zap.String("request_id", requestID), zap.Int("count", len(entries)))
	return entries, nil
}
