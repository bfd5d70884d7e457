package usecase

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"time"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type GameStateUsecase interface {
	GetGameState(ctx context.Context, userID string, today time.Time) (domain.GameStats, error)
	ResetDailyLives(ctx context.Context, userID string, today time.Time) (domain.GameStats, error)
	ConsumeLife(ctx context.Context, userID string, today time.Time) (domain.GameStats, error)
	AddPoints(ctx context.Context, userID string, delta int) (domain.GameStats, error)
	SetStreak(ctx context.Context, userID string, streak int) (domain.GameStats, error)
	UpdateGameStats(ctx context.Context, userID string, patch domain.GameStatsPatch) (domain.GameStats, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type gameStateUsecase struct {
	gameStateRepository domain.GameStateRepository
	leaderboardCache    domain.LeaderboardCache
}

// NewGameStateUsecase wires the repository with an optional leaderboard cache;
// a nil cache disables caching.
func NewGameStateUsecase(gameStateRepository domain.GameStateRepository, leaderboardCache domain.LeaderboardCache) GameStateUsecase {
	return &gameStateUsecase{
		gameStateRepository: gameStateRepository,
		leaderboardCache:    leaderboardCache,
	}
}

func (uc *gameStateUsecase) GetGameState(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}
	return uc.gameStateRepository.GetGameState(ctx, userID, today)
}

func (uc *gameStateUsecase) ResetDailyLives(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}
	return uc.gameStateRepository.ResetDailyLives(ctx, userID, today)
}

func (uc *gameStateUsecase) ConsumeLife(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}
	return uc.gameStateRepository.ConsumeLife(ctx, userID, today)
}

func (uc *gameStateUsecase) AddPoints(ctx context.Context, userID string, delta int) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}
	return uc.gameStateRepository.UpdatePoints(ctx, userID, delta)
}

func (uc *gameStateUsecase) SetStreak(ctx context.Context, userID string, streak int) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}
	return uc.gameStateRepository.UpdateStreak(ctx, userID, streak)
}

func (uc *gameStateUsecase) UpdateGameStats(ctx context.Context, userID string, patch domain.GameStatsPatch) (domain.GameStats, error) {
	requestID := middleware.GetRequestID(ctx)
	if userID == "" {
		logger.AccessLogger.Warn("Missing user id", zap.String("request_id", requestID))
		return domain.GameStats{}, errors.New("missing user id")
	}

	if patch.IsEmpty() {
		logger.AccessLogger.Warn("Empty game stats patch", zap.String("request_id", requestID), zap.String("user_id", userID))
		return domain.GameStats{}, errors.New("no fields to update")
	}

	for _, value := range []*int{patch.TotalPoints, patch.CurrentStreak, patch.MaxStreak, patch.DailyLives} {
		if value != nil && *value < 0 {
			logger.AccessLogger.Warn("Negative game stats value", zap.String("request_id", requestID), zap.String("user_id", userID))
			return domain.GameStats{}, errors.New("game stats must not be negative")
		}
	}

	if patch.DailyLives != nil && *patch.DailyLives > domain.MaxDailyLives {
		logger.AccessLogger.Warn("Daily lives above maximum", zap.String("request_id", requestID), zap.String("user_id", userID), zap.Int("daily_lives", *patch.DailyLives))
		return domain.GameStats{}, errors.New("daily lives exceed the maximum")
	}

	return uc.gameStateRepository.ApplyGameStatsPatch(ctx, userID, patch)
}

func (uc *gameStateUsecase) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	requestID := middleware.GetRequestID(ctx)

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	if uc.leaderboardCache != nil {
		entries, err := uc.leaderboardCache.GetLeaderboard(ctx, limit)
		if err == nil {
			logger.AccessLogger.Info("Leaderboard served from cache", zap.String("request_id", requestID), zap.Int("limit", limit))
			return entries, nil
		}
		if !errors.Is(err, domain.ErrLeaderboardCacheMiss) {
			logger.AccessLogger.Warn("Leaderboard cache read failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}

	entries, err := uc.gameStateRepository.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	if uc.leaderboardCache != nil {
		if err := uc.leaderboardCache.SetLeaderboard(ctx, limit, entries); err != nil {
			logger.AccessLogger.Warn("Leaderboard cache write failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}

	return entries, nil
}
