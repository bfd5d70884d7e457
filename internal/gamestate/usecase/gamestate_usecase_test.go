package usecase

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/gamestate/mocks"
	"lingua_backend/internal/service/logger"
	"testing"
	"time"
)

func TestGetGameState(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockGameStateRepository)
	uc := NewGameStateUsecase(mockRepo, nil)

	ctx := context.Background()
	userID := "user-uuid"
	today := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	expected := domain.GameStats{TotalPoints: 120, CurrentStreak: 3, MaxStreak: 7, DailyLives: 2, LivesResetDate: today}

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("GetGameState", ctx, userID, today).Return(expected, nil)

		stats, err := uc.GetGameState(ctx, userID, today)
		assert.NoError(t, err)
		assert.Equal(t, expected, stats)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		_, err := uc.GetGameState(ctx, "", today)
		assert.Error(t, err)
		assert.Equal(t, "missing user id", err.Error())
	})
}

func TestConsumeLife(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockGameStateRepository)
	uc := NewGameStateUsecase(mockRepo, nil)

	ctx := context.Background()
	userID := "user-uuid"
	today := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		expected := domain.GameStats{DailyLives: 4, LivesResetDate: today}
		mockRepo.On("ConsumeLife", ctx, userID, today).Return(expected, nil)

		stats, err := uc.ConsumeLife(ctx, userID, today)
		assert.NoError(t, err)
		assert.Equal(t, 4, stats.DailyLives)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No Lives Remaining", func(t *testing.T) {
		exhausted := "exhausted-uuid"
		mockRepo.On("ConsumeLife", ctx, exhausted, today).Return(domain.GameStats{}, domain.ErrNoLivesRemaining)

		_, err := uc.ConsumeLife(ctx, exhausted, today)
		assert.ErrorIs(t, err, domain.ErrNoLivesRemaining)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		_, err := uc.ConsumeLife(ctx, "", today)
		assert.Error(t, err)
		assert.Equal(t, "missing user id", err.Error())
	})
}

func TestAddPoints(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockGameStateRepository)
	uc := NewGameStateUsecase(mockRepo, nil)

	ctx := context.Background()
	userID := "user-uuid"

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("UpdatePoints", ctx, userID, 50).Return(domain.GameStats{TotalPoints: 150}, nil)

		stats, err := uc.AddPoints(ctx, userID, 50)
		assert.NoError(t, err)
		assert.Equal(t, 150, stats.TotalPoints)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Negative Delta Passed Through", func(t *testing.T) {
		mockRepo.On("UpdatePoints", ctx, userID, -30).Return(domain.GameStats{TotalPoints: 0}, nil)

		stats, err := uc.AddPoints(ctx, userID, -30)
		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalPoints)
		mockRepo.AssertExpectations(t)
	})
}

func TestSetStreak(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockGameStateRepository)
	uc := NewGameStateUsecase(mockRepo, nil)

	ctx := context.Background()
	userID := "user-uuid"

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("UpdateStreak", ctx, userID, 6).Return(domain.GameStats{CurrentStreak: 6, MaxStreak: 6}, nil)

		stats, err := uc.SetStreak(ctx, userID, 6)
		assert.NoError(t, err)
		assert.Equal(t, 6, stats.CurrentStreak)
		assert.Equal(t, 6, stats.MaxStreak)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateGameStats(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockGameStateRepository)
	uc := NewGameStateUsecase(mockRepo, nil)

	ctx := context.Background()
	userID := "user-uuid"

	t.Run("Success", func(t *testing.T) {
		lives := 3
		patch := domain.GameStatsPatch{DailyLives: &lives}
		mockRepo.On("ApplyGameStatsPatch", ctx, userID, patch).Return(domain.GameStats{DailyLives: 3}, nil)

		stats, err := uc.UpdateGameStats(ctx, userID, patch)
		assert.NoError(t, err)
		assert.Equal(t, 3, stats.DailyLives)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Patch", func(t *testing.T) {
		_, err := uc.UpdateGameStats(ctx, userID, domain.GameStatsPatch{})
		assert.Error(t, err)
		assert.Equal(t, "no fields to update", err.Error())
	})

	t.Run("Negative Value", func(t *testing.T) {
		points := -10
		_, err := uc.UpdateGameStats(ctx, userID, domain.GameStatsPatch{TotalPoints: &points})
		assert.Error(t, err)
		assert.Equal(t, "game stats must not be negative", err.Error())
	})

	t.Run("Lives Above Maximum", func(t *testing.T) {
		lives := domain.MaxDailyLives + 1
		_, err := uc.UpdateGameStats(ctx, userID, domain.GameStatsPatch{DailyLives: &lives})
		assert.Error(t, err)
		assert.Equal(t, "daily lives exceed the maximum", err.Error())
	})

	t.Run("Missing User ID", func(t *testing.T) {
		lives := 3
		_, err := uc.UpdateGameStats(ctx, "", domain.GameStatsPatch{DailyLives: &lives})
		assert.Error(t, err)
		assert.Equal(t, "missing user id", err.Error())
	})
}

func TestLeaderboard(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	ctx := context.Background()

	entries := []domain.LeaderboardEntry{
		{Position: 1, Username: "alice", TotalPoints: 900},
		{Position: 2, Username: "bob", TotalPoints: 450},
	}

	t.Run("Success - Cache Hit", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		mockCache := new(mocks.MockLeaderboardCache)
		uc := NewGameStateUsecase(mockRepo, mockCache)

		mockCache.On("GetLeaderboard", ctx, 10).Return(entries, nil)

		result, err := uc.Leaderboard(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockRepo.AssertNotCalled(t, "Leaderboard")
		mockCache.AssertExpectations(t)
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		mockCache := new(mocks.MockLeaderboardCache)
		uc := NewGameStateUsecase(mockRepo, mockCache)

		mockCache.On("GetLeaderboard", ctx, 10).Return(nil, domain.ErrLeaderboardCacheMiss)
		mockRepo.On("Leaderboard", ctx, 10).Return(entries, nil)
		mockCache.On("SetLeaderboard", ctx, 10, entries).Return(nil)

		result, err := uc.Leaderboard(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Success - Without Cache", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		uc := NewGameStateUsecase(mockRepo, nil)

		mockRepo.On("Leaderboard", ctx, 10).Return(entries, nil)

		result, err := uc.Leaderboard(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Default Limit", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		uc := NewGameStateUsecase(mockRepo, nil)

		mockRepo.On("Leaderboard", ctx, defaultLeaderboardLimit).Return(entries, nil)

		_, err := uc.Leaderboard(ctx, 0)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Limit Clamped", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		uc := NewGameStateUsecase(mockRepo, nil)

		mockRepo.On("Leaderboard", ctx, maxLeaderboardLimit).Return(entries, nil)

		_, err := uc.Leaderboard(ctx, 5000)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail - Repository Error", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		uc := NewGameStateUsecase(mockRepo, nil)

		mockRepo.On("Leaderboard", ctx, 10).Return(nil, errors.New("failed to fetch leaderboard"))

		_, err := uc.Leaderboard(ctx, 10)
		assert.Error(t, err)
		assert.Equal(t, "failed to fetch leaderboard", err.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Cache Write Failure Ignored", func(t *testing.T) {
		mockRepo := new(mocks.MockGameStateRepository)
		mockCache := new(mocks.MockLeaderboardCache)
		uc := NewGameStateUsecase(mockRepo, mockCache)

		mockCache.On("GetLeaderboard", ctx, 10).Return(nil, domain.ErrLeaderboardCacheMiss)
		mockRepo.On("Leaderboard", ctx, 10).Return(entries, nil)
		mockCache.On("SetLeaderboard", ctx, 10, entries).Return(errors.New("redis down"))

		result, err := uc.Leaderboard(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})
}
