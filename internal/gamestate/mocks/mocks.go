package mocks

import (
	"context"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/mock"
	"lingua_backend/domain"
	"lingua_backend/internal/service/middleware"
	"time"
)

type MockGameStateUsecase struct {
	mock.Mock
}

func (m *MockGameStateUsecase) GetGameState(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) ResetDailyLives(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) ConsumeLife(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) AddPoints(ctx context.Context, userID string, delta int) (domain.GameStats, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) SetStreak(ctx context.Context, userID string, streak int) (domain.GameStats, error) {
	args := m.Called(ctx, userID, streak)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) UpdateGameStats(ctx context.Context, userID string, patch domain.GameStatsPatch) (domain.GameStats, error) {
	args := m.Called(ctx, userID, patch)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateUsecase) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGameStateRepository struct {
	mock.Mock
}

func (m *MockGameStateRepository) GetGameState(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) ResetDailyLives(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) ConsumeLife(ctx context.Context, userID string, today time.Time) (domain.GameStats, error) {
	args := m.Called(ctx, userID, today)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) UpdatePoints(ctx context.Context, userID string, delta int) (domain.GameStats, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) UpdateStreak(ctx context.Context, userID string, streak int) (domain.GameStats, error) {
	args := m.Called(ctx, userID, streak)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) ApplyGameStatsPatch(ctx context.Context, userID string, patch domain.GameStatsPatch) (domain.GameStats, error) {
	args := m.Called(ctx, userID, patch)
	return args.Get(0).(domain.GameStats), args.Error(1)
}

func (m *MockGameStateRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeaderboardCache) SetLeaderboard(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error {
	args := m.Called(ctx, limit, entries)
	return args.Error(0)
}

type MockJwtTokenService struct {
	mock.Mock
}

func (m *MockJwtTokenService) Create(userID string, tokenExpTime int64) (string, error) {
	args := m.Called(userID, tokenExpTime)
	return args.String(0), args.Error(1)
}

func (m *MockJwtTokenService) Validate(tokenString string) (*middleware.JwtClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) != nil {
		return args.Get(0).(*middleware.JwtClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJwtTokenService) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	args := m.Called(token)
	return args.Get(0), args.Error(1)
}
