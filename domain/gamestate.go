package domain

import (
	"context"
	"errors"
	"time"
)

// MaxDailyLives is the per-day attempt allowance every account is refilled to.
const MaxDailyLives = 5

var (
	ErrNoLivesRemaining     = errors.New("no lives remaining")
	ErrLeaderboardCacheMiss = errors.New("leaderboard cache miss")
)

// GameStats is the read-only gamification projection returned to handlers.
type GameStats struct {
	TotalPoints    int       `json:"totalPoints"`
	CurrentStreak  int       `json:"currentStreak"`
	MaxStreak      int       `json:"maxStreak"`
	DailyLives     int       `json:"dailyLives"`
	LivesResetDate time.Time `json:"livesResetDate"`
}

// GameStatsPatch is a trusted bulk overwrite: every non-nil field replaces the
// stored value as-is, nil fields stay untouched. Unlike UpdateStreak it does
// not re-derive maxStreak from currentStreak.
type GameStatsPatch struct {
	TotalPoints   *int `json:"totalPoints,omitempty"`
	CurrentStreak *int `json:"currentStreak,omitempty"`
	MaxStreak     *int `json:"maxStreak,omitempty"`
	DailyLives    *int `json:"dailyLives,omitempty"`
}

func (p GameStatsPatch) IsEmpty() bool {
	return p.TotalPoints == nil && p.CurrentStreak == nil && p.MaxStreak == nil && p.DailyLives == nil
}

type LeaderboardEntry struct {
	Position      int    `json:"position"`
	UserID        string `json:"id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	TotalPoints   int    `json:"totalPoints"`
	CurrentStreak int    `json:"currentStreak"`
	MaxStreak     int    `json:"maxStreak"`
}

// PointsRequest carries the signed delta of POST /users/me/points.
type PointsRequest struct {
	Points *int `json:"points"`
}

// StreakRequest carries the replacement value of PUT /users/me/streak.
type StreakRequest struct {
	CurrentStreak *int `json:"currentStreak"`
}

// NormalizeDate strips the time component; lives bookkeeping works in whole
// calendar days as observed by the caller's clock.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SecondsUntilLivesReset reports how long until the next calendar day starts,
// used as the retry hint when an account runs out of lives.
func SecondsUntilLivesReset(now time.Time) int {
	next := NormalizeDate(now).AddDate(0, 0, 1)
	return int(next.Sub(now.UTC()).Seconds())
}

// RefreshDailyLives refills the life counter when the stored reset date is not
// the caller's current date. Reports whether the record changed, so callers
// can skip the write when the state was already current.
func (u *User) RefreshDailyLives(today time.Time) bool {
	today = NormalizeDate(today)
	if NormalizeDate(u.LivesResetDate).Equal(today) {
		return false
	}
	u.DailyLives = MaxDailyLives
	u.LivesResetDate = today
	return true
}

// SpendLife consumes one life for today, refilling first if the stored state
// is from an earlier date. Returns ErrNoLivesRemaining when today's lives are
// exhausted; the record is left unchanged in that case.
func (u *User) SpendLife(today time.Time) error {
	u.RefreshDailyLives(today)
	if u.DailyLives <= 0 {
		return ErrNoLivesRemaining
	}
	u.DailyLives--
	return nil
}

// AddPoints applies a signed delta, never letting the total drop below zero.
func (u *User) AddPoints(delta int) {
	u.TotalPoints += delta
	if u.TotalPoints < 0 {
		u.TotalPoints = 0
	}
}

// SetStreak replaces the current streak and raises the historical maximum when
// the new value exceeds it. The maximum never decreases.
func (u *User) SetStreak(streak int) {
	if streak < 0 {
		streak = 0
	}
	u.CurrentStreak = streak
	if u.CurrentStreak > u.MaxStreak {
		u.MaxStreak = u.CurrentStreak
	}
}

// ApplyStatsPatch overwrites exactly the fields present in the patch.
func (u *User) ApplyStatsPatch(patch GameStatsPatch) {
	if patch.TotalPoints != nil {
		u.TotalPoints = *patch.TotalPoints
	}
	if patch.CurrentStreak != nil {
		u.CurrentStreak = *patch.CurrentStreak
	}
	if patch.MaxStreak != nil {
		u.MaxStreak = *patch.MaxStreak
	}
	if patch.DailyLives != nil {
		u.DailyLives = *patch.DailyLives
	}
}

func (u *User) GameStats() GameStats {
	return GameStats{
		TotalPoints:    u.TotalPoints,
		CurrentStreak:  u.CurrentStreak,
		MaxStreak:      u.MaxStreak,
		DailyLives:     u.DailyLives,
		LivesResetDate: u.LivesResetDate,
	}
}

type GameStateRepository interface {
	GetGameState(ctx context.Context, userID string, today time.Time) (GameStats, error)
	ResetDailyLives(ctx context.Context, userID string, today time.Time) (GameStats, error)
	ConsumeLife(ctx context.Context, userID string, today time.Time) (GameStats, error)
	UpdatePoints(ctx context.Context, userID string, delta int) (GameStats, error)
	UpdateStreak(ctx context.Context, userID string, streak int) (GameStats, error)
	ApplyGameStatsPatch(ctx context.Context, userID string, patch GameStatsPatch) (GameStats, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// LeaderboardCache is an optional read-through cache in front of
// GameStateRepository.Leaderboard. Implementations return
// ErrLeaderboardCacheMiss when no fresh entry exists.
type LeaderboardCache interface {
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	SetLeaderboard(ctx context.Context, limit int, entries []LeaderboardEntry) error
}
