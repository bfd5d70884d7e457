package domain

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	UUID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:uuid" json:"id"`
	Username          string         `gorm:"type:varchar(50);unique;not null;column:username" json:"username"`
	Email             string         `gorm:"type:varchar(100);unique;not null;column:email" json:"email"`
	Password          string         `gorm:"type:varchar(255);not null;column:password" json:"-"`
	FirstName         string         `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName          string         `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	AvatarURL         string         `gorm:"type:varchar(255);column:avatar_url" json:"avatarUrl,omitempty"`
	PreferredLanguage string         `gorm:"type:varchar(10);default:'es';column:preferred_language" json:"preferredLanguage"`
	Timezone          string         `gorm:"type:varchar(50);default:'UTC';column:timezone" json:"timezone"`
	TotalPoints       int            `gorm:"type:int;default:0;not null;column:total_points" json:"totalPoints"`
	CurrentStreak     int            `gorm:"type:int;default:0;not null;column:current_streak" json:"currentStreak"`
	MaxStreak         int            `gorm:"type:int;default:0;not null;column:max_streak" json:"maxStreak"`
	DailyLives        int            `gorm:"type:int;default:5;not null;column:daily_lives" json:"dailyLives"`
	LivesResetDate    time.Time      `gorm:"type:date;not null;column:lives_reset_date" json:"livesResetDate"`
	Active            bool           `gorm:"default:true;not null;column:active" json:"active"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName falls back to the username when no name parts are set.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

type RegisterRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
	Timezone          string `json:"timezone,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfilePatch carries the optional profile fields of PUT /users/me.
// A nil field was omitted from the request and must stay untouched.
type ProfilePatch struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	AvatarURL         *string `json:"avatarUrl,omitempty"`
	PreferredLanguage *string `json:"preferredLanguage,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
}

type ProfileResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName,omitempty"`
	LastName          string    `json:"lastName,omitempty"`
	FullName          string    `json:"fullName"`
	AvatarURL         string    `json:"avatarUrl,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage"`
	Timezone          string    `json:"timezone"`
	Stats             GameStats `json:"gameStats"`
}

func (u *User) Profile() ProfileResponse {
	return ProfileResponse{
		ID:                u.UUID,
		Username:          u.Username,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		AvatarURL:         u.AvatarURL,
		PreferredLanguage: u.PreferredLanguage,
		Timezone:          u.Timezone,
		Stats:             u.GameStats(),
	}
}

type AuthRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByUUID(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*User, error)
	DeactivateUser(ctx context.Context, userID string) error
}
