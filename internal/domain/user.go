package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSessionNotFound   = errors.New("session not found")
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	// ReferralCode is the code this user shares, shaped like "ASH123".
	ReferralCode string
	Points       int
	// ReferredBy holds the referral code used at signup, empty when none applied.
	ReferredBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserStats aggregates the dashboard counters for one user.
type UserStats struct {
	TotalPoints    int
	TotalReferrals int64
	TotalRewards   int64
}
