package application

import (
	"context"

	"github.com/google/uuid"

	"pointpal/internal/domain"
)

// UserRepository is the per-record user store. Implementations must keep
// email uniqueness case-insensitive and referral codes unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)
	// AddPoints credits delta to the user's balance.
	AddPoints(ctx context.Context, id uuid.UUID, delta int) error
	// SpendPoints debits cost only when the balance covers it, returning
	// domain.ErrInsufficientPoints otherwise. The check and the debit are
	// a single guarded update so the balance never goes negative under
	// concurrent callers.
	SpendPoints(ctx context.Context, id uuid.UUID, cost int) error
}

type ReferralRepository interface {
	// Create enforces at most one referral per referee.
	Create(ctx context.Context, referral *domain.Referral) error
	ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]domain.Referral, error)
	CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error)
}

type RedemptionRepository interface {
	Create(ctx context.Context, redemption *domain.RewardRedemption) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RewardRedemption, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// SessionStore holds the single "current user" snapshot per user, separate
// from the user collection. Deleting it logs the user out without touching
// the underlying record.
type SessionStore interface {
	Save(ctx context.Context, user *domain.User) error
	// Get returns domain.ErrSessionNotFound for absent or unreadable snapshots.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
