package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pointpal/internal/domain"
)

// In-memory implementations of the application stores, used by tests and
// by deployments without postgres. Each store guards its collection with a
// mutex so the balance and single-referral invariants hold under
// concurrent callers, and every read hands out copies.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
	order []uuid.UUID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.ReferralCode == user.ReferralCode {
			return domain.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryUserRepository) GetByReferralCode(_ context.Context, code string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.ReferralCode, code) {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryUserRepository) AddPoints(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Points += delta
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepository) SpendPoints(_ context.Context, id uuid.UUID, cost int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Points < cost {
		return domain.ErrInsufficientPoints
	}
	u.Points -= cost
	r.users[id] = u
	return nil
}

// List returns every user in insertion order. Test helper.
func (r *MemoryUserRepository) List() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out
}

type MemoryReferralRepository struct {
	mu        sync.RWMutex
	referrals []domain.Referral
}

func NewMemoryReferralRepository() *MemoryReferralRepository {
	return &MemoryReferralRepository{}
}

func (r *MemoryReferralRepository) Create(_ context.Context, referral *domain.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.referrals {
		if existing.RefereeID == referral.RefereeID {
			return domain.ErrAlreadyReferred
		}
	}
	r.referrals = append(r.referrals, *referral)
	return nil
}

func (r *MemoryReferralRepository) ListByReferrer(_ context.Context, referrerID uuid.UUID) ([]domain.Referral, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Referral, 0)
	for _, ref := range r.referrals {
		if ref.ReferrerID == referrerID {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (r *MemoryReferralRepository) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	list, err := r.ListByReferrer(ctx, referrerID)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

// Len returns the total number of referral records. Test helper.
func (r *MemoryReferralRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.referrals)
}

type MemoryRedemptionRepository struct {
	mu          sync.RWMutex
	redemptions []domain.RewardRedemption
}

func NewMemoryRedemptionRepository() *MemoryRedemptionRepository {
	return &MemoryRedemptionRepository{}
}

func (r *MemoryRedemptionRepository) Create(_ context.Context, redemption *domain.RewardRedemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redemptions = append(r.redemptions, *redemption)
	return nil
}

func (r *MemoryRedemptionRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.RewardRedemption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RewardRedemption, 0)
	for _, red := range r.redemptions {
		if red.UserID == userID {
			out = append(out, red)
		}
	}
	return out, nil
}

func (r *MemoryRedemptionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}
