package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointpal/internal/domain"
)

func newUser(email, code string, points int) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test",
		PasswordHash: "hash",
		ReferralCode: code,
		Points:       points,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryUserRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@example.com", "AAA111", 0)))

	err := repo.Create(ctx, newUser("A@Example.com", "BBB222", 0))
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists, "email uniqueness is case-insensitive")

	err = repo.Create(ctx, newUser("b@example.com", "AAA111", 0))
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists, "referral codes are unique")
}

func TestMemoryUserRepositoryLookups(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := newUser("find@example.com", "FIN123", 7)
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, "FIND@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byCode, err := repo.GetByReferralCode(ctx, "fin123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byCode.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Reading twice without an intervening mutation yields identical records,
// and mutating a returned copy never leaks into the store.
func TestMemoryUserRepositoryStableReads(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := newUser("stable@example.com", "STA123", 42)
	require.NoError(t, repo.Create(ctx, u))

	first, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first.Points = 9999
	third, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, third.Points)
}

func TestSpendPointsGuard(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := newUser("spend@example.com", "SPE123", 30)
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SpendPoints(ctx, u.ID, 30))
	assert.ErrorIs(t, repo.SpendPoints(ctx, u.ID, 1), domain.ErrInsufficientPoints)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Points)

	assert.ErrorIs(t, repo.SpendPoints(ctx, uuid.New(), 1), domain.ErrUserNotFound)
}

func TestSpendPointsNeverGoesNegativeUnderConcurrency(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := newUser("race@example.com", "RAC123", 100)
	require.NoError(t, repo.Create(ctx, u))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.SpendPoints(ctx, u.ID, 10); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Points)
}

func TestMemoryReferralRepositorySingleReferralPerReferee(t *testing.T) {
	repo := NewMemoryReferralRepository()
	ctx := context.Background()

	referrer := uuid.New()
	referee := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Referral{
		ID: uuid.New(), ReferrerID: referrer, RefereeID: referee, PointsAwarded: 10,
	}))
	err := repo.Create(ctx, &domain.Referral{
		ID: uuid.New(), ReferrerID: uuid.New(), RefereeID: referee, PointsAwarded: 10,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyReferred)

	count, err := repo.CountByReferrer(ctx, referrer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryRedemptionRepositoryScopesByUser(t *testing.T) {
	repo := NewMemoryRedemptionRepository()
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.RewardRedemption{
			ID: uuid.New(), UserID: alice, RewardID: "1", PointsSpent: 30,
			Status: domain.RedemptionCompleted, CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.RewardRedemption{
		ID: uuid.New(), UserID: bob, RewardID: "2", PointsSpent: 100,
		Status: domain.RedemptionCompleted, CreatedAt: time.Now(),
	}))

	aliceList, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceList, 3)

	bobCount, err := repo.CountByUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobCount)
}
