package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pointpal/internal/domain"
	"pointpal/internal/infrastructure/cache"
	"pointpal/internal/infrastructure/repository"
)

type rewardsEnv struct {
	users       *repository.MemoryUserRepository
	referrals   *repository.MemoryReferralRepository
	redemptions *repository.MemoryRedemptionRepository
	sessions    *cache.MemorySessionStore
	rewards     *RewardsUseCase
}

func newRewardsEnv(t *testing.T, catalog []domain.Reward) *rewardsEnv {
	t.Helper()
	env := &rewardsEnv{
		users:       repository.NewMemoryUserRepository(),
		referrals:   repository.NewMemoryReferralRepository(),
		redemptions: repository.NewMemoryRedemptionRepository(),
		sessions:    cache.NewMemorySessionStore(),
	}
	env.rewards = NewRewardsUseCase(env.users, env.referrals, env.redemptions, env.sessions, catalog, zap.NewNop().Sugar())
	return env
}

func TestRedeemExactBalance(t *testing.T) {
	env := newRewardsEnv(t, nil)
	ctx := context.Background()

	// "3" is Premium Account, 50 points.
	user := seedUser(t, env.users, "exact@example.com", "Exact", "EXA123", 50)

	redemption, err := env.rewards.Redeem(ctx, user.ID, "3")
	require.NoError(t, err)
	assert.Equal(t, domain.RedemptionCompleted, redemption.Status)
	assert.Equal(t, 50, redemption.PointsSpent)
	assert.Equal(t, "3", redemption.RewardID)

	updated, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Points)

	history, err := env.rewards.Redemptions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, redemption.ID, history[0].ID)
}

func TestRedeemInsufficientBalanceIsWriteFree(t *testing.T) {
	env := newRewardsEnv(t, nil)
	ctx := context.Background()

	user := seedUser(t, env.users, "poor@example.com", "Poor", "POO123", 29)

	_, err := env.rewards.Redeem(ctx, user.ID, "1") // costs 30
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	unchanged, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 29, unchanged.Points)

	count, err := env.rewards.TotalRedeemed(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedeemMissingOrUnavailableReward(t *testing.T) {
	catalog := []domain.Reward{
		{ID: "open", Name: "Open", PointsCost: 10, Available: true},
		{ID: "closed", Name: "Closed", PointsCost: 10, Available: false},
	}
	env := newRewardsEnv(t, catalog)
	ctx := context.Background()

	user := seedUser(t, env.users, "rich@example.com", "Rich", "RIC123", 1000)

	_, err := env.rewards.Redeem(ctx, user.ID, "nope")
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)

	_, err = env.rewards.Redeem(ctx, user.ID, "closed")
	assert.ErrorIs(t, err, domain.ErrRewardUnavailable)

	unchanged, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, unchanged.Points)
	count, err := env.rewards.TotalRedeemed(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedeemUnknownUser(t *testing.T) {
	env := newRewardsEnv(t, nil)

	_, err := env.rewards.Redeem(context.Background(), uuid.New(), "1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRedeemRefreshesLiveSession(t *testing.T) {
	env := newRewardsEnv(t, nil)
	ctx := context.Background()

	user := seedUser(t, env.users, "live@example.com", "Live", "LIV123", 80)
	require.NoError(t, env.sessions.Save(ctx, user))

	_, err := env.rewards.Redeem(ctx, user.ID, "3") // 50 points
	require.NoError(t, err)

	sess, err := env.sessions.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, sess.Points)
}

func TestRedeemLeavesAbsentSessionAbsent(t *testing.T) {
	env := newRewardsEnv(t, nil)
	ctx := context.Background()

	user := seedUser(t, env.users, "ghost@example.com", "Ghost", "GHO123", 80)

	_, err := env.rewards.Redeem(ctx, user.ID, "3")
	require.NoError(t, err)

	_, err = env.sessions.Get(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStatsAggregatesCounters(t *testing.T) {
	env := newRewardsEnv(t, nil)
	ctx := context.Background()

	referrer := seedUser(t, env.users, "stats@example.com", "Stats", "STA123", 130)
	refereeA := seedUser(t, env.users, "a@example.com", "A", "AAA123", 5)
	refereeB := seedUser(t, env.users, "b@example.com", "B", "BBB123", 5)

	for _, referee := range []*domain.User{refereeA, refereeB} {
		require.NoError(t, env.referrals.Create(ctx, &domain.Referral{
			ID:            uuid.New(),
			ReferrerID:    referrer.ID,
			RefereeID:     referee.ID,
			PointsAwarded: domain.ReferrerBonusPoints,
		}))
	}

	_, err := env.rewards.Redeem(ctx, referrer.ID, "1") // 30 points
	require.NoError(t, err)

	stats, err := env.rewards.Stats(ctx, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.TotalPoints)
	assert.Equal(t, int64(2), stats.TotalReferrals)
	assert.Equal(t, int64(1), stats.TotalRewards)

	count, err := env.rewards.ReferralCount(ctx, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCatalogIsACopy(t *testing.T) {
	env := newRewardsEnv(t, nil)

	catalog := env.rewards.Catalog()
	require.NotEmpty(t, catalog)
	catalog[0].Available = false

	again := env.rewards.Catalog()
	assert.True(t, again[0].Available)
}
