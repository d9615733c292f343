package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pointpal/internal/domain"
)

// DefaultCatalog is the static reward catalog. It is not user-mutable.
var DefaultCatalog = []domain.Reward{
	{
		ID:          "1",
		Name:        "Free eBook",
		Description: "Download our exclusive eBook on digital marketing strategies",
		PointsCost:  30,
		ImageURL:    "/placeholder.svg",
		Available:   true,
	},
	{
		ID:          "2",
		Name:        "Amazon Coupon",
		Description: "$10 Amazon gift card to spend on anything you want",
		PointsCost:  100,
		ImageURL:    "/placeholder.svg",
		Available:   true,
	},
	{
		ID:          "3",
		Name:        "Premium Account",
		Description: "1 month of premium account access",
		PointsCost:  50,
		ImageURL:    "/placeholder.svg",
		Available:   true,
	},
	{
		ID:          "4",
		Name:        "Exclusive Webinar",
		Description: "Access to our exclusive webinar on growth hacking",
		PointsCost:  75,
		ImageURL:    "/placeholder.svg",
		Available:   true,
	},
}

type RewardsUseCase struct {
	users       UserRepository
	referrals   ReferralRepository
	redemptions RedemptionRepository
	sessions    SessionStore
	catalog     []domain.Reward
	log         *zap.SugaredLogger
}

func NewRewardsUseCase(
	users UserRepository,
	referrals ReferralRepository,
	redemptions RedemptionRepository,
	sessions SessionStore,
	catalog []domain.Reward,
	log *zap.SugaredLogger,
) *RewardsUseCase {
	if catalog == nil {
		catalog = DefaultCatalog
	}
	return &RewardsUseCase{
		users:       users,
		referrals:   referrals,
		redemptions: redemptions,
		sessions:    sessions,
		catalog:     catalog,
		log:         log,
	}
}

// Catalog returns the static reward list.
func (uc *RewardsUseCase) Catalog() []domain.Reward {
	out := make([]domain.Reward, len(uc.catalog))
	copy(out, uc.catalog)
	return out
}

func (uc *RewardsUseCase) findReward(id string) (domain.Reward, error) {
	for _, r := range uc.catalog {
		if r.ID == id {
			if !r.Available {
				return domain.Reward{}, domain.ErrRewardUnavailable
			}
			return r, nil
		}
	}
	return domain.Reward{}, domain.ErrRewardNotFound
}

// Redeem debits the reward's cost from the user's balance and appends a
// completed redemption whose PointsSpent snapshots the cost. The debit is
// guarded by the repository, so a balance below the cost fails without any
// write. A live session snapshot for the same user is refreshed afterwards.
func (uc *RewardsUseCase) Redeem(ctx context.Context, userID uuid.UUID, rewardID string) (*domain.RewardRedemption, error) {
	reward, err := uc.findReward(rewardID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := uc.users.SpendPoints(ctx, userID, reward.PointsCost); err != nil {
		return nil, err
	}

	redemption := &domain.RewardRedemption{
		ID:          uuid.New(),
		UserID:      userID,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsCost,
		Status:      domain.RedemptionCompleted,
		CreatedAt:   time.Now(),
	}
	if err := uc.redemptions.Create(ctx, redemption); err != nil {
		return nil, err
	}

	uc.refreshSession(ctx, userID)

	uc.log.Infow("reward redeemed", "user_id", userID, "reward_id", reward.ID, "points", reward.PointsCost)
	return redemption, nil
}

// refreshSession rewrites the session snapshot with the post-debit balance
// when one exists for the user. Losing the refresh leaves the session stale
// but the stores consistent, so failures are only logged.
func (uc *RewardsUseCase) refreshSession(ctx context.Context, userID uuid.UUID) {
	if _, err := uc.sessions.Get(ctx, userID); err != nil {
		return
	}
	fresh, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		uc.log.Warnw("session refresh: reload user", "user_id", userID, "error", err)
		return
	}
	if err := uc.sessions.Save(ctx, fresh); err != nil {
		uc.log.Warnw("session refresh: save", "user_id", userID, "error", err)
	}
}

// Redemptions returns the user's redemption history.
func (uc *RewardsUseCase) Redemptions(ctx context.Context, userID uuid.UUID) ([]domain.RewardRedemption, error) {
	return uc.redemptions.ListByUser(ctx, userID)
}

// TotalRedeemed returns how many rewards the user has redeemed.
func (uc *RewardsUseCase) TotalRedeemed(ctx context.Context, userID uuid.UUID) (int64, error) {
	return uc.redemptions.CountByUser(ctx, userID)
}

// Referrals returns the referral records where the user is the referrer.
func (uc *RewardsUseCase) Referrals(ctx context.Context, userID uuid.UUID) ([]domain.Referral, error) {
	return uc.referrals.ListByReferrer(ctx, userID)
}

// ReferralCount returns how many signups the user's code has attracted.
func (uc *RewardsUseCase) ReferralCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return uc.referrals.CountByReferrer(ctx, userID)
}

// Stats aggregates the user's dashboard counters.
func (uc *RewardsUseCase) Stats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	referred, err := uc.referrals.CountByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}
	redeemed, err := uc.redemptions.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.UserStats{
		TotalPoints:    user.Points,
		TotalReferrals: referred,
		TotalRewards:   redeemed,
	}, nil
}
