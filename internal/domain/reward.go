package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardUnavailable  = errors.New("reward unavailable")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Reward is a catalog item. The catalog is static and not user-mutable.
type Reward struct {
	ID          string
	Name        string
	Description string
	PointsCost  int
	ImageURL    string
	Available   bool
}

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

// RewardRedemption is the immutable ledger entry for one redemption.
// PointsSpent snapshots the reward's cost at redemption time.
type RewardRedemption struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RewardID    string
	PointsSpent int
	Status      RedemptionStatus
	CreatedAt   time.Time
}
