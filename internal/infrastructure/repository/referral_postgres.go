package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pointpal/internal/domain"
)

type ReferralModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	RefereeID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PointsAwarded int       `gorm:"not null"`
	CreatedAt     time.Time
}

func (ReferralModel) TableName() string {
	return "referrals"
}

func toDomainReferral(m *ReferralModel) domain.Referral {
	return domain.Referral{
		ID:            m.ID,
		ReferrerID:    m.ReferrerID,
		RefereeID:     m.RefereeID,
		PointsAwarded: m.PointsAwarded,
		CreatedAt:     m.CreatedAt,
	}
}

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create writes the referral record. The unique index on referee_id keeps
// a user from being referred more than once.
func (r *ReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	m := &ReferralModel{
		ID:            referral.ID,
		ReferrerID:    referral.ReferrerID,
		RefereeID:     referral.RefereeID,
		PointsAwarded: referral.PointsAwarded,
		CreatedAt:     referral.CreatedAt,
	}
	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyReferred
		}
		return result.Error
	}
	return nil
}

func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]domain.Referral, error) {
	var models []ReferralModel
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Referral, 0, len(models))
	for i := range models {
		out = append(out, toDomainReferral(&models[i]))
	}
	return out, nil
}

func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReferralModel{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}
