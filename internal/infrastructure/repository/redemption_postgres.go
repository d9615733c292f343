package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pointpal/internal/domain"
)

type RedemptionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	RewardID    string    `gorm:"not null;size:32"`
	PointsSpent int       `gorm:"not null"`
	Status      string    `gorm:"not null;size:16"`
	CreatedAt   time.Time
}

func (RedemptionModel) TableName() string {
	return "redemptions"
}

func toDomainRedemption(m *RedemptionModel) domain.RewardRedemption {
	return domain.RewardRedemption{
		ID:          m.ID,
		UserID:      m.UserID,
		RewardID:    m.RewardID,
		PointsSpent: m.PointsSpent,
		Status:      domain.RedemptionStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

type RedemptionRepository struct {
	db *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

func (r *RedemptionRepository) Create(ctx context.Context, redemption *domain.RewardRedemption) error {
	m := &RedemptionModel{
		ID:          redemption.ID,
		UserID:      redemption.UserID,
		RewardID:    redemption.RewardID,
		PointsSpent: redemption.PointsSpent,
		Status:      string(redemption.Status),
		CreatedAt:   redemption.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *RedemptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RewardRedemption, error) {
	var models []RedemptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.RewardRedemption, 0, len(models))
	for i := range models {
		out = append(out, toDomainRedemption(&models[i]))
	}
	return out, nil
}

func (r *RedemptionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RedemptionModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
