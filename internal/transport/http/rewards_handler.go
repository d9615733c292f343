package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pointpal/internal/application"
	"pointpal/internal/domain"
	"pointpal/internal/middleware"
)

type rewardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost"`
	ImageURL    string `json:"image_url"`
	Available   bool   `json:"available"`
}

type redemptionResponse struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"reward_id"`
	PointsSpent int       `json:"points_spent"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type referralResponse struct {
	ID            string    `json:"id"`
	RefereeID     string    `json:"referee_id"`
	PointsAwarded int       `json:"points_awarded"`
	CreatedAt     time.Time `json:"created_at"`
}

type RewardsHandler struct {
	rewards *application.RewardsUseCase
}

func NewRewardsHandler(rewards *application.RewardsUseCase) *RewardsHandler {
	return &RewardsHandler{rewards: rewards}
}

func (h *RewardsHandler) List(c *gin.Context) {
	catalog := h.rewards.Catalog()
	out := make([]rewardResponse, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, rewardResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			PointsCost:  r.PointsCost,
			ImageURL:    r.ImageURL,
			Available:   r.Available,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rewards": out})
}

func (h *RewardsHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	redemption, err := h.rewards.Redeem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrRewardUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reward unavailable"})
		case errors.Is(err, domain.ErrInsufficientPoints):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient points"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"redemption": redemptionResponse{
		ID:          redemption.ID.String(),
		RewardID:    redemption.RewardID,
		PointsSpent: redemption.PointsSpent,
		Status:      string(redemption.Status),
		CreatedAt:   redemption.CreatedAt,
	}})
}

func (h *RewardsHandler) Redemptions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	list, err := h.rewards.Redemptions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]redemptionResponse, 0, len(list))
	for _, red := range list {
		out = append(out, redemptionResponse{
			ID:          red.ID.String(),
			RewardID:    red.RewardID,
			PointsSpent: red.PointsSpent,
			Status:      string(red.Status),
			CreatedAt:   red.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": out, "total": len(out)})
}

func (h *RewardsHandler) Referrals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	list, err := h.rewards.Referrals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]referralResponse, 0, len(list))
	for _, ref := range list {
		out = append(out, referralResponse{
			ID:            ref.ID.String(),
			RefereeID:     ref.RefereeID.String(),
			PointsAwarded: ref.PointsAwarded,
			CreatedAt:     ref.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"referrals": out, "total": len(out)})
}

func (h *RewardsHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	stats, err := h.rewards.Stats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_points":    stats.TotalPoints,
		"total_referrals": stats.TotalReferrals,
		"total_rewards":   stats.TotalRewards,
	})
}
