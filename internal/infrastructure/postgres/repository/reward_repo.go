package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRewardRepository struct {
	DB *gorm.DB
}

func NewDefaultRewardRepository(db *gorm.DB) *DefaultRewardRepository {
	return &DefaultRewardRepository{DB: db}
}

func (r *DefaultRewardRepository) ListActiveRewards() ([]*domain.Reward, error) {
	var rewardModels []models.RewardModel
	if err := r.DB.Where("active = ?", true).
		Order("id ASC").
		Find(&rewardModels).Error; err != nil {
		return nil, err
	}

	rewards := make([]*domain.Reward, len(rewardModels))
	for i, model := range rewardModels {
		rewards[i] = mappers.ToDomainReward(&model)
	}
	return rewards, nil
}

func (r *DefaultRewardRepository) GetRewardByID(rewardID uint) (*domain.Reward, error) {
	var model models.RewardModel
	if err := r.DB.First(&model, rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reward %d", domain.ErrNotFound, rewardID)
		}
		return nil, err
	}
	return mappers.ToDomainReward(&model), nil
}

func (r *DefaultRewardRepository) ListClaimsByAgentID(agentID uint) ([]*domain.RewardClaim, error) {
	var claimModels []models.RewardClaimModel
	if err := r.DB.Where("agent_id = ?", agentID).
		Order("claimed_at DESC").
		Find(&claimModels).Error; err != nil {
		return nil, err
	}

	claims := make([]*domain.RewardClaim, len(claimModels))
	for i, model := range claimModels {
		claims[i] = mappers.ToDomainRewardClaim(&model)
	}
	return claims, nil
}

func (r *DefaultRewardRepository) CreateClaim(claim *domain.RewardClaim) (*domain.RewardClaim, error) {
	model := mappers.ToGORMRewardClaim(claim)
	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %w", domain.ErrConflict, domain.ErrRewardAlreadyClaimed)
		}
		return nil, err
	}
	return mappers.ToDomainRewardClaim(model), nil
}

func (r *DefaultRewardRepository) UpdateClaimStatus(claimID uint, status domain.ClaimStatus) error {
	result := r.DB.Model(&models.RewardClaimModel{}).
		Where("id = ?", claimID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reward claim %d", domain.ErrNotFound, claimID)
	}
	return nil
}
