package mappers

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func ToGORMReward(reward *domain.Reward) *models.RewardModel {
	return &models.RewardModel{
		ID:           reward.ID,
		Name:         reward.Name,
		RequiredRank: string(reward.RequiredRank),
		Description:  reward.Description,
		Active:       reward.Active,
		CreatedAt:    reward.CreatedAt,
		UpdatedAt:    reward.UpdatedAt,
	}
}

func ToDomainReward(model *models.RewardModel) *domain.Reward {
	return &domain.Reward{
		ID:           model.ID,
		Name:         model.Name,
		RequiredRank: domain.Rank(model.RequiredRank),
		Description:  model.Description,
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMRewardClaim(claim *domain.RewardClaim) *models.RewardClaimModel {
	return &models.RewardClaimModel{
		ID:        claim.ID,
		AgentID:   claim.AgentID,
		RewardID:  claim.RewardID,
		Status:    string(claim.Status),
		ClaimedAt: claim.ClaimedAt,
		CreatedAt: claim.CreatedAt,
		UpdatedAt: claim.UpdatedAt,
	}
}

func ToDomainRewardClaim(model *models.RewardClaimModel) *domain.RewardClaim {
	return &domain.RewardClaim{
		ID:        model.ID,
		AgentID:   model.AgentID,
		RewardID:  model.RewardID,
		Status:    domain.ClaimStatus(model.Status),
		ClaimedAt: model.ClaimedAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
