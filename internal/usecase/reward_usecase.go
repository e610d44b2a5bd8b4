package usecase

import (
	"fmt"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/metrics"
	"github.com/herbamart/network-service/internal/infrastructure/wablas"
	rewarddto "github.com/herbamart/network-service/internal/usecase/dto/reward"
)

type RewardUsecase interface {
	// ListRewards returns the active rewards whose required rank is at or
	// below the agent's rank. Already-claimed rewards stay in the list with
	// Claimed set so a dashboard can show claim progress; the claimable set
	// is the entries where Claimed is false. ClaimReward re-checks both
	// conditions at claim time.
	ListRewards(agentID uint) ([]*rewarddto.EligibleReward, error)
	ClaimReward(agentID, rewardID uint) (*domain.RewardClaim, error)
	ListClaims(agentID uint) ([]*domain.RewardClaim, error)
	UpdateClaimStatus(claimID uint, status domain.ClaimStatus) error
}

type DefaultRewardUsecase struct {
	rewardRepo domain.RewardRepository
	agentRepo  domain.AgentRepository
	notifier   *wablas.Notifier
	metrics    *metrics.NetworkMetrics
}

func NewDefaultRewardUsecase(
	rewardRepo domain.RewardRepository,
	agentRepo domain.AgentRepository,
	notifier *wablas.Notifier,
	m *metrics.NetworkMetrics,
) *DefaultRewardUsecase {
	return &DefaultRewardUsecase{
		rewardRepo: rewardRepo,
		agentRepo:  agentRepo,
		notifier:   notifier,
		metrics:    m,
	}
}

func (uc *DefaultRewardUsecase) ListRewards(agentID uint) ([]*rewarddto.EligibleReward, error) {
	agent, err := uc.agentRepo.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}
	rewards, err := uc.rewardRepo.ListActiveRewards()
	if err != nil {
		return nil, err
	}
	claims, err := uc.rewardRepo.ListClaimsByAgentID(agentID)
	if err != nil {
		return nil, err
	}
	claimByReward := make(map[uint]*domain.RewardClaim, len(claims))
	for _, claim := range claims {
		claimByReward[claim.RewardID] = claim
	}

	eligible := make([]*rewarddto.EligibleReward, 0, len(rewards))
	for _, reward := range rewards {
		if !agent.Rank.AtLeast(reward.RequiredRank) {
			continue
		}
		entry := &rewarddto.EligibleReward{Reward: reward}
		if claim, ok := claimByReward[reward.ID]; ok {
			entry.Claimed = true
			entry.ClaimStatus = claim.Status
		}
		eligible = append(eligible, entry)
	}
	return eligible, nil
}

func (uc *DefaultRewardUsecase) ClaimReward(agentID, rewardID uint) (*domain.RewardClaim, error) {
	agent, err := uc.agentRepo.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}
	reward, err := uc.rewardRepo.GetRewardByID(rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.Active {
		return nil, fmt.Errorf("%w: reward %q is no longer active", domain.ErrInvalidState, reward.Name)
	}
	if !agent.Rank.AtLeast(reward.RequiredRank) {
		return nil, fmt.Errorf("%w: reward %q requires rank %s, agent is %s", domain.ErrValidation, reward.Name, reward.RequiredRank, agent.Rank)
	}

	claim, err := uc.rewardRepo.CreateClaim(&domain.RewardClaim{
		AgentID:   agentID,
		RewardID:  rewardID,
		Status:    domain.ClaimPending,
		ClaimedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordRewardClaim(string(reward.RequiredRank))
	uc.notifier.NotifyRewardClaimed(agent, reward.Name)
	return claim, nil
}

func (uc *DefaultRewardUsecase) ListClaims(agentID uint) ([]*domain.RewardClaim, error) {
	return uc.rewardRepo.ListClaimsByAgentID(agentID)
}

func (uc *DefaultRewardUsecase) UpdateClaimStatus(claimID uint, status domain.ClaimStatus) error {
	switch status {
	case domain.ClaimPending, domain.ClaimAccepted, domain.ClaimRejected:
	default:
		return fmt.Errorf("%w: unknown claim status %q", domain.ErrValidation, status)
	}
	return uc.rewardRepo.UpdateClaimStatus(claimID, status)
}
