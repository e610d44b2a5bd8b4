package rewarddto

import "github.com/herbamart/network-service/internal/domain"

type EligibleReward struct {
	*domain.Reward
	Claimed     bool
	ClaimStatus domain.ClaimStatus
}
