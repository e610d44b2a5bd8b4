package domain

import "time"

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimAccepted ClaimStatus = "ACCEPTED"
	ClaimRejected ClaimStatus = "REJECTED"
)

type Reward struct {
	ID           uint
	Name         string
	RequiredRank Rank
	Description  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RewardClaim is unique per (agent, reward) regardless of status: an agent
// claims a given reward at most once.
type RewardClaim struct {
	ID        uint
	AgentID   uint
	RewardID  uint
	Status    ClaimStatus
	ClaimedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RewardRepository interface {
	ListActiveRewards() ([]*Reward, error)
	GetRewardByID(rewardID uint) (*Reward, error)
	ListClaimsByAgentID(agentID uint) ([]*RewardClaim, error)
	// CreateClaim inserts the claim; a duplicate (agent, reward) pair fails
	// with ErrRewardAlreadyClaimed.
	CreateClaim(claim *RewardClaim) (*RewardClaim, error)
	UpdateClaimStatus(claimID uint, status ClaimStatus) error
}
