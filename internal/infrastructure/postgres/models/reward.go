package models

import "time"

type RewardModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	RequiredRank string `gorm:"size:30;not null"`
	Description  string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RewardModel) TableName() string {
	return "rewards"
}

type RewardClaimModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	AgentID   uint      `gorm:"not null;uniqueIndex:idx_claim_unique"`
	RewardID  uint      `gorm:"not null;uniqueIndex:idx_claim_unique"`
	Status    string    `gorm:"size:20;not null;default:PENDING"`
	ClaimedAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RewardClaimModel) TableName() string {
	return "reward_claims"
}
