package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	AgentID     uint            `gorm:"not null;index"`
	Nominal     decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Status      string          `gorm:"size:20;not null;default:PENDING;index"`
	TransferRef string
	Note        string
	SubmittedAt time.Time `gorm:"not null"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (WithdrawalModel) TableName() string {
	return "withdrawal_requests"
}
