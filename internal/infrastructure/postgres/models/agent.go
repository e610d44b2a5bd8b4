package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AgentModel struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	UserID            uint            `gorm:"uniqueIndex;not null"`
	AgentCode         string          `gorm:"uniqueIndex;size:20;not null"`
	FullName          string          `gorm:"not null"`
	Phone             string          `gorm:"size:20"`
	Email             string          `gorm:"size:100"`
	Province          string          `gorm:"not null"`
	City              string
	BankAccountNumber string          `gorm:"size:50"`
	BankAccountName   string
	BankCode          string          `gorm:"size:10"`
	SponsorID         *uint           `gorm:"index"`
	PackageTier       string          `gorm:"size:20;not null;default:SILVER"`
	Rank              string          `gorm:"size:30;not null;default:AGEN"`
	Type              string          `gorm:"size:20;not null;default:AGEN"`
	StockBoxes        int             `gorm:"not null;default:0"`
	TotalCommission   decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	PayableBalance    decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	ReferralCode      string          `gorm:"size:30"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (AgentModel) TableName() string {
	return "agents"
}
