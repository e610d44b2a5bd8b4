package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionModel struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"`
	UserID           uint            `gorm:"not null;index"`
	BuyerAgentID     *uint           `gorm:"index"`
	Kind             string          `gorm:"size:20;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	BoxCount         int             `gorm:"not null;default:0"`
	Status           string          `gorm:"size:20;not null;default:PROCESSING;index"`
	PaymentMethod    string
	PaymentReference string
	Note             string
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

type UpgradeModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	AgentID       uint            `gorm:"not null;index"`
	TransactionID uint            `gorm:"not null;uniqueIndex"`
	Kind          string          `gorm:"size:30;not null"`
	FromTier      string          `gorm:"size:20;not null"`
	ToTier        string          `gorm:"size:20;not null"`
	BoxCount      int             `gorm:"not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	CreatedAt     time.Time
}

func (UpgradeModel) TableName() string {
	return "upgrades"
}
