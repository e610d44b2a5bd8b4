package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ScheduleEntryModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Kind        string          `gorm:"size:20;not null;uniqueIndex:idx_schedule_key"`
	PackageTier *string         `gorm:"size:20;uniqueIndex:idx_schedule_key"`
	Level       int             `gorm:"not null;uniqueIndex:idx_schedule_key"`
	Nominal     decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ScheduleEntryModel) TableName() string {
	return "commission_schedule"
}

type CommissionEntryModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	AgentID       uint            `gorm:"not null;uniqueIndex:idx_commission_unique;index:idx_commission_agent"`
	TransactionID uint            `gorm:"not null;uniqueIndex:idx_commission_unique;index:idx_commission_trx"`
	Level         int             `gorm:"not null;uniqueIndex:idx_commission_unique"`
	Kind          string          `gorm:"size:20;not null"`
	Nominal       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Status        string          `gorm:"size:20;not null;default:PENDING"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (CommissionEntryModel) TableName() string {
	return "commission_entries"
}
