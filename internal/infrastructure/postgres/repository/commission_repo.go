package repository

import (
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultCommissionRepository struct {
	DB *gorm.DB
}

func NewDefaultCommissionRepository(db *gorm.DB) *DefaultCommissionRepository {
	return &DefaultCommissionRepository{DB: db}
}

// SettleTransaction is the atomic unit of commission settlement: the
// existence check, every ledger insert and every balance increment commit
// or roll back together. Re-invocation for an already settled transaction
// is a no-op returning the existing entry count.
func (r *DefaultCommissionRepository) SettleTransaction(trxID uint, entries []*domain.CommissionEntry) (int, bool, error) {
	var count int
	var alreadySettled bool

	err := serializable(r.DB, func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.CommissionEntryModel{}).
			Where("transaction_id = ?", trxID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			count = int(existing)
			alreadySettled = true
			return nil
		}

		for _, entry := range entries {
			model := mappers.ToGORMCommissionEntry(entry)
			if err := tx.Create(model).Error; err != nil {
				return err
			}
			result := tx.Model(&models.AgentModel{}).
				Where("id = ?", entry.AgentID).
				Updates(map[string]interface{}{
					"total_commission": gorm.Expr("total_commission + ?", entry.Nominal),
					"payable_balance":  gorm.Expr("payable_balance + ?", entry.Nominal),
					"updated_at":       time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
		}
		count = len(entries)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return count, alreadySettled, nil
}

func (r *DefaultCommissionRepository) GetEntriesByAgentID(agentID uint) ([]*domain.CommissionEntry, error) {
	var entryModels []models.CommissionEntryModel
	if err := r.DB.Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainCommissionEntries(entryModels), nil
}

func (r *DefaultCommissionRepository) GetEntriesByTransactionID(trxID uint) ([]*domain.CommissionEntry, error) {
	var entryModels []models.CommissionEntryModel
	if err := r.DB.Where("transaction_id = ?", trxID).
		Order("level ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainCommissionEntries(entryModels), nil
}

// MarkEntriesPaid settles the agent's oldest PENDING entries against a
// confirmed withdrawal, stopping once the covered nominal reaches upTo.
func (r *DefaultCommissionRepository) MarkEntriesPaid(agentID uint, upTo decimal.Decimal) error {
	return serializable(r.DB, func(tx *gorm.DB) error {
		var pending []models.CommissionEntryModel
		if err := tx.Where("agent_id = ? AND status = ?", agentID, string(domain.CommissionPending)).
			Order("created_at ASC, id ASC").
			Find(&pending).Error; err != nil {
			return err
		}

		covered := decimal.Zero
		for _, entry := range pending {
			if covered.GreaterThanOrEqual(upTo) {
				break
			}
			if err := tx.Model(&models.CommissionEntryModel{}).
				Where("id = ?", entry.ID).
				Updates(map[string]interface{}{
					"status":     string(domain.CommissionPaid),
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
			covered = covered.Add(entry.Nominal)
		}
		return nil
	})
}

func toDomainCommissionEntries(entryModels []models.CommissionEntryModel) []*domain.CommissionEntry {
	entries := make([]*domain.CommissionEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = mappers.ToDomainCommissionEntry(&model)
	}
	return entries
}
