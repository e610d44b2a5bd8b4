package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(trx *domain.Transaction) error {
	model := mappers.ToGORMTransaction(trx)
	if err := r.DB.Create(model).Error; err != nil {
		return err
	}
	trx.ID = model.ID
	trx.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultTransactionRepository) CreateTransactionWithUpgrade(trx *domain.Transaction, upgrade *domain.Upgrade) error {
	trxModel := mappers.ToGORMTransaction(trx)
	return serializable(r.DB, func(tx *gorm.DB) error {
		if err := tx.Create(trxModel).Error; err != nil {
			return err
		}
		upgrade.TransactionID = trxModel.ID
		upgradeModel := mappers.ToGORMUpgrade(upgrade)
		if err := tx.Create(upgradeModel).Error; err != nil {
			return err
		}
		trx.ID = trxModel.ID
		upgrade.ID = upgradeModel.ID
		return nil
	})
}

func (r *DefaultTransactionRepository) GetTransactionByID(trxID uint) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.First(&model, trxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", domain.ErrNotFound, trxID)
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetTransactionsByAgentID(agentID uint) ([]*domain.Transaction, error) {
	var trxModels []models.TransactionModel
	if err := r.DB.Where("buyer_agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&trxModels).Error; err != nil {
		return nil, err
	}

	trxs := make([]*domain.Transaction, len(trxModels))
	for i, model := range trxModels {
		trxs[i] = mappers.ToDomainTransaction(&model)
	}
	return trxs, nil
}

// AdvanceStatus performs a guarded status update: the WHERE clause on the
// previous status makes the transition itself the atomic unit, so two
// concurrent callers cannot both advance the same transaction.
func (r *DefaultTransactionRepository) AdvanceStatus(trxID uint, from, to domain.TransactionStatus) error {
	result := r.DB.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", trxID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.TransactionModel{}).Where("id = ?", trxID).Count(&count)
		if count == 0 {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, trxID)
		}
		return fmt.Errorf("%w: transaction %d is not in status %s", domain.ErrInvalidState, trxID, from)
	}
	return nil
}

// CompleteTransaction performs the terminal transition and its agent-side
// effects as one serializable unit: the guarded flip to DONE, the stock
// grant and the tier change all commit or roll back together. A failure
// leaves the transaction in its previous status so the advance can be
// retried.
func (r *DefaultTransactionRepository) CompleteTransaction(trxID uint, from domain.TransactionStatus, effects *domain.CompletionEffects) error {
	return serializable(r.DB, func(tx *gorm.DB) error {
		result := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status = ?", trxID, string(from)).
			Updates(map[string]interface{}{
				"status":     string(domain.TxStatusDone),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			tx.Model(&models.TransactionModel{}).Where("id = ?", trxID).Count(&count)
			if count == 0 {
				return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, trxID)
			}
			return fmt.Errorf("%w: transaction %d is not in status %s", domain.ErrInvalidState, trxID, from)
		}

		if effects == nil || effects.AgentID == 0 {
			return nil
		}
		updates := map[string]interface{}{"updated_at": time.Now()}
		if effects.Boxes > 0 {
			updates["stock_boxes"] = gorm.Expr("stock_boxes + ?", effects.Boxes)
		}
		if effects.NewTier != "" {
			updates["package_tier"] = string(effects.NewTier)
		}
		if len(updates) == 1 {
			return nil
		}
		agentResult := tx.Model(&models.AgentModel{}).
			Where("id = ?", effects.AgentID).
			Updates(updates)
		if agentResult.Error != nil {
			return agentResult.Error
		}
		if agentResult.RowsAffected == 0 {
			return fmt.Errorf("%w: agent %d", domain.ErrNotFound, effects.AgentID)
		}
		return nil
	})
}

func (r *DefaultTransactionRepository) GetUpgradeByTransactionID(trxID uint) (*domain.Upgrade, error) {
	var model models.UpgradeModel
	if err := r.DB.First(&model, "transaction_id = ?", trxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: upgrade for transaction %d", domain.ErrNotFound, trxID)
		}
		return nil, err
	}
	return mappers.ToDomainUpgrade(&model), nil
}
