package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

// CreateRequest validates against the available balance inside the same
// transaction that inserts the PENDING row, so two concurrent requests
// cannot both pass the balance check against stale sums.
func (r *DefaultWithdrawalRepository) CreateRequest(req *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	model := mappers.ToGORMWithdrawal(req)

	err := serializable(r.DB, func(tx *gorm.DB) error {
		available, err := availableBalance(tx, req.AgentID)
		if err != nil {
			return err
		}
		if req.Nominal.GreaterThan(available) {
			return fmt.Errorf("%w: requested %s, available %s",
				domain.ErrInsufficientBalance, req.Nominal.StringFixed(2), available.StringFixed(2))
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainWithdrawal(model), nil
}

// availableBalance is the agent's payable balance minus every non-REJECTED
// withdrawal. Balances are never decremented on request creation, so failed
// requests naturally release nothing.
func availableBalance(tx *gorm.DB, agentID uint) (decimal.Decimal, error) {
	var agent models.AgentModel
	if err := tx.First(&agent, agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
		}
		return decimal.Zero, err
	}

	var withdrawn decimal.NullDecimal
	if err := tx.Model(&models.WithdrawalModel{}).
		Select("SUM(nominal)").
		Where("agent_id = ? AND status <> ?", agentID, string(domain.WithdrawalRejected)).
		Scan(&withdrawn).Error; err != nil {
		return decimal.Zero, err
	}

	available := agent.PayableBalance
	if withdrawn.Valid {
		available = available.Sub(withdrawn.Decimal)
	}
	return available, nil
}

func (r *DefaultWithdrawalRepository) AvailableBalance(agentID uint) (decimal.Decimal, error) {
	return availableBalance(r.DB, agentID)
}

func (r *DefaultWithdrawalRepository) GetRequestByID(requestID uint) (*domain.WithdrawalRequest, error) {
	var model models.WithdrawalModel
	if err := r.DB.First(&model, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: withdrawal request %d", domain.ErrNotFound, requestID)
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) GetRequestsByAgentID(agentID uint) ([]*domain.WithdrawalRequest, error) {
	var requestModels []models.WithdrawalModel
	if err := r.DB.Where("agent_id = ?", agentID).
		Order("submitted_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.WithdrawalRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = mappers.ToDomainWithdrawal(&model)
	}
	return requests, nil
}

// TransitionStatus is the guarded state-machine step: the WHERE clause on
// the current status makes double-dispatch impossible regardless of caller
// interleaving.
func (r *DefaultWithdrawalRepository) TransitionStatus(requestID uint, from []domain.WithdrawalStatus, next domain.WithdrawalStatus, note string) error {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	updates := map[string]interface{}{
		"status":     string(next),
		"updated_at": time.Now(),
	}
	if note != "" {
		updates["note"] = note
	}
	if next == domain.WithdrawalDone || next == domain.WithdrawalRejected {
		now := time.Now()
		updates["processed_at"] = &now
	}

	result := r.DB.Model(&models.WithdrawalModel{}).
		Where("id = ? AND status IN (?)", requestID, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.WithdrawalModel{}).Where("id = ?", requestID).Count(&count)
		if count == 0 {
			return fmt.Errorf("%w: withdrawal request %d", domain.ErrNotFound, requestID)
		}
		return fmt.Errorf("%w: withdrawal request %d is not in %v", domain.ErrInvalidState, requestID, from)
	}
	return nil
}

func (r *DefaultWithdrawalRepository) SetTransferRef(requestID uint, transferRef string) error {
	result := r.DB.Model(&models.WithdrawalModel{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"transfer_ref": transferRef,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: withdrawal request %d", domain.ErrNotFound, requestID)
	}
	return nil
}

func (r *DefaultWithdrawalRepository) ListByStatusOlderThan(status domain.WithdrawalStatus, cutoff time.Time) ([]*domain.WithdrawalRequest, error) {
	var requestModels []models.WithdrawalModel
	if err := r.DB.Where("status = ? AND updated_at < ?", string(status), cutoff).
		Order("updated_at ASC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.WithdrawalRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = mappers.ToDomainWithdrawal(&model)
	}
	return requests, nil
}
