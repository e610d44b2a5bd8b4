package mappers

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func ToGORMTransaction(trx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:               trx.ID,
		UserID:           trx.UserID,
		BuyerAgentID:     trx.BuyerAgentID,
		Kind:             string(trx.Kind),
		Amount:           trx.Amount,
		BoxCount:         trx.BoxCount,
		Status:           string(trx.Status),
		PaymentMethod:    trx.PaymentMethod,
		PaymentReference: trx.PaymentReference,
		Note:             trx.Note,
		CreatedAt:        trx.CreatedAt,
		UpdatedAt:        trx.UpdatedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:               model.ID,
		UserID:           model.UserID,
		BuyerAgentID:     model.BuyerAgentID,
		Kind:             domain.TransactionKind(model.Kind),
		Amount:           model.Amount,
		BoxCount:         model.BoxCount,
		Status:           domain.TransactionStatus(model.Status),
		PaymentMethod:    model.PaymentMethod,
		PaymentReference: model.PaymentReference,
		Note:             model.Note,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMUpgrade(upgrade *domain.Upgrade) *models.UpgradeModel {
	return &models.UpgradeModel{
		ID:            upgrade.ID,
		AgentID:       upgrade.AgentID,
		TransactionID: upgrade.TransactionID,
		Kind:          string(upgrade.Kind),
		FromTier:      string(upgrade.FromTier),
		ToTier:        string(upgrade.ToTier),
		BoxCount:      upgrade.BoxCount,
		Amount:        upgrade.Amount,
		CreatedAt:     upgrade.CreatedAt,
	}
}

func ToDomainUpgrade(model *models.UpgradeModel) *domain.Upgrade {
	return &domain.Upgrade{
		ID:            model.ID,
		AgentID:       model.AgentID,
		TransactionID: model.TransactionID,
		Kind:          domain.UpgradeKind(model.Kind),
		FromTier:      domain.PackageTier(model.FromTier),
		ToTier:        domain.PackageTier(model.ToTier),
		BoxCount:      model.BoxCount,
		Amount:        model.Amount,
		CreatedAt:     model.CreatedAt,
	}
}
