package mappers

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func ToGORMWithdrawal(req *domain.WithdrawalRequest) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:          req.ID,
		AgentID:     req.AgentID,
		Nominal:     req.Nominal,
		Status:      string(req.Status),
		TransferRef: req.TransferRef,
		Note:        req.Note,
		SubmittedAt: req.SubmittedAt,
		ProcessedAt: req.ProcessedAt,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		ID:          model.ID,
		AgentID:     model.AgentID,
		Nominal:     model.Nominal,
		Status:      domain.WithdrawalStatus(model.Status),
		TransferRef: model.TransferRef,
		Note:        model.Note,
		SubmittedAt: model.SubmittedAt,
		ProcessedAt: model.ProcessedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
