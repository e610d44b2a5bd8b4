package mappers

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func ToGORMAgent(agent *domain.Agent) *models.AgentModel {
	return &models.AgentModel{
		ID:                agent.ID,
		UserID:            agent.UserID,
		AgentCode:         agent.AgentCode,
		FullName:          agent.FullName,
		Phone:             agent.Phone,
		Email:             agent.Email,
		Province:          agent.Province,
		City:              agent.City,
		BankAccountNumber: agent.BankAccountNumber,
		BankAccountName:   agent.BankAccountName,
		BankCode:          agent.BankCode,
		SponsorID:         agent.SponsorID,
		PackageTier:       string(agent.PackageTier),
		Rank:              string(agent.Rank),
		Type:              string(agent.Type),
		StockBoxes:        agent.StockBoxes,
		TotalCommission:   agent.TotalCommission,
		PayableBalance:    agent.PayableBalance,
		ReferralCode:      agent.ReferralCode,
		CreatedAt:         agent.CreatedAt,
		UpdatedAt:         agent.UpdatedAt,
	}
}

func ToDomainAgent(model *models.AgentModel) *domain.Agent {
	return &domain.Agent{
		ID:                model.ID,
		UserID:            model.UserID,
		AgentCode:         model.AgentCode,
		FullName:          model.FullName,
		Phone:             model.Phone,
		Email:             model.Email,
		Province:          model.Province,
		City:              model.City,
		BankAccountNumber: model.BankAccountNumber,
		BankAccountName:   model.BankAccountName,
		BankCode:          model.BankCode,
		SponsorID:         model.SponsorID,
		PackageTier:       domain.PackageTier(model.PackageTier),
		Rank:              domain.Rank(model.Rank),
		Type:              domain.AgentType(model.Type),
		StockBoxes:        model.StockBoxes,
		TotalCommission:   model.TotalCommission,
		PayableBalance:    model.PayableBalance,
		ReferralCode:      model.ReferralCode,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToDomainNetworkEdge(model *models.NetworkEdgeModel) *domain.NetworkEdge {
	return &domain.NetworkEdge{
		ID:         model.ID,
		AgentID:    model.AgentID,
		AncestorID: model.AncestorID,
		Level:      model.Level,
		CreatedAt:  model.CreatedAt,
	}
}
