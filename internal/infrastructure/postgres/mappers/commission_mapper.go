package mappers

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func ToGORMScheduleEntry(entry *domain.ScheduleEntry) *models.ScheduleEntryModel {
	var tier *string
	if entry.PackageTier != nil {
		t := string(*entry.PackageTier)
		tier = &t
	}
	return &models.ScheduleEntryModel{
		ID:          entry.ID,
		Kind:        string(entry.Kind),
		PackageTier: tier,
		Level:       entry.Level,
		Nominal:     entry.Nominal,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func ToDomainScheduleEntry(model *models.ScheduleEntryModel) *domain.ScheduleEntry {
	var tier *domain.PackageTier
	if model.PackageTier != nil {
		t := domain.PackageTier(*model.PackageTier)
		tier = &t
	}
	return &domain.ScheduleEntry{
		ID:          model.ID,
		Kind:        domain.CommissionKind(model.Kind),
		PackageTier: tier,
		Level:       model.Level,
		Nominal:     model.Nominal,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMCommissionEntry(entry *domain.CommissionEntry) *models.CommissionEntryModel {
	return &models.CommissionEntryModel{
		ID:            entry.ID,
		AgentID:       entry.AgentID,
		TransactionID: entry.TransactionID,
		Level:         entry.Level,
		Kind:          string(entry.Kind),
		Nominal:       entry.Nominal,
		Status:        string(entry.Status),
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

func ToDomainCommissionEntry(model *models.CommissionEntryModel) *domain.CommissionEntry {
	return &domain.CommissionEntry{
		ID:            model.ID,
		AgentID:       model.AgentID,
		TransactionID: model.TransactionID,
		Level:         model.Level,
		Kind:          domain.CommissionKind(model.Kind),
		Nominal:       model.Nominal,
		Status:        domain.CommissionStatus(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
