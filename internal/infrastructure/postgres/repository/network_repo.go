package repository

import (
	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNetworkRepository struct {
	DB *gorm.DB
}

func NewDefaultNetworkRepository(db *gorm.DB) *DefaultNetworkRepository {
	return &DefaultNetworkRepository{DB: db}
}

func (r *DefaultNetworkRepository) GetUplineChain(agentID uint) ([]*domain.NetworkEdge, error) {
	var edgeModels []models.NetworkEdgeModel
	if err := r.DB.Where("agent_id = ?", agentID).
		Order("level ASC").
		Find(&edgeModels).Error; err != nil {
		return nil, err
	}

	edges := make([]*domain.NetworkEdge, len(edgeModels))
	for i, model := range edgeModels {
		edges[i] = mappers.ToDomainNetworkEdge(&model)
	}
	return edges, nil
}

func (r *DefaultNetworkRepository) GetDownlineAtLevel(ancestorID uint, level int) ([]*domain.Agent, error) {
	var agentModels []models.AgentModel
	if err := r.DB.
		Joins("JOIN network_edges ON network_edges.agent_id = agents.id").
		Where("network_edges.ancestor_id = ? AND network_edges.level = ?", ancestorID, level).
		Order("agents.id ASC").
		Find(&agentModels).Error; err != nil {
		return nil, err
	}

	agents := make([]*domain.Agent, len(agentModels))
	for i, model := range agentModels {
		agents[i] = mappers.ToDomainAgent(&model)
	}
	return agents, nil
}

func (r *DefaultNetworkRepository) CountDownlines(ancestorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.NetworkEdgeModel{}).
		Where("ancestor_id = ?", ancestorID).
		Count(&count).Error
	return count, err
}
