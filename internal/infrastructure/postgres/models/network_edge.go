package models

import "time"

type NetworkEdgeModel struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	AgentID    uint `gorm:"not null;uniqueIndex:idx_edge_triple;index:idx_edge_agent"`
	AncestorID uint `gorm:"not null;uniqueIndex:idx_edge_triple;index:idx_edge_ancestor"`
	Level      int  `gorm:"not null;uniqueIndex:idx_edge_triple"`
	CreatedAt  time.Time
}

func (NetworkEdgeModel) TableName() string {
	return "network_edges"
}
