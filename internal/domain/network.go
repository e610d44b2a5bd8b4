package domain

import "time"

// NetworkEdge states that AncestorID is an ancestor of AgentID at the given
// level distance. Edges are written once at registration and never mutated:
// the chain for a new agent is the sponsor's chain shifted by one level plus
// the direct level-1 edge.
type NetworkEdge struct {
	ID         uint
	AgentID    uint
	AncestorID uint
	Level      int
	CreatedAt  time.Time
}

type NetworkRepository interface {
	// GetUplineChain returns the agent's ancestor edges ordered by ascending level.
	GetUplineChain(agentID uint) ([]*NetworkEdge, error)
	// GetDownlineAtLevel returns agents that sit exactly level steps below the ancestor.
	GetDownlineAtLevel(ancestorID uint, level int) ([]*Agent, error)
	CountDownlines(ancestorID uint) (int64, error)
}
