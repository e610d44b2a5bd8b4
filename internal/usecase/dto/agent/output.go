package agentdto

import "github.com/herbamart/network-service/internal/domain"

type RegisterAgentOutput struct {
	*domain.Agent
	ReferralLink string
}

type UplineEntry struct {
	Agent *domain.Agent
	Level int
}
