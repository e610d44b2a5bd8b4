package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"

	"github.com/herbamart/network-service/internal/domain"
	publisher "github.com/herbamart/network-service/internal/infrastructure/kafka"
	"github.com/herbamart/network-service/internal/infrastructure/metrics"
	"github.com/herbamart/network-service/internal/infrastructure/wablas"
	agentdto "github.com/herbamart/network-service/internal/usecase/dto/agent"
)

type AgentUsecase interface {
	RegisterAgent(input *agentdto.RegisterAgentInput) (*agentdto.RegisterAgentOutput, error)
	GetAgentByID(agentID uint) (*domain.Agent, error)
	GetAgentByUserID(userID uint) (*domain.Agent, error)
	GetAgentByCode(agentCode string) (*domain.Agent, error)
	GetUplineChain(agentID uint) ([]*agentdto.UplineEntry, error)
	GetDownlineAtLevel(agentID uint, level int) ([]*domain.Agent, error)
	GetDashboardStats(agentID uint) (*domain.DashboardStats, error)
	UpdateRank(agentID uint, rank domain.Rank) error
	UpdateAgentType(agentID uint, agentType domain.AgentType) error
	// UpdateTier and AdjustStock are admin corrections; the regular path
	// for both is a transaction reaching DONE.
	UpdateTier(agentID uint, tier domain.PackageTier) error
	AdjustStock(agentID uint, boxes int) error
	DeleteAgent(agentID uint) error
}

type DefaultAgentUsecase struct {
	agentRepo       domain.AgentRepository
	networkRepo     domain.NetworkRepository
	events          *publisher.EventPublisher
	notifier        *wablas.Notifier
	metrics         *metrics.NetworkMetrics
	maxDepth        int
	referralBaseURL string
}

func NewDefaultAgentUsecase(
	agentRepo domain.AgentRepository,
	networkRepo domain.NetworkRepository,
	events *publisher.EventPublisher,
	notifier *wablas.Notifier,
	m *metrics.NetworkMetrics,
	maxDepth int,
	referralBaseURL string,
) *DefaultAgentUsecase {
	return &DefaultAgentUsecase{
		agentRepo:       agentRepo,
		networkRepo:     networkRepo,
		events:          events,
		notifier:        notifier,
		metrics:         m,
		maxDepth:        maxDepth,
		referralBaseURL: referralBaseURL,
	}
}

func (uc *DefaultAgentUsecase) RegisterAgent(input *agentdto.RegisterAgentInput) (*agentdto.RegisterAgentOutput, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	if !input.PackageTier.Valid() {
		return nil, fmt.Errorf("%w: unknown package tier %q", domain.ErrValidation, input.PackageTier)
	}
	phone, err := wablas.NormalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	if _, err := uc.agentRepo.GetAgentByUserID(input.UserID); err == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrUserAlreadyAgent, input.UserID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var sponsorID *uint
	if input.SponsorCode != "" {
		sponsor, err := uc.agentRepo.GetAgentByCode(input.SponsorCode)
		if err != nil {
			return nil, fmt.Errorf("resolving sponsor %q: %w", input.SponsorCode, err)
		}
		sponsorID = &sponsor.ID
	}

	referralGen, err := nanoid.Standard(10)
	if err != nil {
		return nil, err
	}

	provinceCode := domain.ProvinceCode(input.Province)
	codePrefix := fmt.Sprintf("%s-%s", provinceCode, time.Now().Format("06"))

	agent := &domain.Agent{
		UserID:            input.UserID,
		FullName:          input.FullName,
		Phone:             phone,
		Email:             input.Email,
		Province:          input.Province,
		City:              input.City,
		BankAccountNumber: input.BankAccountNumber,
		BankAccountName:   input.BankAccountName,
		BankCode:          input.BankCode,
		SponsorID:         sponsorID,
		PackageTier:       input.PackageTier,
		Rank:              domain.RankAgen,
		Type:              domain.AgentTypeAgen,
		ReferralCode:      referralGen(),
	}

	created, err := uc.agentRepo.CreateAgentWithNetwork(agent, codePrefix, uc.maxDepth)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordAgentRegistered(provinceCode, string(created.PackageTier))
	if err := uc.events.PublishAgentRegistered(publisher.AgentRegisteredEvent{
		AgentID:   created.ID,
		AgentCode: created.AgentCode,
		SponsorID: created.SponsorID,
		Province:  created.Province,
		Tier:      string(created.PackageTier),
		CreatedAt: created.CreatedAt,
	}); err != nil {
		slog.Error("failed to publish agent registered event", "agentID", created.ID, "error", err)
	}

	referralLink := fmt.Sprintf("%s/%s", uc.referralBaseURL, created.ReferralCode)
	uc.notifier.NotifyAgentRegistered(created, referralLink)

	return &agentdto.RegisterAgentOutput{Agent: created, ReferralLink: referralLink}, nil
}

func (uc *DefaultAgentUsecase) GetAgentByID(agentID uint) (*domain.Agent, error) {
	return uc.agentRepo.GetAgentByID(agentID)
}

func (uc *DefaultAgentUsecase) GetAgentByUserID(userID uint) (*domain.Agent, error) {
	return uc.agentRepo.GetAgentByUserID(userID)
}

func (uc *DefaultAgentUsecase) GetAgentByCode(agentCode string) (*domain.Agent, error) {
	return uc.agentRepo.GetAgentByCode(agentCode)
}

func (uc *DefaultAgentUsecase) GetUplineChain(agentID uint) ([]*agentdto.UplineEntry, error) {
	edges, err := uc.networkRepo.GetUplineChain(agentID)
	if err != nil {
		return nil, err
	}
	entries := make([]*agentdto.UplineEntry, 0, len(edges))
	for _, edge := range edges {
		ancestor, err := uc.agentRepo.GetAgentByID(edge.AncestorID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &agentdto.UplineEntry{Agent: ancestor, Level: edge.Level})
	}
	return entries, nil
}

func (uc *DefaultAgentUsecase) GetDownlineAtLevel(agentID uint, level int) ([]*domain.Agent, error) {
	if level < 1 || level > uc.maxDepth {
		return nil, fmt.Errorf("%w: level must be between 1 and %d", domain.ErrValidation, uc.maxDepth)
	}
	return uc.networkRepo.GetDownlineAtLevel(agentID, level)
}

// GetDashboardStats combines the agent-level rollup with the network
// repository's downline count.
func (uc *DefaultAgentUsecase) GetDashboardStats(agentID uint) (*domain.DashboardStats, error) {
	stats, err := uc.agentRepo.GetDashboardStats(agentID)
	if err != nil {
		return nil, err
	}
	total, err := uc.networkRepo.CountDownlines(agentID)
	if err != nil {
		return nil, err
	}
	stats.TotalDownlines = total
	return stats, nil
}

func (uc *DefaultAgentUsecase) UpdateRank(agentID uint, rank domain.Rank) error {
	if !rank.Valid() {
		return fmt.Errorf("%w: unknown rank %q", domain.ErrValidation, rank)
	}
	return uc.agentRepo.UpdateRank(agentID, rank)
}

func (uc *DefaultAgentUsecase) UpdateAgentType(agentID uint, agentType domain.AgentType) error {
	switch agentType {
	case domain.AgentTypeAgen, domain.AgentTypeStokis, domain.AgentTypeDistributor:
	default:
		return fmt.Errorf("%w: unknown agent type %q", domain.ErrValidation, agentType)
	}
	return uc.agentRepo.UpdateAgentType(agentID, agentType)
}

func (uc *DefaultAgentUsecase) UpdateTier(agentID uint, tier domain.PackageTier) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: unknown package tier %q", domain.ErrValidation, tier)
	}
	return uc.agentRepo.ApplyPackageUpgrade(agentID, tier)
}

func (uc *DefaultAgentUsecase) AdjustStock(agentID uint, boxes int) error {
	if boxes == 0 {
		return fmt.Errorf("%w: stock adjustment must be non-zero", domain.ErrValidation)
	}
	return uc.agentRepo.AddStock(agentID, boxes)
}

func (uc *DefaultAgentUsecase) DeleteAgent(agentID uint) error {
	return uc.agentRepo.DeleteAgentCascade(agentID)
}
