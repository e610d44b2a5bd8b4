package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Rank string

const (
	RankAgen                    Rank = "AGEN"
	RankManager                 Rank = "MANAGER"
	RankExecutiveManager        Rank = "EXECUTIVE_MANAGER"
	RankDirector                Rank = "DIRECTOR"
	RankExecutiveDirector       Rank = "EXECUTIVE_DIRECTOR"
	RankSeniorExecutiveDirector Rank = "SENIOR_EXECUTIVE_DIRECTOR"
)

// rankOrder defines the total order used for reward eligibility.
var rankOrder = map[Rank]int{
	RankAgen:                    0,
	RankManager:                 1,
	RankExecutiveManager:        2,
	RankDirector:                3,
	RankExecutiveDirector:       4,
	RankSeniorExecutiveDirector: 5,
}

func (r Rank) Valid() bool {
	_, ok := rankOrder[r]
	return ok
}

// AtLeast reports whether r is equal to or above other in the rank order.
func (r Rank) AtLeast(other Rank) bool {
	return rankOrder[r] >= rankOrder[other]
}

type PackageTier string

const (
	TierSilver   PackageTier = "SILVER"
	TierGold     PackageTier = "GOLD"
	TierPlatinum PackageTier = "PLATINUM"
)

var tierOrder = map[PackageTier]int{
	TierSilver:   0,
	TierGold:     1,
	TierPlatinum: 2,
}

func (t PackageTier) Valid() bool {
	_, ok := tierOrder[t]
	return ok
}

func (t PackageTier) Below(other PackageTier) bool {
	return tierOrder[t] < tierOrder[other]
}

type AgentType string

const (
	AgentTypeAgen        AgentType = "AGEN"
	AgentTypeStokis      AgentType = "STOKIS"
	AgentTypeDistributor AgentType = "DISTRIBUTOR"
)

type Agent struct {
	ID                uint
	UserID            uint
	AgentCode         string
	FullName          string
	Phone             string
	Email             string
	Province          string
	City              string
	BankAccountNumber string
	BankAccountName   string
	BankCode          string
	SponsorID         *uint
	PackageTier       PackageTier
	Rank              Rank
	Type              AgentType
	StockBoxes        int
	TotalCommission   decimal.Decimal
	PayableBalance    decimal.Decimal
	ReferralCode      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type DashboardStats struct {
	TotalDownlines    int64
	SilverDownlines   int64
	GoldDownlines     int64
	PlatinumDownlines int64
	TotalStokis       int64
	TotalDistributor  int64
	TotalCommission   decimal.Decimal
	PayableBalance    decimal.Decimal
	PendingWithdrawn  decimal.Decimal
}

type AgentRepository interface {
	// CreateAgentWithNetwork assigns the next agent code for codePrefix,
	// inserts the agent row and materializes its upline edges from the
	// sponsor's chain, all in one transaction. maxDepth caps the edge level.
	CreateAgentWithNetwork(agent *Agent, codePrefix string, maxDepth int) (*Agent, error)
	GetAgentByID(agentID uint) (*Agent, error)
	GetAgentByUserID(userID uint) (*Agent, error)
	GetAgentByCode(agentCode string) (*Agent, error)
	UpdateRank(agentID uint, rank Rank) error
	UpdateAgentType(agentID uint, agentType AgentType) error
	AddStock(agentID uint, boxes int) error
	ApplyPackageUpgrade(agentID uint, to PackageTier) error
	// DeleteAgentCascade removes the agent together with every network edge
	// referencing it, either as the agent or as an ancestor.
	DeleteAgentCascade(agentID uint) error
	GetDashboardStats(agentID uint) (*DashboardStats, error)
}
