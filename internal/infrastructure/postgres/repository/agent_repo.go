package repository

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/mappers"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// codeAllocationAttempts bounds the retry loop for agent-code sequence
// allocation when concurrent registrations race on the same prefix.
const codeAllocationAttempts = 3

type DefaultAgentRepository struct {
	DB *gorm.DB
}

func NewDefaultAgentRepository(db *gorm.DB) *DefaultAgentRepository {
	return &DefaultAgentRepository{DB: db}
}

func (r *DefaultAgentRepository) CreateAgentWithNetwork(agent *domain.Agent, codePrefix string, maxDepth int) (*domain.Agent, error) {
	var created *models.AgentModel

	for attempt := 1; attempt <= codeAllocationAttempts; attempt++ {
		model := mappers.ToGORMAgent(agent)

		err := serializable(r.DB, func(tx *gorm.DB) error {
			seq, err := nextCodeSequence(tx, codePrefix)
			if err != nil {
				return err
			}
			model.AgentCode = fmt.Sprintf("%s%04d", codePrefix, seq)

			if agent.SponsorID != nil {
				var sponsor models.AgentModel
				if err := tx.First(&sponsor, *agent.SponsorID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: sponsor agent %d", domain.ErrNotFound, *agent.SponsorID)
					}
					return err
				}
			}

			if err := tx.Create(model).Error; err != nil {
				return err
			}

			return materializeNetwork(tx, model.ID, agent.SponsorID, maxDepth)
		})

		if err == nil {
			created = model
			break
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The duplicate may be the user_id index rather than a code
			// collision; only the latter is worth retrying.
			var count int64
			r.DB.Model(&models.AgentModel{}).Where("user_id = ?", agent.UserID).Count(&count)
			if count > 0 {
				return nil, fmt.Errorf("%w: %w", domain.ErrConflict, domain.ErrUserAlreadyAgent)
			}
			if attempt == codeAllocationAttempts {
				return nil, fmt.Errorf("%w: %w: prefix %s", domain.ErrConflict, domain.ErrAgentCodeCollision, codePrefix)
			}
			continue
		}
		if isSerializationFailure(err) && attempt < codeAllocationAttempts {
			continue
		}
		return nil, err
	}

	return mappers.ToDomainAgent(created), nil
}

// isSerializationFailure matches SQLSTATE 40001, which is how concurrent
// allocations abort under serializable isolation before ever reaching the
// unique index.
func isSerializationFailure(err error) bool {
	var state interface{ SQLState() string }
	if errors.As(err, &state) {
		return state.SQLState() == "40001"
	}
	return false
}

// nextCodeSequence scans existing agent codes for the prefix and returns
// max(sequence)+1. Runs inside the caller's transaction; a concurrent
// allocation of the same number is caught by the unique agent_code index.
func nextCodeSequence(tx *gorm.DB, prefix string) (int, error) {
	var codes []string
	if err := tx.Model(&models.AgentModel{}).
		Where("agent_code LIKE ?", prefix+"%").
		Pluck("agent_code", &codes).Error; err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, code := range codes {
		if len(code) != len(prefix)+4 {
			continue
		}
		seq, err := strconv.Atoi(code[len(prefix):])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	if maxSeq >= 9999 {
		return 0, fmt.Errorf("%w: sequence space exhausted for prefix %s", domain.ErrConflict, prefix)
	}
	return maxSeq + 1, nil
}

// materializeNetwork copies the sponsor's ancestor chain shifted one level
// down and adds the direct sponsor edge. Root agents get no edges.
func materializeNetwork(tx *gorm.DB, agentID uint, sponsorID *uint, maxDepth int) error {
	if sponsorID == nil {
		return nil
	}

	edges := []models.NetworkEdgeModel{{
		AgentID:    agentID,
		AncestorID: *sponsorID,
		Level:      1,
	}}

	var sponsorEdges []models.NetworkEdgeModel
	if err := tx.Where("agent_id = ?", *sponsorID).
		Order("level ASC").
		Find(&sponsorEdges).Error; err != nil {
		return err
	}
	for _, edge := range sponsorEdges {
		if edge.Level >= maxDepth {
			break
		}
		edges = append(edges, models.NetworkEdgeModel{
			AgentID:    agentID,
			AncestorID: edge.AncestorID,
			Level:      edge.Level + 1,
		})
	}

	return tx.Create(&edges).Error
}

func (r *DefaultAgentRepository) GetAgentByID(agentID uint) (*domain.Agent, error) {
	var model models.AgentModel
	if err := r.DB.First(&model, agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
		}
		return nil, err
	}
	return mappers.ToDomainAgent(&model), nil
}

func (r *DefaultAgentRepository) GetAgentByUserID(userID uint) (*domain.Agent, error) {
	var model models.AgentModel
	if err := r.DB.First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: agent for user %d", domain.ErrNotFound, userID)
		}
		return nil, err
	}
	return mappers.ToDomainAgent(&model), nil
}

func (r *DefaultAgentRepository) GetAgentByCode(agentCode string) (*domain.Agent, error) {
	var model models.AgentModel
	if err := r.DB.First(&model, "agent_code = ?", agentCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: agent %s", domain.ErrNotFound, agentCode)
		}
		return nil, err
	}
	return mappers.ToDomainAgent(&model), nil
}

func (r *DefaultAgentRepository) UpdateRank(agentID uint, rank domain.Rank) error {
	return r.updateColumn(agentID, "rank", string(rank))
}

func (r *DefaultAgentRepository) UpdateAgentType(agentID uint, agentType domain.AgentType) error {
	return r.updateColumn(agentID, "type", string(agentType))
}

func (r *DefaultAgentRepository) ApplyPackageUpgrade(agentID uint, to domain.PackageTier) error {
	return r.updateColumn(agentID, "package_tier", string(to))
}

func (r *DefaultAgentRepository) updateColumn(agentID uint, column string, value interface{}) error {
	result := r.DB.Model(&models.AgentModel{}).
		Where("id = ?", agentID).
		Updates(map[string]interface{}{column: value, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
	}
	return nil
}

func (r *DefaultAgentRepository) AddStock(agentID uint, boxes int) error {
	result := r.DB.Model(&models.AgentModel{}).
		Where("id = ?", agentID).
		Updates(map[string]interface{}{
			"stock_boxes": gorm.Expr("stock_boxes + ?", boxes),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
	}
	return nil
}

func (r *DefaultAgentRepository) DeleteAgentCascade(agentID uint) error {
	return serializable(r.DB, func(tx *gorm.DB) error {
		var model models.AgentModel
		if err := tx.First(&model, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: agent %d", domain.ErrNotFound, agentID)
			}
			return err
		}
		if err := tx.Where("agent_id = ? OR ancestor_id = ?", agentID, agentID).
			Delete(&models.NetworkEdgeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
}

// GetDashboardStats aggregates the per-tier and per-type downline breakdown
// plus the agent's balances. TotalDownlines belongs to the network
// repository; the usecase fills it in.
func (r *DefaultAgentRepository) GetDashboardStats(agentID uint) (*domain.DashboardStats, error) {
	agent, err := r.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalCommission: agent.TotalCommission,
		PayableBalance:  agent.PayableBalance,
	}

	downlines := r.DB.Model(&models.AgentModel{}).
		Joins("JOIN network_edges ON network_edges.agent_id = agents.id").
		Where("network_edges.ancestor_id = ?", agentID)

	tierCounts := []struct {
		column string
		value  string
		dest   *int64
	}{
		{"agents.package_tier", string(domain.TierSilver), &stats.SilverDownlines},
		{"agents.package_tier", string(domain.TierGold), &stats.GoldDownlines},
		{"agents.package_tier", string(domain.TierPlatinum), &stats.PlatinumDownlines},
		{"agents.type", string(domain.AgentTypeStokis), &stats.TotalStokis},
		{"agents.type", string(domain.AgentTypeDistributor), &stats.TotalDistributor},
	}
	for _, tc := range tierCounts {
		if err := downlines.Session(&gorm.Session{}).
			Where(tc.column+" = ?", tc.value).
			Count(tc.dest).Error; err != nil {
			return nil, err
		}
	}

	var pending decimal.NullDecimal
	if err := r.DB.Model(&models.WithdrawalModel{}).
		Select("SUM(nominal)").
		Where("agent_id = ? AND status IN (?)", agentID,
			[]string{string(domain.WithdrawalPending), string(domain.WithdrawalProcessing)}).
		Scan(&pending).Error; err != nil {
		return nil, err
	}
	if pending.Valid {
		stats.PendingWithdrawn = pending.Decimal
	}

	return stats, nil
}
