package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/herbamart/network-service/internal/domain"
	publisher "github.com/herbamart/network-service/internal/infrastructure/kafka"
	"github.com/herbamart/network-service/internal/infrastructure/metrics"
	"github.com/herbamart/network-service/internal/infrastructure/wablas"
)

type CommissionUsecase interface {
	// SettleCommissions fans the commission for a DONE transaction out to the
	// buyer's upline and returns the number of ledger entries written.
	// Calling it again for the same transaction is a no-op.
	SettleCommissions(trxID uint) (int, error)
	GetLedger(agentID uint) ([]*domain.CommissionEntry, error)
	GetEntriesByTransactionID(trxID uint) ([]*domain.CommissionEntry, error)
	GetSchedule(kind domain.CommissionKind) ([]*domain.ScheduleEntry, error)
	UpsertScheduleEntry(entry *domain.ScheduleEntry) error
}

type DefaultCommissionUsecase struct {
	commissionRepo domain.CommissionRepository
	scheduleRepo   domain.ScheduleRepository
	networkRepo    domain.NetworkRepository
	trxRepo        domain.TransactionRepository
	agentRepo      domain.AgentRepository
	events         *publisher.EventPublisher
	notifier       *wablas.Notifier
	metrics        *metrics.NetworkMetrics
	maxDepth       int
}

func NewDefaultCommissionUsecase(
	commissionRepo domain.CommissionRepository,
	scheduleRepo domain.ScheduleRepository,
	networkRepo domain.NetworkRepository,
	trxRepo domain.TransactionRepository,
	agentRepo domain.AgentRepository,
	events *publisher.EventPublisher,
	notifier *wablas.Notifier,
	m *metrics.NetworkMetrics,
	maxDepth int,
) *DefaultCommissionUsecase {
	return &DefaultCommissionUsecase{
		commissionRepo: commissionRepo,
		scheduleRepo:   scheduleRepo,
		networkRepo:    networkRepo,
		trxRepo:        trxRepo,
		agentRepo:      agentRepo,
		events:         events,
		notifier:       notifier,
		metrics:        m,
		maxDepth:       maxDepth,
	}
}

func (uc *DefaultCommissionUsecase) SettleCommissions(trxID uint) (int, error) {
	start := time.Now()

	trx, err := uc.trxRepo.GetTransactionByID(trxID)
	if err != nil {
		return 0, err
	}
	if trx.Status != domain.TxStatusDone {
		return 0, fmt.Errorf("%w: transaction %d is %s, commissions settle on DONE only", domain.ErrInvalidState, trxID, trx.Status)
	}

	kind, ok := domain.CommissionKindForTransaction(trx.Kind)
	if !ok {
		return 0, nil
	}
	if trx.BuyerAgentID == nil {
		return 0, nil
	}

	buyer, err := uc.agentRepo.GetAgentByID(*trx.BuyerAgentID)
	if err != nil {
		return 0, err
	}

	// Sponsor commissions depend on the purchased package; repeat-order and
	// upgrade commissions use a single tier-independent schedule.
	var tier *domain.PackageTier
	if kind == domain.CommissionSponsor {
		t := buyer.PackageTier
		tier = &t
	}

	chain, err := uc.networkRepo.GetUplineChain(buyer.ID)
	if err != nil {
		return 0, err
	}

	entries := make([]*domain.CommissionEntry, 0, len(chain))
	for _, edge := range chain {
		if edge.Level > uc.maxDepth {
			break
		}
		scheduled, err := uc.scheduleRepo.GetEntry(kind, tier, edge.Level)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if scheduled.Nominal.IsZero() {
			continue
		}
		entries = append(entries, &domain.CommissionEntry{
			AgentID:       edge.AncestorID,
			TransactionID: trxID,
			Kind:          kind,
			Level:         edge.Level,
			Nominal:       scheduled.Nominal,
			Status:        domain.CommissionPending,
		})
	}

	count, alreadySettled, err := uc.commissionRepo.SettleTransaction(trxID, entries)
	if err != nil {
		return 0, err
	}
	if alreadySettled {
		uc.metrics.RecordSettlementSkipped(string(kind))
		slog.Info("commissions already settled", "transactionID", trxID, "entries", count)
		return count, nil
	}

	for _, entry := range entries {
		uc.metrics.RecordCommissionEntry(string(kind), strconv.Itoa(entry.Level), entry.Nominal.InexactFloat64())
		if err := uc.events.PublishCommissionAccrued(publisher.CommissionAccruedEvent{
			AgentID:       entry.AgentID,
			TransactionID: trxID,
			Kind:          string(kind),
			Level:         entry.Level,
			Nominal:       entry.Nominal.StringFixed(2),
		}); err != nil {
			slog.Error("failed to publish commission event", "agentID", entry.AgentID, "transactionID", trxID, "error", err)
		}
		receiver, err := uc.agentRepo.GetAgentByID(entry.AgentID)
		if err != nil {
			slog.Error("failed to load commission receiver", "agentID", entry.AgentID, "error", err)
			continue
		}
		uc.notifier.NotifyCommissionAccrued(receiver, entry.Nominal, entry.Level, buyer.FullName)
	}

	uc.metrics.RecordSettlementDuration(string(kind), time.Since(start).Seconds())
	return count, nil
}

func (uc *DefaultCommissionUsecase) GetLedger(agentID uint) ([]*domain.CommissionEntry, error) {
	return uc.commissionRepo.GetEntriesByAgentID(agentID)
}

func (uc *DefaultCommissionUsecase) GetEntriesByTransactionID(trxID uint) ([]*domain.CommissionEntry, error) {
	return uc.commissionRepo.GetEntriesByTransactionID(trxID)
}

func (uc *DefaultCommissionUsecase) GetSchedule(kind domain.CommissionKind) ([]*domain.ScheduleEntry, error) {
	return uc.scheduleRepo.ListEntries(kind)
}

func (uc *DefaultCommissionUsecase) UpsertScheduleEntry(entry *domain.ScheduleEntry) error {
	switch entry.Kind {
	case domain.CommissionSponsor:
		if entry.PackageTier == nil || !entry.PackageTier.Valid() {
			return fmt.Errorf("%w: sponsor schedule entries require a package tier", domain.ErrValidation)
		}
	case domain.CommissionRepeatOrder, domain.CommissionUpgrade:
		if entry.PackageTier != nil {
			return fmt.Errorf("%w: %s schedule entries are tier-independent", domain.ErrValidation, entry.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown commission kind %q", domain.ErrValidation, entry.Kind)
	}
	if entry.Level < 1 || entry.Level > uc.maxDepth {
		return fmt.Errorf("%w: level must be between 1 and %d", domain.ErrValidation, uc.maxDepth)
	}
	if entry.Nominal.IsNegative() {
		return fmt.Errorf("%w: nominal must not be negative", domain.ErrValidation)
	}
	return uc.scheduleRepo.UpsertEntry(entry)
}
