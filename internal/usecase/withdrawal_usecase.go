package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	publisher "github.com/herbamart/network-service/internal/infrastructure/kafka"
	"github.com/herbamart/network-service/internal/infrastructure/metrics"
	"github.com/herbamart/network-service/internal/infrastructure/wablas"
	withdrawaldto "github.com/herbamart/network-service/internal/usecase/dto/withdrawal"
)

const reconcileInterval = time.Minute

type WithdrawalUsecase interface {
	RequestWithdrawal(input *withdrawaldto.RequestWithdrawalInput) (*withdrawaldto.RequestWithdrawalOutput, error)
	// DispatchWithdrawal moves a PENDING request to PROCESSING and sends the
	// bank transfer. A request already past PENDING cannot be dispatched again.
	DispatchWithdrawal(ctx context.Context, requestID uint) error
	ConfirmWithdrawal(requestID uint) error
	RejectWithdrawal(requestID uint, reason string) error
	GetRequestsByAgentID(agentID uint) ([]*domain.WithdrawalRequest, error)
	AvailableBalance(agentID uint) (decimal.Decimal, error)
	StartWorker(ctx context.Context)
}

type DefaultWithdrawalUsecase struct {
	withdrawalRepo domain.WithdrawalRepository
	commissionRepo domain.CommissionRepository
	agentRepo      domain.AgentRepository
	gateway        domain.TransferGateway
	events         *publisher.EventPublisher
	notifier       *wablas.Notifier
	metrics        *metrics.NetworkMetrics
	stuckAge       time.Duration
}

func NewDefaultWithdrawalUsecase(
	withdrawalRepo domain.WithdrawalRepository,
	commissionRepo domain.CommissionRepository,
	agentRepo domain.AgentRepository,
	gateway domain.TransferGateway,
	events *publisher.EventPublisher,
	notifier *wablas.Notifier,
	m *metrics.NetworkMetrics,
	stuckAge time.Duration,
) *DefaultWithdrawalUsecase {
	return &DefaultWithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		commissionRepo: commissionRepo,
		agentRepo:      agentRepo,
		gateway:        gateway,
		events:         events,
		notifier:       notifier,
		metrics:        m,
		stuckAge:       stuckAge,
	}
}

func (uc *DefaultWithdrawalUsecase) RequestWithdrawal(input *withdrawaldto.RequestWithdrawalInput) (*withdrawaldto.RequestWithdrawalOutput, error) {
	if !input.Nominal.IsPositive() {
		return nil, fmt.Errorf("%w: nominal must be positive", domain.ErrValidation)
	}
	agent, err := uc.agentRepo.GetAgentByID(input.AgentID)
	if err != nil {
		return nil, err
	}

	req, err := uc.withdrawalRepo.CreateRequest(&domain.WithdrawalRequest{
		AgentID:     input.AgentID,
		Nominal:     input.Nominal,
		Status:      domain.WithdrawalPending,
		SubmittedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordWithdrawal(string(req.Status), req.Nominal.InexactFloat64())
	uc.publishWithdrawal(req)
	uc.notifier.NotifyWithdrawalRequested(agent, req.Nominal)

	var fee decimal.Decimal
	if uc.gateway != nil {
		fee = uc.gateway.Fee(req.Nominal)
	}
	return &withdrawaldto.RequestWithdrawalOutput{WithdrawalRequest: req, Fee: fee}, nil
}

func (uc *DefaultWithdrawalUsecase) DispatchWithdrawal(ctx context.Context, requestID uint) error {
	req, err := uc.withdrawalRepo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	agent, err := uc.agentRepo.GetAgentByID(req.AgentID)
	if err != nil {
		return err
	}

	// The status guard makes the transition the dispatch lock: a second
	// dispatch of the same request fails here before any transfer is sent.
	if err := uc.withdrawalRepo.TransitionStatus(requestID, []domain.WithdrawalStatus{domain.WithdrawalPending}, domain.WithdrawalProcessing, ""); err != nil {
		return err
	}

	result, err := uc.gateway.Transfer(ctx, &domain.TransferRequest{
		IdempotencyKey: fmt.Sprintf("withdrawal-%d", req.ID),
		AccountNumber:  agent.BankAccountNumber,
		BankCode:       agent.BankCode,
		Amount:         req.Nominal,
		RecipientName:  agent.BankAccountName,
		Remark:         fmt.Sprintf("Komisi Herbamart %s", agent.AgentCode),
	})
	if err != nil {
		uc.metrics.RecordTransferError("transfer")
		note := fmt.Sprintf("transfer failed: %v", err)
		if trErr := uc.withdrawalRepo.TransitionStatus(requestID, []domain.WithdrawalStatus{domain.WithdrawalProcessing}, domain.WithdrawalRejected, note); trErr != nil {
			slog.Error("failed to reject withdrawal after transfer error", "requestID", requestID, "error", trErr)
		}
		uc.metrics.RecordWithdrawal(string(domain.WithdrawalRejected), req.Nominal.InexactFloat64())
		uc.notifier.NotifyWithdrawalRejected(agent, req.Nominal, "transfer gagal")
		return err
	}

	if err := uc.withdrawalRepo.SetTransferRef(requestID, result.TransferID); err != nil {
		return err
	}
	req.Status = domain.WithdrawalProcessing
	req.TransferRef = result.TransferID
	uc.publishWithdrawal(req)

	if result.Status == domain.TransferDone {
		return uc.ConfirmWithdrawal(requestID)
	}
	return nil
}

func (uc *DefaultWithdrawalUsecase) ConfirmWithdrawal(requestID uint) error {
	req, err := uc.withdrawalRepo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if err := uc.withdrawalRepo.TransitionStatus(requestID, []domain.WithdrawalStatus{domain.WithdrawalProcessing}, domain.WithdrawalDone, ""); err != nil {
		return err
	}
	if err := uc.commissionRepo.MarkEntriesPaid(req.AgentID, req.Nominal); err != nil {
		slog.Error("failed to mark commission entries paid", "requestID", requestID, "agentID", req.AgentID, "error", err)
	}

	uc.metrics.RecordWithdrawal(string(domain.WithdrawalDone), req.Nominal.InexactFloat64())
	req.Status = domain.WithdrawalDone
	uc.publishWithdrawal(req)

	if agent, err := uc.agentRepo.GetAgentByID(req.AgentID); err == nil {
		uc.notifier.NotifyWithdrawalDone(agent, req.Nominal)
	}
	return nil
}

func (uc *DefaultWithdrawalUsecase) RejectWithdrawal(requestID uint, reason string) error {
	req, err := uc.withdrawalRepo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	from := []domain.WithdrawalStatus{domain.WithdrawalPending, domain.WithdrawalProcessing}
	if err := uc.withdrawalRepo.TransitionStatus(requestID, from, domain.WithdrawalRejected, reason); err != nil {
		return err
	}

	uc.metrics.RecordWithdrawal(string(domain.WithdrawalRejected), req.Nominal.InexactFloat64())
	req.Status = domain.WithdrawalRejected
	req.Note = reason
	uc.publishWithdrawal(req)

	if agent, err := uc.agentRepo.GetAgentByID(req.AgentID); err == nil {
		uc.notifier.NotifyWithdrawalRejected(agent, req.Nominal, reason)
	}
	return nil
}

func (uc *DefaultWithdrawalUsecase) GetRequestsByAgentID(agentID uint) ([]*domain.WithdrawalRequest, error) {
	return uc.withdrawalRepo.GetRequestsByAgentID(agentID)
}

func (uc *DefaultWithdrawalUsecase) AvailableBalance(agentID uint) (decimal.Decimal, error) {
	return uc.withdrawalRepo.AvailableBalance(agentID)
}

// ReconcileStuck polls the transfer gateway for PROCESSING requests that have
// not moved within the configured age and resolves them either way.
func (uc *DefaultWithdrawalUsecase) ReconcileStuck(ctx context.Context) error {
	cutoff := time.Now().Add(-uc.stuckAge)
	stuck, err := uc.withdrawalRepo.ListByStatusOlderThan(domain.WithdrawalProcessing, cutoff)
	if err != nil {
		return err
	}
	for _, req := range stuck {
		if req.TransferRef == "" {
			if err := uc.RejectWithdrawal(req.ID, "no transfer reference recorded"); err != nil {
				slog.Error("failed to reject stuck withdrawal", "requestID", req.ID, "error", err)
			}
			continue
		}
		status, err := uc.gateway.CheckStatus(ctx, req.TransferRef)
		if err != nil {
			uc.metrics.RecordTransferError("check_status")
			slog.Error("failed to check transfer status", "requestID", req.ID, "transferRef", req.TransferRef, "error", err)
			continue
		}
		switch status {
		case domain.TransferDone:
			if err := uc.ConfirmWithdrawal(req.ID); err != nil {
				slog.Error("failed to confirm reconciled withdrawal", "requestID", req.ID, "error", err)
			}
		case domain.TransferFailed:
			if err := uc.RejectWithdrawal(req.ID, "transfer failed at gateway"); err != nil {
				slog.Error("failed to reject reconciled withdrawal", "requestID", req.ID, "error", err)
			}
		}
	}
	return nil
}

// StartWorker runs the stuck-withdrawal reconciler until ctx is cancelled.
func (uc *DefaultWithdrawalUsecase) StartWorker(ctx context.Context) {
	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.ReconcileStuck(ctx); err != nil {
				slog.Error("withdrawal reconciliation failed", "error", err)
			}
		}
	}
}

func (uc *DefaultWithdrawalUsecase) publishWithdrawal(req *domain.WithdrawalRequest) {
	if err := uc.events.PublishWithdrawal(publisher.WithdrawalEvent{
		RequestID:   req.ID,
		AgentID:     req.AgentID,
		Nominal:     req.Nominal.StringFixed(2),
		Status:      string(req.Status),
		TransferRef: req.TransferRef,
	}); err != nil {
		slog.Error("failed to publish withdrawal event", "requestID", req.ID, "error", err)
	}
}
