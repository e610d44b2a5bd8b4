package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	withdrawaldto "github.com/herbamart/network-service/internal/usecase/dto/withdrawal"
)

// fundedAgent registers an agent and accrues commission via a settled entry.
func fundedAgent(t *testing.T, env *testEnv, userID uint, nominal int64) *domain.Agent {
	t.Helper()
	output := env.registerAgent(t, userID, "")
	if _, _, err := env.commRepo.SettleTransaction(uint(userID*100), []*domain.CommissionEntry{{
		AgentID:       output.ID,
		TransactionID: uint(userID * 100),
		Kind:          domain.CommissionSponsor,
		Level:         1,
		Nominal:       decimal.NewFromInt(nominal),
		Status:        domain.CommissionPending,
	}}); err != nil {
		t.Fatalf("failed to fund agent: %v", err)
	}
	return output.Agent
}

func TestWithdrawalLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.status = domain.TransferPending
	agent := fundedAgent(t, env, 1, 100000)

	output, err := env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.NewFromInt(60000),
	})
	if err != nil {
		t.Fatalf("failed to request withdrawal: %v", err)
	}
	if output.Status != domain.WithdrawalPending {
		t.Fatalf("initial status = %s, want PENDING", output.Status)
	}
	// Fee for 60000 at 0.2% is 120, below the 5000 floor.
	if !output.Fee.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("fee = %s, want minimum 5000", output.Fee)
	}

	if err := env.withdrawalUc.DispatchWithdrawal(context.Background(), output.ID); err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}
	dispatched, err := env.wdRepo.GetRequestByID(output.ID)
	if err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if dispatched.Status != domain.WithdrawalProcessing {
		t.Fatalf("status after dispatch = %s, want PROCESSING", dispatched.Status)
	}
	if dispatched.TransferRef == "" {
		t.Error("transfer reference not recorded")
	}

	if err := env.withdrawalUc.ConfirmWithdrawal(output.ID); err != nil {
		t.Fatalf("failed to confirm: %v", err)
	}
	done, err := env.wdRepo.GetRequestByID(output.ID)
	if err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if done.Status != domain.WithdrawalDone {
		t.Fatalf("status after confirm = %s, want DONE", done.Status)
	}

	// The confirmed amount flips the oldest pending ledger entries to PAID.
	entries, err := env.commRepo.GetEntriesByAgentID(agent.ID)
	if err != nil {
		t.Fatalf("failed to list ledger: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != domain.CommissionPaid {
		t.Errorf("ledger after payout = %+v, want the funding entry PAID", entries)
	}

	available, err := env.withdrawalUc.AvailableBalance(agent.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if !available.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("available after payout = %s, want 40000", available)
	}
}

func TestDispatchIsSingleShot(t *testing.T) {
	env := newTestEnv(t)
	agent := fundedAgent(t, env, 1, 100000)

	output, err := env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("failed to request withdrawal: %v", err)
	}

	if err := env.withdrawalUc.DispatchWithdrawal(context.Background(), output.ID); err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}
	err = env.withdrawalUc.DispatchWithdrawal(context.Background(), output.ID)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second dispatch: want ErrInvalidState, got %v", err)
	}
	if env.gateway.transfers != 1 {
		t.Errorf("gateway transfer calls = %d, want exactly 1", env.gateway.transfers)
	}
}

func TestTransferFailureRejectsAndReleasesBalance(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.failTransfer = true
	agent := fundedAgent(t, env, 1, 100000)

	output, err := env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.NewFromInt(70000),
	})
	if err != nil {
		t.Fatalf("failed to request withdrawal: %v", err)
	}

	err = env.withdrawalUc.DispatchWithdrawal(context.Background(), output.ID)
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("want ErrUpstreamFailure from dispatch, got %v", err)
	}

	rejected, err := env.wdRepo.GetRequestByID(output.ID)
	if err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if rejected.Status != domain.WithdrawalRejected {
		t.Fatalf("status after failed transfer = %s, want REJECTED", rejected.Status)
	}

	available, err := env.withdrawalUc.AvailableBalance(agent.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if !available.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("available after rejection = %s, want full 100000", available)
	}
}

func TestReconcileStuckResolvesByGatewayStatus(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.status = domain.TransferPending
	agent := fundedAgent(t, env, 1, 100000)

	output, err := env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.NewFromInt(30000),
	})
	if err != nil {
		t.Fatalf("failed to request withdrawal: %v", err)
	}
	if err := env.withdrawalUc.DispatchWithdrawal(context.Background(), output.ID); err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}

	// Zero the reconciler age so the fresh PROCESSING row counts as stuck.
	env.withdrawalUc.stuckAge = 0
	env.gateway.status = domain.TransferDone

	if err := env.withdrawalUc.ReconcileStuck(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	resolved, err := env.wdRepo.GetRequestByID(output.ID)
	if err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if resolved.Status != domain.WithdrawalDone {
		t.Errorf("status after reconcile = %s, want DONE", resolved.Status)
	}
}

func TestRequestWithdrawalValidation(t *testing.T) {
	env := newTestEnv(t)
	agent := fundedAgent(t, env, 1, 10000)

	_, err := env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.Zero,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero nominal: want ErrValidation, got %v", err)
	}

	_, err = env.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: agent.ID,
		Nominal: decimal.NewFromInt(20000),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Errorf("over-withdrawal: want ErrInsufficientBalance, got %v", err)
	}
}
