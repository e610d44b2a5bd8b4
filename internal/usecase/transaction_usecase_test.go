package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	transactiondto "github.com/herbamart/network-service/internal/usecase/dto/transaction"
)

func TestAdvanceToDoneKeepsStatusWhenEffectsFail(t *testing.T) {
	env := newTestEnv(t)

	sponsor := env.registerAgent(t, 1, "")
	buyer := env.registerAgent(t, 2, sponsor.AgentCode)

	silver := domain.TierSilver
	env.seedSchedule(t, domain.CommissionSponsor, &silver, map[int]int64{1: 40000})

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         buyer.UserID,
		BuyerAgentCode: buyer.AgentCode,
		Kind:           domain.TxKindPackage,
		Amount:         decimal.NewFromInt(1250000),
		BoxCount:       5,
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	for _, next := range []domain.TransactionStatus{
		domain.TxStatusPacked,
		domain.TxStatusShipped,
		domain.TxStatusArrivedAtCity,
		domain.TxStatusReceived,
	} {
		if err := env.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
			TransactionID: trx.ID,
			NextStatus:    next,
		}); err != nil {
			t.Fatalf("failed to advance to %s: %v", next, err)
		}
	}

	// The buyer disappears between delivery and receipt confirmation, so
	// the stock grant cannot apply.
	if err := env.agentUc.DeleteAgent(buyer.ID); err != nil {
		t.Fatalf("failed to delete buyer: %v", err)
	}

	err = env.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
		TransactionID: trx.ID,
		NextStatus:    domain.TxStatusDone,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("advance to DONE with a missing buyer: want ErrNotFound, got %v", err)
	}

	// The failed completion must not leave a terminal DONE behind: the
	// transition and its effects commit together or not at all.
	reloaded, err := env.trxUc.GetTransactionByID(trx.ID)
	if err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if reloaded.Status != domain.TxStatusReceived {
		t.Errorf("status after failed completion = %s, want RECEIVED", reloaded.Status)
	}
	entries, err := env.commissionUc.GetEntriesByTransactionID(trx.ID)
	if err != nil {
		t.Fatalf("failed to load commission entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("commission entries after failed completion = %d, want 0", len(entries))
	}

	// The advance stays retryable; it fails the same way until the cause
	// is resolved rather than being stuck behind a half-applied DONE.
	err = env.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
		TransactionID: trx.ID,
		NextStatus:    domain.TxStatusDone,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("retried advance to DONE: want ErrNotFound, got %v", err)
	}
}
