package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	transactiondto "github.com/herbamart/network-service/internal/usecase/dto/transaction"
)

func TestPackagePurchaseFansOutCommissions(t *testing.T) {
	env := newTestEnv(t)

	// s <- a <- b: b buys, a is level 1, s is level 2.
	s := env.registerAgent(t, 1, "")
	a := env.registerAgent(t, 2, s.AgentCode)
	b := env.registerAgent(t, 3, a.AgentCode)

	silver := domain.TierSilver
	env.seedSchedule(t, domain.CommissionSponsor, &silver, map[int]int64{1: 40000, 2: 15000})

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         b.UserID,
		BuyerAgentCode: b.AgentCode,
		Kind:           domain.TxKindPackage,
		Amount:         decimal.NewFromInt(1250000),
		BoxCount:       5,
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	// Commissions must not settle before the delivery pipeline finishes.
	if _, err := env.commissionUc.SettleCommissions(trx.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("settling a PROCESSING transaction: want ErrInvalidState, got %v", err)
	}

	env.advanceToDone(t, trx.ID)

	aReloaded, err := env.agentRepo.GetAgentByID(a.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if !aReloaded.PayableBalance.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("level 1 upline balance = %s, want 40000", aReloaded.PayableBalance)
	}
	sReloaded, err := env.agentRepo.GetAgentByID(s.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if !sReloaded.PayableBalance.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("level 2 upline balance = %s, want 15000", sReloaded.PayableBalance)
	}

	// The buyer earns nothing from their own purchase but receives stock.
	bReloaded, err := env.agentRepo.GetAgentByID(b.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if !bReloaded.PayableBalance.IsZero() {
		t.Errorf("buyer balance = %s, want 0", bReloaded.PayableBalance)
	}
	if bReloaded.StockBoxes != 5 {
		t.Errorf("buyer stock = %d, want 5", bReloaded.StockBoxes)
	}

	// Re-settling is a no-op.
	count, err := env.commissionUc.SettleCommissions(trx.ID)
	if err != nil {
		t.Fatalf("repeat settlement failed: %v", err)
	}
	if count != 2 {
		t.Errorf("repeat settlement count = %d, want 2 existing entries", count)
	}
	aAgain, _ := env.agentRepo.GetAgentByID(a.ID)
	if !aAgain.PayableBalance.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("balance after repeat settlement = %s, want unchanged 40000", aAgain.PayableBalance)
	}
}

func TestCommissionSkipsUnscheduledLevels(t *testing.T) {
	env := newTestEnv(t)

	s := env.registerAgent(t, 1, "")
	a := env.registerAgent(t, 2, s.AgentCode)
	b := env.registerAgent(t, 3, a.AgentCode)

	// Only level 2 is scheduled; level 1 accrues nothing.
	silver := domain.TierSilver
	env.seedSchedule(t, domain.CommissionSponsor, &silver, map[int]int64{2: 15000})

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         b.UserID,
		BuyerAgentCode: b.AgentCode,
		Kind:           domain.TxKindPackage,
		Amount:         decimal.NewFromInt(1250000),
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	env.advanceToDone(t, trx.ID)

	entries, err := env.commissionUc.GetEntriesByTransactionID(trx.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1 (level 1 unscheduled)", len(entries))
	}
	if entries[0].AgentID != s.ID || entries[0].Level != 2 {
		t.Errorf("entry = %+v, want level 2 for the grandsponsor", entries[0])
	}
}

func TestCustomerPurchaseGeneratesNoCommission(t *testing.T) {
	env := newTestEnv(t)

	s := env.registerAgent(t, 1, "")
	a := env.registerAgent(t, 2, s.AgentCode)

	silver := domain.TierSilver
	env.seedSchedule(t, domain.CommissionSponsor, &silver, map[int]int64{1: 40000})

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         a.UserID,
		BuyerAgentCode: a.AgentCode,
		Kind:           domain.TxKindCustomer,
		Amount:         decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	env.advanceToDone(t, trx.ID)

	entries, err := env.commissionUc.GetEntriesByTransactionID(trx.ID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("customer purchase produced %d commission entries, want 0", len(entries))
	}
}

func TestUpgradeTransactionAppliesTierAndCommission(t *testing.T) {
	env := newTestEnv(t)

	s := env.registerAgent(t, 1, "")
	a := env.registerAgent(t, 2, s.AgentCode)

	env.seedSchedule(t, domain.CommissionUpgrade, nil, map[int]int64{1: 25000})

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         a.UserID,
		BuyerAgentCode: a.AgentCode,
		Kind:           domain.TxKindUpgrade,
		Amount:         decimal.NewFromInt(2500000),
		BoxCount:       10,
		UpgradeTo:      domain.TierGold,
	})
	if err != nil {
		t.Fatalf("failed to create upgrade transaction: %v", err)
	}
	env.advanceToDone(t, trx.ID)

	upgraded, err := env.agentRepo.GetAgentByID(a.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if upgraded.PackageTier != domain.TierGold {
		t.Errorf("tier after upgrade = %s, want GOLD", upgraded.PackageTier)
	}
	if upgraded.StockBoxes != 10 {
		t.Errorf("stock after upgrade = %d, want 10", upgraded.StockBoxes)
	}

	sReloaded, err := env.agentRepo.GetAgentByID(s.ID)
	if err != nil {
		t.Fatalf("failed to reload agent: %v", err)
	}
	if !sReloaded.PayableBalance.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("sponsor balance after upgrade = %s, want 25000", sReloaded.PayableBalance)
	}
}

func TestUpgradeValidation(t *testing.T) {
	env := newTestEnv(t)
	a := env.registerAgent(t, 1, "")

	// Upgrade the agent to PLATINUM directly, then try to "upgrade" again.
	if err := env.agentRepo.ApplyPackageUpgrade(a.ID, domain.TierPlatinum); err != nil {
		t.Fatalf("failed to set tier: %v", err)
	}
	_, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         a.UserID,
		BuyerAgentCode: a.AgentCode,
		Kind:           domain.TxKindUpgrade,
		Amount:         decimal.NewFromInt(2500000),
		UpgradeTo:      domain.TierGold,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("downgrade attempt: want ErrValidation, got %v", err)
	}
}

func TestAdvanceStatusRejectsSkippedStages(t *testing.T) {
	env := newTestEnv(t)
	a := env.registerAgent(t, 1, "")

	trx, err := env.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:         a.UserID,
		BuyerAgentCode: a.AgentCode,
		Kind:           domain.TxKindPackage,
		Amount:         decimal.NewFromInt(1250000),
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	err = env.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
		TransactionID: trx.ID,
		NextStatus:    domain.TxStatusDone,
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("skipping to DONE: want ErrInvalidState, got %v", err)
	}
}
