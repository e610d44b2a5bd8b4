package usecase

import (
	"fmt"
	"log/slog"

	"github.com/herbamart/network-service/internal/domain"
	transactiondto "github.com/herbamart/network-service/internal/usecase/dto/transaction"
)

type TransactionUsecase interface {
	CreateTransaction(input *transactiondto.CreateTransactionInput) (*domain.Transaction, error)
	// AdvanceStatus moves a transaction one step along the delivery pipeline.
	// Reaching DONE settles commissions, grants stock and applies upgrades.
	AdvanceStatus(input *transactiondto.AdvanceStatusInput) error
	GetTransactionByID(trxID uint) (*domain.Transaction, error)
	GetTransactionsByAgentID(agentID uint) ([]*domain.Transaction, error)
}

type DefaultTransactionUsecase struct {
	trxRepo      domain.TransactionRepository
	agentRepo    domain.AgentRepository
	commissionUc CommissionUsecase
}

func NewDefaultTransactionUsecase(
	trxRepo domain.TransactionRepository,
	agentRepo domain.AgentRepository,
	commissionUc CommissionUsecase,
) *DefaultTransactionUsecase {
	return &DefaultTransactionUsecase{
		trxRepo:      trxRepo,
		agentRepo:    agentRepo,
		commissionUc: commissionUc,
	}
}

func upgradeKindFor(from, to domain.PackageTier) (domain.UpgradeKind, error) {
	switch {
	case from == domain.TierSilver && to == domain.TierGold:
		return domain.UpgradeSilverToGold, nil
	case from == domain.TierGold && to == domain.TierPlatinum:
		return domain.UpgradeGoldToPlatinum, nil
	case from == domain.TierSilver && to == domain.TierPlatinum:
		return domain.UpgradeSilverToPlatinum, nil
	}
	return "", fmt.Errorf("%w: no upgrade path from %s to %s", domain.ErrValidation, from, to)
}

func (uc *DefaultTransactionUsecase) CreateTransaction(input *transactiondto.CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrValidation, input.Kind)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	var buyer *domain.Agent
	if input.BuyerAgentCode != "" {
		var err error
		buyer, err = uc.agentRepo.GetAgentByCode(input.BuyerAgentCode)
		if err != nil {
			return nil, fmt.Errorf("resolving buyer %q: %w", input.BuyerAgentCode, err)
		}
	}

	trx := &domain.Transaction{
		UserID:           input.UserID,
		Kind:             input.Kind,
		Amount:           input.Amount,
		BoxCount:         input.BoxCount,
		Status:           domain.TxStatusProcessing,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
		Note:             input.Note,
	}
	if buyer != nil {
		trx.BuyerAgentID = &buyer.ID
	}

	if input.Kind != domain.TxKindUpgrade {
		if err := uc.trxRepo.CreateTransaction(trx); err != nil {
			return nil, err
		}
		return trx, nil
	}

	if buyer == nil {
		return nil, fmt.Errorf("%w: upgrade transactions require a buyer agent", domain.ErrValidation)
	}
	if !input.UpgradeTo.Valid() {
		return nil, fmt.Errorf("%w: unknown target tier %q", domain.ErrValidation, input.UpgradeTo)
	}
	if !buyer.PackageTier.Below(input.UpgradeTo) {
		return nil, fmt.Errorf("%w: agent %s is already at or above %s", domain.ErrValidation, buyer.AgentCode, input.UpgradeTo)
	}
	kind, err := upgradeKindFor(buyer.PackageTier, input.UpgradeTo)
	if err != nil {
		return nil, err
	}

	upgrade := &domain.Upgrade{
		AgentID:  buyer.ID,
		Kind:     kind,
		FromTier: buyer.PackageTier,
		ToTier:   input.UpgradeTo,
		BoxCount: input.BoxCount,
		Amount:   input.Amount,
	}
	if err := uc.trxRepo.CreateTransactionWithUpgrade(trx, upgrade); err != nil {
		return nil, err
	}
	return trx, nil
}

func (uc *DefaultTransactionUsecase) AdvanceStatus(input *transactiondto.AdvanceStatusInput) error {
	if !input.NextStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.NextStatus)
	}

	trx, err := uc.trxRepo.GetTransactionByID(input.TransactionID)
	if err != nil {
		return err
	}
	if !trx.Status.CanAdvanceTo(input.NextStatus) {
		return fmt.Errorf("%w: cannot advance transaction %d from %s to %s", domain.ErrInvalidState, trx.ID, trx.Status, input.NextStatus)
	}

	if input.NextStatus != domain.TxStatusDone {
		return uc.trxRepo.AdvanceStatus(trx.ID, trx.Status, input.NextStatus)
	}

	effects, err := uc.completionEffects(trx)
	if err != nil {
		return err
	}
	if err := uc.trxRepo.CompleteTransaction(trx.ID, trx.Status, effects); err != nil {
		return err
	}

	// Settlement is idempotent; if it fails here the transaction is DONE
	// with its effects applied and settlement can be retried through
	// SettleCommissions.
	count, err := uc.commissionUc.SettleCommissions(trx.ID)
	if err != nil {
		return fmt.Errorf("settling commissions for transaction %d: %w", trx.ID, err)
	}
	slog.Info("transaction completed", "transactionID", trx.ID, "kind", trx.Kind, "commissionEntries", count)
	return nil
}

// completionEffects resolves what the receipt grants the buyer: boxes for
// purchases that ship stock, the new tier (plus boxes) for upgrades.
func (uc *DefaultTransactionUsecase) completionEffects(trx *domain.Transaction) (*domain.CompletionEffects, error) {
	if trx.BuyerAgentID == nil {
		return nil, nil
	}
	switch trx.Kind {
	case domain.TxKindPackage, domain.TxKindRepeatOrder, domain.TxKindStockOrder:
		if trx.BoxCount > 0 {
			return &domain.CompletionEffects{AgentID: *trx.BuyerAgentID, Boxes: trx.BoxCount}, nil
		}
	case domain.TxKindUpgrade:
		upgrade, err := uc.trxRepo.GetUpgradeByTransactionID(trx.ID)
		if err != nil {
			return nil, err
		}
		return &domain.CompletionEffects{
			AgentID: upgrade.AgentID,
			Boxes:   upgrade.BoxCount,
			NewTier: upgrade.ToTier,
		}, nil
	}
	return nil, nil
}

func (uc *DefaultTransactionUsecase) GetTransactionByID(trxID uint) (*domain.Transaction, error) {
	return uc.trxRepo.GetTransactionByID(trxID)
}

func (uc *DefaultTransactionUsecase) GetTransactionsByAgentID(agentID uint) ([]*domain.Transaction, error) {
	return uc.trxRepo.GetTransactionsByAgentID(agentID)
}
