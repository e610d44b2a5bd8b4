package transactiondto

import (
	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
)

type CreateTransactionInput struct {
	UserID           uint
	BuyerAgentCode   string
	Kind             domain.TransactionKind
	Amount           decimal.Decimal
	BoxCount         int
	PaymentMethod    string
	PaymentReference string
	Note             string
	// UpgradeTo is the target package tier, set only for UPGRADE transactions.
	UpgradeTo domain.PackageTier
}

type AdvanceStatusInput struct {
	TransactionID uint
	NextStatus    domain.TransactionStatus
}
