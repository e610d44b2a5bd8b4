package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TxKindPackage     TransactionKind = "PACKAGE"
	TxKindUpgrade     TransactionKind = "UPGRADE"
	TxKindRepeatOrder TransactionKind = "REPEAT_ORDER"
	TxKindStockOrder  TransactionKind = "STOCK_ORDER"
	TxKindCustomer    TransactionKind = "CUSTOMER"
)

func (k TransactionKind) Valid() bool {
	switch k {
	case TxKindPackage, TxKindUpgrade, TxKindRepeatOrder, TxKindStockOrder, TxKindCustomer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxStatusProcessing    TransactionStatus = "PROCESSING"
	TxStatusPacked        TransactionStatus = "PACKED"
	TxStatusShipped       TransactionStatus = "SHIPPED"
	TxStatusArrivedAtCity TransactionStatus = "ARRIVED_AT_CITY"
	TxStatusReceived      TransactionStatus = "RECEIVED"
	TxStatusDone          TransactionStatus = "DONE"
)

// txPipeline is the ordered delivery pipeline. Transitions may only move one
// step forward; commission settlement fires when DONE is reached.
var txPipeline = map[TransactionStatus]int{
	TxStatusProcessing:    0,
	TxStatusPacked:        1,
	TxStatusShipped:       2,
	TxStatusArrivedAtCity: 3,
	TxStatusReceived:      4,
	TxStatusDone:          5,
}

func (s TransactionStatus) Valid() bool {
	_, ok := txPipeline[s]
	return ok
}

// CanAdvanceTo reports whether next is the immediate successor of s.
func (s TransactionStatus) CanAdvanceTo(next TransactionStatus) bool {
	cur, ok := txPipeline[s]
	if !ok {
		return false
	}
	n, ok := txPipeline[next]
	if !ok {
		return false
	}
	return n == cur+1
}

type Transaction struct {
	ID               uint
	UserID           uint
	BuyerAgentID     *uint
	Kind             TransactionKind
	Amount           decimal.Decimal
	BoxCount         int
	Status           TransactionStatus
	PaymentMethod    string
	PaymentReference string
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type UpgradeKind string

const (
	UpgradeSilverToGold     UpgradeKind = "SILVER_TO_GOLD"
	UpgradeGoldToPlatinum   UpgradeKind = "GOLD_TO_PLATINUM"
	UpgradeSilverToPlatinum UpgradeKind = "SILVER_TO_PLATINUM"
)

// Upgrade records a package-tier upgrade tied to its UPGRADE transaction.
type Upgrade struct {
	ID            uint
	AgentID       uint
	TransactionID uint
	Kind          UpgradeKind
	FromTier      PackageTier
	ToTier        PackageTier
	BoxCount      int
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// CompletionEffects describes the agent-side mutations a transaction applies
// when it reaches DONE. A zero AgentID means the receipt grants nothing.
type CompletionEffects struct {
	AgentID uint
	Boxes   int
	NewTier PackageTier
}

type TransactionRepository interface {
	CreateTransaction(trx *Transaction) error
	CreateTransactionWithUpgrade(trx *Transaction, upgrade *Upgrade) error
	GetTransactionByID(trxID uint) (*Transaction, error)
	GetTransactionsByAgentID(agentID uint) ([]*Transaction, error)
	// AdvanceStatus moves the transaction from exactly from to to; it fails
	// with ErrInvalidState when the stored status no longer matches from.
	AdvanceStatus(trxID uint, from, to TransactionStatus) error
	// CompleteTransaction flips the transaction from exactly from to DONE and
	// applies the completion effects in the same transactional unit. Either
	// the transaction is DONE with its effects applied, or nothing changed.
	CompleteTransaction(trxID uint, from TransactionStatus, effects *CompletionEffects) error
	GetUpgradeByTransactionID(trxID uint) (*Upgrade, error)
}
