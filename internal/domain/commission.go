package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommissionKind string

const (
	CommissionSponsor     CommissionKind = "SPONSOR"
	CommissionRepeatOrder CommissionKind = "REPEAT_ORDER"
	CommissionUpgrade     CommissionKind = "UPGRADE"
)

// CommissionKindForTransaction maps a transaction kind to the commission kind
// it generates. Stock orders and customer purchases generate none.
func CommissionKindForTransaction(kind TransactionKind) (CommissionKind, bool) {
	switch kind {
	case TxKindPackage:
		return CommissionSponsor, true
	case TxKindRepeatOrder:
		return CommissionRepeatOrder, true
	case TxKindUpgrade:
		return CommissionUpgrade, true
	}
	return "", false
}

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
)

// ScheduleEntry is one row of the commission schedule: a flat nominal payout
// for (kind, package tier, level). PackageTier is nil for kinds that do not
// depend on the buyer's package.
type ScheduleEntry struct {
	ID          uint
	Kind        CommissionKind
	PackageTier *PackageTier
	Level       int
	Nominal     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CommissionEntry struct {
	ID            uint
	AgentID       uint
	TransactionID uint
	Kind          CommissionKind
	Level         int
	Nominal       decimal.Decimal
	Status        CommissionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ScheduleRepository interface {
	// GetEntry returns the schedule row for the key tuple, or ErrNotFound.
	GetEntry(kind CommissionKind, tier *PackageTier, level int) (*ScheduleEntry, error)
	ListEntries(kind CommissionKind) ([]*ScheduleEntry, error)
	UpsertEntry(entry *ScheduleEntry) error
}

type CommissionRepository interface {
	// SettleTransaction inserts the given entries and increments each
	// receiving agent's commission balances in one transaction. When entries
	// for the transaction already exist it inserts nothing and returns the
	// existing count with alreadySettled=true.
	SettleTransaction(trxID uint, entries []*CommissionEntry) (count int, alreadySettled bool, err error)
	GetEntriesByAgentID(agentID uint) ([]*CommissionEntry, error)
	GetEntriesByTransactionID(trxID uint) ([]*CommissionEntry, error)
	// MarkEntriesPaid flips the agent's PENDING entries to PAID, oldest
	// first, until the covered nominal reaches upTo.
	MarkEntriesPaid(agentID uint, upTo decimal.Decimal) error
}
