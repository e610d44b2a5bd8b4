package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalDone       WithdrawalStatus = "DONE"
	WithdrawalRejected   WithdrawalStatus = "REJECTED"
)

type WithdrawalRequest struct {
	ID          uint
	AgentID     uint
	Nominal     decimal.Decimal
	Status      WithdrawalStatus
	TransferRef string
	Note        string
	SubmittedAt time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WithdrawalRepository interface {
	// CreateRequest validates the requested nominal against the agent's
	// available balance (payable balance minus non-REJECTED withdrawals)
	// and inserts a PENDING row, all in one transaction.
	CreateRequest(req *WithdrawalRequest) (*WithdrawalRequest, error)
	GetRequestByID(requestID uint) (*WithdrawalRequest, error)
	GetRequestsByAgentID(agentID uint) ([]*WithdrawalRequest, error)
	// TransitionStatus moves the request to next only when its stored status
	// is one of from; otherwise it fails with ErrInvalidState.
	TransitionStatus(requestID uint, from []WithdrawalStatus, next WithdrawalStatus, note string) error
	SetTransferRef(requestID uint, transferRef string) error
	ListByStatusOlderThan(status WithdrawalStatus, cutoff time.Time) ([]*WithdrawalRequest, error)
	AvailableBalance(agentID uint) (decimal.Decimal, error)
}

type TransferStatus string

const (
	TransferPending TransferStatus = "PENDING"
	TransferDone    TransferStatus = "DONE"
	TransferFailed  TransferStatus = "FAILED"
)

type TransferRequest struct {
	IdempotencyKey string
	AccountNumber  string
	BankCode       string
	Amount         decimal.Decimal
	RecipientName  string
	Remark         string
}

type TransferResult struct {
	TransferID string
	Status     TransferStatus
	Fee        decimal.Decimal
}

// TransferGateway is the external bank-transfer collaborator. The fee is
// computed locally and charged in addition to the amount; the recipient
// receives the full requested nominal.
type TransferGateway interface {
	Transfer(ctx context.Context, req *TransferRequest) (*TransferResult, error)
	CheckStatus(ctx context.Context, transferID string) (TransferStatus, error)
	Fee(amount decimal.Decimal) decimal.Decimal
}
