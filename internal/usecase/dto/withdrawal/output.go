package withdrawaldto

import (
	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
)

type RequestWithdrawalOutput struct {
	*domain.WithdrawalRequest
	// Fee is the transfer fee the company pays on top of the nominal.
	Fee decimal.Decimal
}
