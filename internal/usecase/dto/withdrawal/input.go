package withdrawaldto

import "github.com/shopspring/decimal"

type RequestWithdrawalInput struct {
	AgentID uint
	Nominal decimal.Decimal
}
