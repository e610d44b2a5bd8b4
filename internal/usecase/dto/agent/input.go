package agentdto

import "github.com/herbamart/network-service/internal/domain"

type RegisterAgentInput struct {
	UserID            uint
	FullName          string
	Phone             string
	Email             string
	Province          string
	City              string
	BankAccountNumber string
	BankAccountName   string
	BankCode          string
	SponsorCode       string
	PackageTier       domain.PackageTier
}
