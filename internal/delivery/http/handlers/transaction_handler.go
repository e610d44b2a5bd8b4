package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	transactiondto "github.com/herbamart/network-service/internal/usecase/dto/transaction"
)

type createTransactionRequest struct {
	UserID           uint   `json:"user_id"`
	BuyerAgentCode   string `json:"buyer_agent_code"`
	Kind             string `json:"kind"`
	Amount           string `json:"amount"`
	BoxCount         int    `json:"box_count"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Note             string `json:"note"`
	UpgradeTo        string `json:"upgrade_to"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid amount %q", domain.ErrValidation, req.Amount))
		return
	}
	trx, err := s.trxUc.CreateTransaction(&transactiondto.CreateTransactionInput{
		UserID:           req.UserID,
		BuyerAgentCode:   req.BuyerAgentCode,
		Kind:             domain.TransactionKind(req.Kind),
		Amount:           amount,
		BoxCount:         req.BoxCount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Note:             req.Note,
		UpgradeTo:        domain.PackageTier(req.UpgradeTo),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trx)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	trxID, err := uintParam(r, "trxID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	trx, err := s.trxUc.GetTransactionByID(trxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trx)
}

type advanceTransactionRequest struct {
	NextStatus string `json:"next_status"`
}

func (s *Server) handleAdvanceTransaction(w http.ResponseWriter, r *http.Request) {
	trxID, err := uintParam(r, "trxID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req advanceTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
		TransactionID: trxID,
		NextStatus:    domain.TransactionStatus(req.NextStatus),
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.NextStatus})
}

// handleSettleTransaction re-runs settlement for a DONE transaction whose
// commissions were not settled, typically after a crash between the
// completion commit and the settlement commit. Settling an already settled
// transaction is a no-op.
func (s *Server) handleSettleTransaction(w http.ResponseWriter, r *http.Request) {
	trxID, err := uintParam(r, "trxID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	count, err := s.commissionUc.SettleCommissions(trxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"entries": count})
}

func (s *Server) handleGetAgentTransactions(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	trxs, err := s.trxUc.GetTransactionsByAgentID(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trxs)
}

func (s *Server) handleGetCommissionLedger(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	entries, err := s.commissionUc.GetLedger(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetTransactionCommissions(w http.ResponseWriter, r *http.Request) {
	trxID, err := uintParam(r, "trxID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	entries, err := s.commissionUc.GetEntriesByTransactionID(trxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := s.commissionUc.GetSchedule(domain.CommissionKind(chi.URLParam(r, "kind")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type upsertScheduleRequest struct {
	Kind        string  `json:"kind"`
	PackageTier *string `json:"package_tier"`
	Level       int     `json:"level"`
	Nominal     string  `json:"nominal"`
}

func (s *Server) handleUpsertScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req upsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	nominal, err := decimal.NewFromString(req.Nominal)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid nominal %q", domain.ErrValidation, req.Nominal))
		return
	}
	entry := &domain.ScheduleEntry{
		Kind:    domain.CommissionKind(req.Kind),
		Level:   req.Level,
		Nominal: nominal,
	}
	if req.PackageTier != nil {
		tier := domain.PackageTier(*req.PackageTier)
		entry.PackageTier = &tier
	}
	if err := s.commissionUc.UpsertScheduleEntry(entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
