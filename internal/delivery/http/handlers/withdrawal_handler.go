package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/domain"
	withdrawaldto "github.com/herbamart/network-service/internal/usecase/dto/withdrawal"
)

type requestWithdrawalRequest struct {
	AgentID uint   `json:"agent_id"`
	Nominal string `json:"nominal"`
}

func (s *Server) handleRequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req requestWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	nominal, err := decimal.NewFromString(req.Nominal)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid nominal %q", domain.ErrValidation, req.Nominal))
		return
	}
	output, err := s.withdrawalUc.RequestWithdrawal(&withdrawaldto.RequestWithdrawalInput{
		AgentID: req.AgentID,
		Nominal: nominal,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleDispatchWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := uintParam(r, "requestID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.withdrawalUc.DispatchWithdrawal(r.Context(), requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.WithdrawalProcessing)})
}

func (s *Server) handleConfirmWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := uintParam(r, "requestID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.withdrawalUc.ConfirmWithdrawal(requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.WithdrawalDone)})
}

type rejectWithdrawalRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleRejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := uintParam(r, "requestID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req rejectWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.withdrawalUc.RejectWithdrawal(requestID, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.WithdrawalRejected)})
}

func (s *Server) handleGetAgentWithdrawals(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	requests, err := s.withdrawalUc.GetRequestsByAgentID(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) handleGetAvailableBalance(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	balance, err := s.withdrawalUc.AvailableBalance(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"available_balance": balance.StringFixed(2)})
}
