package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/herbamart/network-service/internal/domain"
	agentdto "github.com/herbamart/network-service/internal/usecase/dto/agent"
)

type registerAgentRequest struct {
	UserID            uint   `json:"user_id"`
	FullName          string `json:"full_name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Province          string `json:"province"`
	City              string `json:"city"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountName   string `json:"bank_account_name"`
	BankCode          string `json:"bank_code"`
	SponsorCode       string `json:"sponsor_code"`
	PackageTier       string `json:"package_tier"`
}

func (s *Server) handleRegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	output, err := s.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:            req.UserID,
		FullName:          req.FullName,
		Phone:             req.Phone,
		Email:             req.Email,
		Province:          req.Province,
		City:              req.City,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountName:   req.BankAccountName,
		BankCode:          req.BankCode,
		SponsorCode:       req.SponsorCode,
		PackageTier:       domain.PackageTier(req.PackageTier),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	agent, err := s.agentUc.GetAgentByID(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (s *Server) handleGetAgentByCode(w http.ResponseWriter, r *http.Request) {
	agent, err := s.agentUc.GetAgentByCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (s *Server) handleGetAgentByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "userID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	agent, err := s.agentUc.GetAgentByUserID(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.agentUc.DeleteAgent(agentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type updateRankRequest struct {
	Rank string `json:"rank"`
}

func (s *Server) handleUpdateRank(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req updateRankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.agentUc.UpdateRank(agentID, domain.Rank(req.Rank)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"rank": req.Rank})
}

type updateAgentTypeRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleUpdateAgentType(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req updateAgentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.agentUc.UpdateAgentType(agentID, domain.AgentType(req.Type)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"type": req.Type})
}

type updateTierRequest struct {
	PackageTier string `json:"package_tier"`
}

func (s *Server) handleUpdateTier(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req updateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.agentUc.UpdateTier(agentID, domain.PackageTier(req.PackageTier)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"package_tier": req.PackageTier})
}

type adjustStockRequest struct {
	Boxes int `json:"boxes"`
}

func (s *Server) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.agentUc.AdjustStock(agentID, req.Boxes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"boxes": req.Boxes})
}

func (s *Server) handleGetUpline(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	chain, err := s.agentUc.GetUplineChain(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chain)
}

func (s *Server) handleGetDownline(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: level query parameter is required", domain.ErrValidation))
		return
	}
	downline, err := s.agentUc.GetDownlineAtLevel(agentID, level)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downline)
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	stats, err := s.agentUc.GetDashboardStats(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
