package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/herbamart/network-service/internal/domain"
)

func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	rewards, err := s.rewardUc.ListRewards(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (s *Server) handleClaimReward(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	rewardID, err := uintParam(r, "rewardID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	claim, err := s.rewardUc.ClaimReward(agentID, rewardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	agentID, err := uintParam(r, "agentID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	claims, err := s.rewardUc.ListClaims(agentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

type updateClaimStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	claimID, err := uintParam(r, "claimID")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	var req updateClaimStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.rewardUc.UpdateClaimStatus(claimID, domain.ClaimStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
