package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/herbamart/network-service/internal/usecase"
)

// Server mounts the network service API.
type Server struct {
	agentUc      usecase.AgentUsecase
	trxUc        usecase.TransactionUsecase
	commissionUc usecase.CommissionUsecase
	withdrawalUc usecase.WithdrawalUsecase
	rewardUc     usecase.RewardUsecase
}

func NewServer(
	agentUc usecase.AgentUsecase,
	trxUc usecase.TransactionUsecase,
	commissionUc usecase.CommissionUsecase,
	withdrawalUc usecase.WithdrawalUsecase,
	rewardUc usecase.RewardUsecase,
) *Server {
	return &Server{
		agentUc:      agentUc,
		trxUc:        trxUc,
		commissionUc: commissionUc,
		withdrawalUc: withdrawalUc,
		rewardUc:     rewardUc,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/agents", func(r chi.Router) {
			r.Post("/", s.handleRegisterAgent)
			r.Get("/code/{code}", s.handleGetAgentByCode)
			r.Get("/user/{userID}", s.handleGetAgentByUserID)
			r.Route("/{agentID}", func(r chi.Router) {
				r.Get("/", s.handleGetAgent)
				r.Delete("/", s.handleDeleteAgent)
				r.Patch("/rank", s.handleUpdateRank)
				r.Patch("/type", s.handleUpdateAgentType)
				r.Patch("/tier", s.handleUpdateTier)
				r.Post("/stock", s.handleAdjustStock)
				r.Get("/upline", s.handleGetUpline)
				r.Get("/downline", s.handleGetDownline)
				r.Get("/dashboard", s.handleGetDashboard)
				r.Get("/transactions", s.handleGetAgentTransactions)
				r.Get("/commissions", s.handleGetCommissionLedger)
				r.Get("/withdrawals", s.handleGetAgentWithdrawals)
				r.Get("/balance", s.handleGetAvailableBalance)
				r.Get("/rewards", s.handleListRewards)
				r.Get("/claims", s.handleListClaims)
				r.Post("/rewards/{rewardID}/claim", s.handleClaimReward)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.handleCreateTransaction)
			r.Get("/{trxID}", s.handleGetTransaction)
			r.Post("/{trxID}/advance", s.handleAdvanceTransaction)
			r.Post("/{trxID}/settle", s.handleSettleTransaction)
			r.Get("/{trxID}/commissions", s.handleGetTransactionCommissions)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/{kind}", s.handleGetSchedule)
			r.Put("/", s.handleUpsertScheduleEntry)
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", s.handleRequestWithdrawal)
			r.Post("/{requestID}/dispatch", s.handleDispatchWithdrawal)
			r.Post("/{requestID}/confirm", s.handleConfirmWithdrawal)
			r.Post("/{requestID}/reject", s.handleRejectWithdrawal)
		})

		r.Patch("/claims/{claimID}/status", s.handleUpdateClaimStatus)
	})

	return r
}
