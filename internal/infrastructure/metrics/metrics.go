package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NetworkMetrics covers the commission engine and withdrawal lifecycle.
type NetworkMetrics struct {
	AgentsRegisteredTotal prometheus.CounterVec

	CommissionEntriesTotal prometheus.CounterVec
	CommissionAmountTotal  prometheus.CounterVec
	SettlementDuration     prometheus.HistogramVec
	SettlementSkippedTotal prometheus.CounterVec

	WithdrawalsTotal      prometheus.CounterVec
	WithdrawalAmountTotal prometheus.CounterVec
	TransferErrorsTotal   prometheus.CounterVec

	RewardClaimsTotal prometheus.CounterVec
}

func NewNetworkMetrics() *NetworkMetrics {
	return &NetworkMetrics{
		AgentsRegisteredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agents_registered_total",
				Help: "Agents registered, by province code and package tier",
			},
			[]string{"province_code", "tier"},
		),

		CommissionEntriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_entries_total",
				Help: "Commission ledger entries created, by kind and level",
			},
			[]string{"kind", "level"},
		),

		CommissionAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_amount_total",
				Help: "Total commission nominal accrued, by kind",
			},
			[]string{"kind"},
		),

		SettlementDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commission_settlement_duration_seconds",
				Help:    "Time spent settling commissions for a transaction",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"kind"},
		),

		SettlementSkippedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_settlement_skipped_total",
				Help: "Settlement invocations that were idempotent no-ops",
			},
			[]string{"kind"},
		),

		WithdrawalsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_total",
				Help: "Withdrawal requests, by resulting status",
			},
			[]string{"status"},
		),

		WithdrawalAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawal_amount_total",
				Help: "Total withdrawal nominal, by resulting status",
			},
			[]string{"status"},
		),

		TransferErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_errors_total",
				Help: "Failed transfer gateway calls",
			},
			[]string{"reason"},
		),

		RewardClaimsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_claims_total",
				Help: "Reward claims recorded, by required rank",
			},
			[]string{"required_rank"},
		),
	}
}

func (m *NetworkMetrics) RecordAgentRegistered(provinceCode, tier string) {
	if m == nil {
		return
	}
	m.AgentsRegisteredTotal.WithLabelValues(provinceCode, tier).Inc()
}

func (m *NetworkMetrics) RecordCommissionEntry(kind, level string, nominal float64) {
	if m == nil {
		return
	}
	m.CommissionEntriesTotal.WithLabelValues(kind, level).Inc()
	m.CommissionAmountTotal.WithLabelValues(kind).Add(nominal)
}

func (m *NetworkMetrics) RecordSettlementDuration(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.SettlementDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *NetworkMetrics) RecordSettlementSkipped(kind string) {
	if m == nil {
		return
	}
	m.SettlementSkippedTotal.WithLabelValues(kind).Inc()
}

func (m *NetworkMetrics) RecordWithdrawal(status string, nominal float64) {
	if m == nil {
		return
	}
	m.WithdrawalsTotal.WithLabelValues(status).Inc()
	m.WithdrawalAmountTotal.WithLabelValues(status).Add(nominal)
}

func (m *NetworkMetrics) RecordTransferError(reason string) {
	if m == nil {
		return
	}
	m.TransferErrorsTotal.WithLabelValues(reason).Inc()
}

func (m *NetworkMetrics) RecordRewardClaim(requiredRank string) {
	if m == nil {
		return
	}
	m.RewardClaimsTotal.WithLabelValues(requiredRank).Inc()
}
