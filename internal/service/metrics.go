// internal/service/metrics.go
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimsSettledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_claims_settled_total",
			Help: "Number of successfully settled claims",
		},
	)

	claimsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accrual_claims_rejected_total",
			Help: "Number of rejected claims by reason",
		},
		[]string{"reason"},
	)

	pointsAwardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_points_awarded_total",
			Help: "Total points moved to the durable balance ledger",
		},
	)
)
