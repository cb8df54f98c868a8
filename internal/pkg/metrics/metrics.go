// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gromart_order_transitions_total",
			Help: "Total number of committed order status transitions",
		},
		[]string{"from", "to"},
	)

	OtpFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gromart_delivery_otp_failures_total",
			Help: "Total number of rejected delivery OTP attempts",
		},
	)

	CreditAllocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gromart_credit_allocations_total",
			Help: "Total number of ledger entries written, by type",
		},
		[]string{"type"},
	)

	BillsReviewedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gromart_bills_reviewed_total",
			Help: "Total number of delivery bills reviewed, by decision",
		},
		[]string{"decision"},
	)

	LedgerDivergentPartners = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gromart_ledger_divergent_partners",
			Help: "Partners whose stored balance disagrees with their replayed ledger, per last audit run",
		},
	)
)

// Register registers all Prometheus metrics.
func Register() {
	prometheus.MustRegister(OrderTransitionsTotal)
	prometheus.MustRegister(OtpFailuresTotal)
	prometheus.MustRegister(CreditAllocationsTotal)
	prometheus.MustRegister(BillsReviewedTotal)
	prometheus.MustRegister(LedgerDivergentPartners)
}
