package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContractsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hedgeshield_contracts_total",
		Help: "The total number of contract writes processed",
	}, []string{"status"})

	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hedgeshield_orders_total",
		Help: "The total number of order writes processed",
	}, []string{"status", "side"})

	RateLimitRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgeshield_rate_limit_rejects_total",
		Help: "Total requests rejected by the sliding-window limiter",
	})

	LatencyBucket = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedgeshield_latency_bucket",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
