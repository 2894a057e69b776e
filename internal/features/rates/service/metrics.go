package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolved rates partitioned by the scope that answered and how the rate was derived
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_rates_resolutions_total",
			Help: "Total number of rates resolved",
		},
		[]string{"scope", "resolved_via"},
	)

	notFoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_rates_not_found_total",
			Help: "Total number of rate requests with no rate at any scope",
		},
	)
)
