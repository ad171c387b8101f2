package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	profileFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentalert_client",
			Name:      "profile_fetches_total",
			Help:      "Profile fetches by outcome.",
		},
		[]string{"result"},
	)

	refreshCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentalert_client",
			Name:      "refresh_triggers_coalesced_total",
			Help:      "Refresh triggers absorbed by an already scheduled one.",
		},
	)

	staleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentalert_client",
			Name:      "stale_fetch_results_discarded_total",
			Help:      "In-flight fetch results dropped because the principal changed.",
		},
	)
)
