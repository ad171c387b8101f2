package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentalert_client",
			Name:      "logins_total",
			Help:      "Sign-in attempts by outcome.",
		},
		[]string{"result"},
	)

	listingQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentalert_client",
			Name:      "listing_queries_total",
			Help:      "Successful listing queries.",
		},
	)
)
