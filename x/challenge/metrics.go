package challenge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trinity",
		Subsystem: "challenge",
		Name:      "created_total",
		Help:      "Number of challenges created.",
	})
	challengeVotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trinity",
		Subsystem: "challenge",
		Name:      "votes_total",
		Help:      "Number of accepted moderator votes.",
	}, []string{"outcome"})
	challengesFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trinity",
		Subsystem: "challenge",
		Name:      "finalized_total",
		Help:      "Number of challenges that reached a terminal status.",
	}, []string{"status"})
	challengePayouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trinity",
		Subsystem: "challenge",
		Name:      "payouts_total",
		Help:      "Number of escrowed asset units released, by kind.",
	}, []string{"kind"})
)
