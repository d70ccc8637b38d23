package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamify_games_generated_total",
			Help: "Total number of games generated by flow.",
		},
		[]string{"flow"},
	)

	decisionStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamify_decision_steps_total",
			Help: "Total number of decision tree steps processed by action.",
		},
		[]string{"action"},
	)

	demoTokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamify_demo_tokens_issued_total",
		Help: "Total number of issued demo tokens.",
	})

	exportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamify_game_exports_total",
		Help: "Total number of exported game sheets.",
	})
)
