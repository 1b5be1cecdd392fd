package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_actions_total",
			Help: "Dispatched state actions by outcome",
		},
		[]string{"action", "outcome"},
	)

	guardRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_guard_redirects_total",
			Help: "Navigation guard redirects by target page",
		},
		[]string{"to"},
	)

	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_messages_total",
			Help: "Chat messages appended by payload kind",
		},
		[]string{"kind"},
	)

	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillswap_registrations_total",
			Help: "Successful registrations",
		},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	persistenceErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillswap_persistence_errors_total",
			Help: "Failed state slice writes",
		},
	)
)
