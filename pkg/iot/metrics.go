package iot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "helmet"

var (
	readingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "telemetry",
			Name:      "readings_total",
			Help:      "Sensor readings stored, by whether any alert flag was set",
		},
		[]string{"flagged"},
	)

	alertsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "alerts",
			Name:      "created_total",
			Help:      "Alerts created by alert type and origin",
		},
		[]string{"alert_type", "origin"},
	)

	alertsAcknowledged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "alerts",
			Name:      "acknowledged_total",
			Help:      "Alert acknowledgements",
		},
	)

	assignmentEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "assignments",
			Name:      "events_total",
			Help:      "Helmet assignment events by kind",
		},
		[]string{"event"},
	)

	sideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "side_effects",
			Name:      "failures_total",
			Help:      "Best-effort side effects (notifier, time-series mirror) that failed",
		},
		[]string{"target"},
	)
)
