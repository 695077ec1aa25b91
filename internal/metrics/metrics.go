// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes the bridge's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gaction_turns_total",
		Help: "Total number of inbound dialog turns by intent",
	}, []string{"intent"})

	MalformedTurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gaction_turns_malformed_total",
		Help: "Total number of inbound payloads rejected as malformed",
	})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gaction_deliveries_total",
		Help: "Total number of answer deliveries by outcome",
	}, []string{"outcome"})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gaction_fallbacks_total",
		Help: "Total number of fallback utterances delivered by reason",
	}, []string{"reason"})

	ChannelsReplacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gaction_channels_replaced_total",
		Help: "Total number of pending response channels displaced before use",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gaction_active_sessions",
		Help: "Number of conversations currently bound to a session",
	})
)

// Delivery outcomes.
const (
	OutcomeOpen    = "open"
	OutcomeClosed  = "closed"
	OutcomeLate    = "late"
	OutcomeUnknown = "unknown_conversation"
)

// Fallback reasons.
const (
	ReasonTimeout  = "timeout"
	ReasonFailure  = "consumer_failure"
	ReasonConflict = "conflicting_content"
)

// IncDelivery records an answer delivery with a concrete outcome.
func IncDelivery(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	DeliveriesTotal.WithLabelValues(outcome).Inc()
}

// IncFallback records a delivered fallback utterance.
func IncFallback(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	FallbacksTotal.WithLabelValues(reason).Inc()
}
