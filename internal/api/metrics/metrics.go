// Package metrics defines all custom Prometheus metrics for the event
// registration API. It is the single source of truth for metric names,
// labels, and help strings; everything is registered with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registration"

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokensIssuedTotal counts successfully issued grants.
// Label:
//   - grant_type: "password" or "refresh_token"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of grants issued, by grant type.",
	},
	[]string{"grant_type"},
)

// TokenDeniedTotal counts token-endpoint denials.
// Label:
//   - reason: "invalid_client", "unauthorized_grant_type", "invalid_grant", "invalid_scope"
var TokenDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_denied_total",
		Help:      "Total number of denied token requests, by reason.",
	},
	[]string{"reason"},
)

// GateDeniedTotal counts access-gate denials on protected routes.
// Label:
//   - reason: "missing_credential", "invalid_or_expired", "insufficient_scope"
var GateDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denied_total",
		Help:      "Total number of requests rejected by the access gate, by reason.",
	},
	[]string{"reason"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsCreatedTotal counts newly created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// EventValidationFailuresTotal counts violated business rules across all
// create/update attempts (one increment per violated rule, not per request).
var EventValidationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_validation_failures_total",
		Help:      "Total number of violated event validation rules.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of records waiting in each audit
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
