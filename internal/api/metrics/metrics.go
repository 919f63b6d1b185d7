// Package metrics defines all custom Prometheus metrics for the ByteVerse
// API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "byteverse"

// ── Abuse mitigation ─────────────────────────────────────────────────────────

// SourcesBlockedTotal counts sources promoted to the blocklist.
// Label:
//   - reason: "rate" (request flood) or "scan" (endpoint scanning)
var SourcesBlockedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sources_blocked_total",
		Help:      "Total number of source addresses promoted to the blocklist.",
	},
	[]string{"reason"},
)

// BlocklistRejectionsTotal counts requests rejected by the blocklist gate.
var BlocklistRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocklist_rejections_total",
		Help:      "Total number of requests rejected because their source is blocklisted.",
	},
)

// ── Authentication ───────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials.
// Labels:
//   - domain: "user" or "admin" token domain
//   - reason: "missing", "invalid", "expired", "principal_not_found"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts.",
	},
	[]string{"domain", "reason"},
)

// ── Delivery fan-out ─────────────────────────────────────────────────────────

// EmailsSentTotal counts outbound email deliveries.
// Labels:
//   - template: the email template name (e.g. "event_ticket")
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, by template and result.",
	},
	[]string{"template", "result"},
)

// NotificationsCreatedTotal counts in-app notifications fanned out.
// Label:
//   - type: notification type ("like", "comment", "event", "system", ...)
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of in-app notifications created.",
	},
	[]string{"type"},
)

// DeliveryQueueDepth tracks pending deliveries per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of deliveries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
