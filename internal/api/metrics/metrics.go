// Package metrics defines and registers all custom Prometheus metrics for the
// library system. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Lending metrics ───────────────────────────────────────────────────────────

// LoansCreatedTotal counts successfully issued loans.
var LoansCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_created_total",
		Help:      "Total number of loans issued.",
	},
)

// LoansReturnedTotal counts completed loan returns.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of loans returned.",
	},
)

// FinesAssessedTotal counts returns that incurred a nonzero fine.
var FinesAssessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fines_assessed_total",
		Help:      "Total number of overdue returns that incurred a fine.",
	},
)

// ── Reservation metrics ───────────────────────────────────────────────────────

// ReservationsCreatedTotal counts placed holds.
var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations placed.",
	},
)

// ReservationsCancelledTotal counts holder-initiated cancellations.
var ReservationsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_cancelled_total",
		Help:      "Total number of reservations cancelled by their holder.",
	},
)

// ── Overdue-notice metrics ────────────────────────────────────────────────────

// NoticesSentTotal counts overdue notices delivered by the batch job.
var NoticesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notices_sent_total",
		Help:      "Total number of overdue notices delivered.",
	},
)

// NoticesFailedTotal counts per-recipient delivery failures (logged, skipped).
var NoticesFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notices_failed_total",
		Help:      "Total number of overdue notices that failed to deliver.",
	},
)

// NoticesSkippedTotal counts borrowers with no email on file.
var NoticesSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notices_skipped_total",
		Help:      "Total number of overdue notices skipped for lack of a recipient address.",
	},
)

// NoticeQueueDepth tracks the current number of notices waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NoticeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notice_queue_depth",
		Help:      "Current number of notices pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Metadata search metrics ───────────────────────────────────────────────────

// MetadataSearchTotal counts external catalog searches.
// Label:
//   - result: "hit" (served from cache), "miss" (fetched upstream) or "error"
var MetadataSearchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_search_total",
		Help:      "Total number of external metadata searches, labelled by cache result.",
	},
	[]string{"result"},
)
