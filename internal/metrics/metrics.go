// Package metrics exposes Prometheus collectors for the HTTP API and the
// marketplace's money and notification flows.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/notification"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigboard_payments_recorded_total",
		Help: "Total number of payments recorded against contracts",
	})

	PaymentVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gigboard_payment_volume_total",
		Help: "Sum of recorded payment amounts",
	})

	ProposalDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_proposal_decisions_total",
			Help: "Proposals accepted or rejected",
		},
		[]string{"decision"},
	)

	ContractTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_contract_transitions_total",
			Help: "Contracts moved to a terminal status",
		},
		[]string{"status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigboard_notifications_total",
			Help: "Notifications emitted by type",
		},
		[]string{"type"},
	)
)

// RecordPayment counts one payment of amount.
func RecordPayment(amount decimal.Decimal) {
	PaymentsRecorded.Inc()
	PaymentVolume.Add(amount.InexactFloat64())
}

// RecordProposalDecision counts an accept or reject.
func RecordProposalDecision(decision string) {
	ProposalDecisions.WithLabelValues(decision).Inc()
}

// RecordContractTransition counts a contract reaching status.
func RecordContractTransition(status string) {
	ContractTransitions.WithLabelValues(status).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware observes request durations labelled by the matched chi route
// pattern, so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.WithLabelValues(r.Method, path, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// Notifier is the fire-and-forget notifier the domain services depend on.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ notification.Type, content string)
}

type countingNotifier struct {
	next Notifier
}

// CountNotifications wraps next so every notification is counted by type.
func CountNotifications(next Notifier) Notifier {
	return countingNotifier{next: next}
}

func (c countingNotifier) Notify(ctx context.Context, userID string, typ notification.Type, content string) {
	NotificationsSent.WithLabelValues(string(typ)).Inc()
	c.next.Notify(ctx, userID, typ, content)
}
