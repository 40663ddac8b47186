package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SignatureWebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signature_webhook_events_total",
			Help: "Dropbox Sign webhook events received, by event type and outcome",
		},
		[]string{"event_type", "outcome"},
	)

	DeadlineChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deadline_checks_total",
			Help: "Deadline check procedure invocations, by outcome",
		},
		[]string{"outcome"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dropbox_sign_request_duration_seconds",
			Help:    "Duration of outbound Dropbox Sign API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method and status code",
		},
		[]string{"method", "code"},
	)
)

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SignatureWebhookEventsTotal,
		DeadlineChecksTotal,
		ProviderRequestDuration,
		HTTPRequestsTotal,
	)
}
