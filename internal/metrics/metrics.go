package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomePublished   = "published"
	OutcomeNoStage     = "no_stage_in_progress"
	OutcomeNotApproval = "not_approval"
	OutcomeNoTopic     = "no_topic"
	OutcomeError       = "error"

	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultInvalid = "invalid"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenotify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipenotify_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// ApprovalEvents counts relay invocations by how they ended
	ApprovalEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenotify_approval_events_total",
			Help: "Pipeline state-change events processed by the approval relay",
		},
		[]string{"outcome"},
	)

	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenotify_webhook_deliveries_total",
			Help: "Forwarded records by delivery result",
		},
		[]string{"result"},
	)

	WebhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipenotify_webhook_duration_seconds",
			Help:    "Duration of chat webhook posts",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, RequestDuration, ApprovalEvents, WebhookDeliveries, WebhookDuration)
	})
}
