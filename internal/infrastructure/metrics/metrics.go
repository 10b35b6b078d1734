// Package metrics exposes ticket lifecycle and HTTP counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fixdesk"

// Recorder collects the service metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	ticketsCreated     *prometheus.CounterVec
	ticketsAssigned    prometheus.Counter
	statusChanges      *prometheus.CounterVec
	notesAdded         prometheus.Counter
	rejections         *prometheus.CounterVec
	notificationsSent  prometheus.Counter
	emailDeliveries    *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticketsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets opened by tenants.",
		}, []string{"priority"}),
		ticketsAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_assigned_total",
			Help:      "Tickets assigned to a technician.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_changes_total",
			Help:      "Status transitions made by technicians.",
		}, []string{"from", "to"}),
		notesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_notes_added_total",
			Help:      "Notes appended to ticket activity logs.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_lifecycle_rejections_total",
			Help:      "Lifecycle operations rejected by a business rule or a lost race.",
		}, []string{"operation", "reason"}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "In-app notifications stored.",
		}),
		emailDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_emails_total",
			Help:      "Notification emails attempted, by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ticketsCreated,
		r.ticketsAssigned,
		r.statusChanges,
		r.notesAdded,
		r.rejections,
		r.notificationsSent,
		r.emailDeliveries,
		r.httpRequests,
		r.httpRequestSeconds,
	)

	return r
}

func (r *Recorder) TicketCreated(priority string) {
	r.ticketsCreated.WithLabelValues(priority).Inc()
}

func (r *Recorder) TicketAssigned() {
	r.ticketsAssigned.Inc()
}

func (r *Recorder) StatusChanged(from, to string) {
	r.statusChanges.WithLabelValues(from, to).Inc()
}

func (r *Recorder) NoteAdded() {
	r.notesAdded.Inc()
}

// Rejected counts a lifecycle operation refused for reason. A conditional
// write that lost a race is reported with reason "conflict".
func (r *Recorder) Rejected(operation, reason string) {
	r.rejections.WithLabelValues(operation, reason).Inc()
}

func (r *Recorder) NotificationsCreated(n int) {
	r.notificationsSent.Add(float64(n))
}

func (r *Recorder) EmailDelivered(ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	r.emailDeliveries.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestSeconds.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests and additional collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
