package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	entitiesCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jouerflux_entities_created_total",
		Help: "Total number of firewalls, policies and rules created",
	}, []string{"entity"})
	entitiesDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jouerflux_entities_deleted_total",
		Help: "Total number of firewalls, policies and rules deleted",
	}, []string{"entity"})
	conflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jouerflux_conflicts_total",
		Help: "Total number of writes rejected by a uniqueness or association conflict",
	}, []string{"entity"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jouerflux_validation_failures_total",
		Help: "Total number of payloads rejected by input validation",
	}, []string{"entity"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jouerflux_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Register registers Prometheus collectors. Call once per registry.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(entitiesCreated, entitiesDeleted, conflicts, validationFailures, requestDuration)
}

// IncCreated counts a successful create of entity.
func IncCreated(entity string) { entitiesCreated.WithLabelValues(entity).Inc() }

// IncDeleted counts a successful delete of entity.
func IncDeleted(entity string) { entitiesDeleted.WithLabelValues(entity).Inc() }

// IncConflict counts a write rejected as a conflict.
func IncConflict(entity string) { conflicts.WithLabelValues(entity).Inc() }

// IncValidationFailure counts a payload rejected before reaching the store.
func IncValidationFailure(entity string) { validationFailures.WithLabelValues(entity).Inc() }

// ObserveRequest records the latency of one handled request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
