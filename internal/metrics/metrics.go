package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PageViewsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "page_views_recorded_total", Help: "Number of page views written to the analytics store."},
	)
	PageViewsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "page_views_dropped_total", Help: "Number of dispatched page views that were not recorded, by reason."},
		[]string{"reason"},
	)
	CommentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "comments_created_total", Help: "Number of comments created, by initial moderation state."},
		[]string{"approved"},
	)
	StoreUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "portfolio", Name: "store_up", Help: "Result of the last liveness probe per store (1 = up)."},
		[]string{"store"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed write requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected write requests by limiter type."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers the domain collectors on reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		PageViewsRecorded,
		PageViewsDropped,
		CommentsCreated,
		StoreUp,
		RateLimitAllowed,
		RateLimitRejected,
	)
}
