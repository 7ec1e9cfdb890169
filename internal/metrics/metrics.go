package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hoteldesk",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hoteldesk",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RoomTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hoteldesk",
		Name:      "room_transitions_total",
		Help:      "Successful room changes by kind.",
	}, []string{"transition"})

	SaveConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hoteldesk",
		Name:      "room_save_conflicts_total",
		Help:      "Room saves rejected because the room changed since it was read.",
	})
)
