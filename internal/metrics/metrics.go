// Package metrics defines the Prometheus instruments for the relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission metrics
var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_submissions_total",
			Help: "Total number of form submissions received",
		},
		[]string{"kind", "outcome"}, // kind: contact, chat; outcome: delivered, rejected, failed
	)
)

// Delivery metrics
var (
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deliveries_total",
			Help: "Total number of transport delivery attempts",
		},
		[]string{"channel", "status"}, // channel: contact, chat_email, chat_sms; status: sent, failed
	)

	DeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_delivery_duration_seconds",
			Help:    "Duration of transport delivery attempts",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)
)

// HTTP metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
