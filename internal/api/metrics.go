package api

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatterly_api_requests_total",
		Help: "The total number of backend API requests that got a response",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatterly_api_request_duration_seconds",
		Help:    "Backend API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
