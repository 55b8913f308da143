package obs

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hospilog_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospilog_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hospilog_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	authOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospilog_auth_outcomes_total",
			Help: "Auth flow results by step and outcome.",
		},
		[]string{"step", "outcome"},
	)

	otpSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospilog_otp_sent_total",
			Help: "One-time codes handed to the mailer.",
		},
		[]string{"result"},
	)

	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospilog_order_transitions_total",
			Help: "Order lifecycle transitions.",
		},
		[]string{"from", "to"},
	)

	registerOnce sync.Once
)

// Init registers every collector with the default registry. Safe to call twice.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPInFlight, HTTPRequestsTotal, HTTPRequestDuration,
			authOutcomes, otpSent, orderTransitions,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func AuthOutcome(step, outcome string) {
	authOutcomes.WithLabelValues(step, outcome).Inc()
}

func OTPSent(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	otpSent.WithLabelValues(result).Inc()
}

func OrderTransition(from, to string) {
	orderTransitions.WithLabelValues(from, to).Inc()
}
