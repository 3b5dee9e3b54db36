package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		chatRequestsTotal,
		aiCallsLatencyMs,
		sanitizerFiltered,
	)
}

var (
	chatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Chat requests by terminal outcome (ok/validation_error/rate_limited/service_unavailable).",
		},
		[]string{"outcome"},
	)

	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"provider", "model", "success"},
	)

	sanitizerFiltered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sanitizer_filtered_total",
			Help: "Messages replaced with the [FILTERED] marker before reaching the model.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// IncChatRequest records one settled request by outcome.
func IncChatRequest(outcome string) {
	chatRequestsTotal.WithLabelValues(norm(outcome)).Inc()
}

// ObserveAICall records one provider call.
func ObserveAICall(provider, model string, latencyMs int, success bool) {
	aiCallsLatencyMs.WithLabelValues(norm(provider), norm(model), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

// IncFiltered counts a sanitizer substitution.
func IncFiltered() {
	sanitizerFiltered.Inc()
}
