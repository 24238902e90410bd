package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Total chat messages handled, regardless of outcome
	ChatRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Total number of chat messages processed",
	})

	// Classified intents by label
	ChatIntents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_intents_total",
		Help: "Total number of classified chat intents",
	}, []string{"intent"})

	// Latency of a single Groq chat-completion round trip
	NLPRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlp_request_latency_seconds",
		Help:    "Latency of Groq completion calls",
		Buckets: prometheus.DefBuckets,
	})
)

func Init() {
	prometheus.MustRegister(
		ChatRequests,
		ChatIntents,
		NLPRequestLatency,
	)
}
