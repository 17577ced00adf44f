package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics exposes counters/histograms for webhook and proxy flows.
type WebhookMetrics struct {
	verifyTotal    *prometheus.CounterVec
	ingestTotal    *prometheus.CounterVec
	mediaProxy     *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commshub",
			Subsystem: "webhook",
			Name:      "verify_total",
			Help:      "Total webhook verification handshakes",
		}, []string{"result"}),
		ingestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commshub",
			Subsystem: "webhook",
			Name:      "ingest_total",
			Help:      "Total webhook ingest deliveries",
		}, []string{"outcome"}),
		mediaProxy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commshub",
			Subsystem: "media",
			Name:      "proxy_total",
			Help:      "Total media proxy requests",
		}, []string{"status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commshub",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Latency of webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.verifyTotal, m.ingestTotal, m.mediaProxy, m.webhookLatency)
	return m
}

func (m *WebhookMetrics) ObserveVerify(result string) {
	if m == nil {
		return
	}
	m.verifyTotal.WithLabelValues(result).Inc()
}

func (m *WebhookMetrics) ObserveIngest(outcome string) {
	if m == nil {
		return
	}
	m.ingestTotal.WithLabelValues(outcome).Inc()
}

func (m *WebhookMetrics) ObserveMediaProxy(status string) {
	if m == nil {
		return
	}
	m.mediaProxy.WithLabelValues(status).Inc()
}

func (m *WebhookMetrics) ObserveLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(operation).Observe(seconds)
}
