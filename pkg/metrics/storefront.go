package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records scrape probe and webhook reconciliation outcomes.
type StorefrontMetrics struct {
	scrapeDuration *prometheus.HistogramVec
	scrapeOutcome  *prometheus.CounterVec
	webhookOutcome *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	scrapeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplier_scrape_duration_seconds",
		Help:    "Duration of supplier page fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"supplier"})
	scrapeOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_scrape_total",
		Help: "Supplier probe results by outcome.",
	}, []string{"supplier", "outcome"})
	webhookOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_total",
		Help: "Payment webhook notifications by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(scrapeDuration, scrapeOutcome, webhookOutcome)
	return &StorefrontMetrics{
		scrapeDuration: scrapeDuration,
		scrapeOutcome:  scrapeOutcome,
		webhookOutcome: webhookOutcome,
	}
}

// ObserveScrape records the duration of one supplier fetch.
func (m *StorefrontMetrics) ObserveScrape(supplier string, duration time.Duration) {
	if m == nil || m.scrapeDuration == nil {
		return
	}
	m.scrapeDuration.WithLabelValues(normalizeLabel(supplier)).Observe(duration.Seconds())
}

// IncScrape counts one supplier probe outcome ("ok" or "error").
func (m *StorefrontMetrics) IncScrape(supplier, outcome string) {
	if m == nil || m.scrapeOutcome == nil {
		return
	}
	m.scrapeOutcome.WithLabelValues(normalizeLabel(supplier), normalizeLabel(outcome)).Inc()
}

// IncWebhook counts one webhook outcome ("processed", "ignored", "unmatched",
// "error").
func (m *StorefrontMetrics) IncWebhook(outcome string) {
	if m == nil || m.webhookOutcome == nil {
		return
	}
	m.webhookOutcome.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
