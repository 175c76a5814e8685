package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records cart quote activity.
type PricingMetrics struct {
	quotes   prometheus.Counter
	applied  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quotes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Cart quotes computed.",
	})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_campaign_applied_total",
		Help: "Cart lines discounted by a campaign.",
	}, []string{"type"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of cart quotes in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(quotes, applied, duration)
	return &PricingMetrics{
		quotes:   quotes,
		applied:  applied,
		duration: duration,
	}
}

// IncQuote counts one computed quote.
func (p *PricingMetrics) IncQuote() {
	if p == nil || p.quotes == nil {
		return
	}
	p.quotes.Inc()
}

// IncCampaignApplied counts one discounted line for the campaign type.
func (p *PricingMetrics) IncCampaignApplied(campaignType string) {
	if p == nil || p.applied == nil {
		return
	}
	p.applied.WithLabelValues(normalizeLabel(campaignType)).Inc()
}

// ObserveQuoteDuration records how long a quote took.
func (p *PricingMetrics) ObserveQuoteDuration(d time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
