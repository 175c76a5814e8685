package metrics

import "github.com/prometheus/client_golang/prometheus"

// CatalogMetrics records variant regeneration outcomes.
type CatalogMetrics struct {
	commits *prometheus.CounterVec
	dropped prometheus.Counter
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_variant_regenerations_total",
		Help: "Variant regeneration commits by outcome.",
	}, []string{"outcome"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_variants_dropped_total",
		Help: "Variants dropped by committed regenerations.",
	})
	reg.MustRegister(commits, dropped)
	return &CatalogMetrics{commits: commits, dropped: dropped}
}

// ObserveRegenerate records a commit attempt and, on success, the dropped count.
func (c *CatalogMetrics) ObserveRegenerate(outcome string, dropped int) {
	if c == nil || c.commits == nil {
		return
	}
	c.commits.WithLabelValues(normalizeLabel(outcome)).Inc()
	if dropped > 0 {
		c.dropped.Add(float64(dropped))
	}
}
