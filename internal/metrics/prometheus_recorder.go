package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	documents       prom.Gauge
	aliasKeys       prom.Gauge
	aliasCollisions prom.Counter
	resolves        *prom.CounterVec
	pageViews       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "manifest_stage_duration_seconds",
			Help:      "Duration of individual manifest build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "manifest_build_duration_seconds",
			Help:      "Total manifest build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_builds_total",
			Help:      "Manifest builds by outcome",
		}, []string{"result"}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_documents",
			Help:      "Documents in the loaded manifest",
		}),
		aliasKeys: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_alias_keys",
			Help:      "Alias keys in the loaded manifest lookup table",
		}),
		aliasCollisions: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_alias_collisions_total",
			Help:      "Alias keys claimed by more than one document during a build",
		}),
		resolves: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "slug_resolutions_total",
			Help:      "Slug resolutions by result",
		}, []string{"result"}),
		pageViews: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Page lookups by rendered kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.documents,
		pr.aliasKeys, pr.aliasCollisions, pr.resolves, pr.pageViews)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(result ResultLabel) {
	p.buildOutcome.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetManifestSize(documents, aliasKeys int) {
	p.documents.Set(float64(documents))
	p.aliasKeys.Set(float64(aliasKeys))
}

func (p *PrometheusRecorder) IncAliasCollision() { p.aliasCollisions.Inc() }

func (p *PrometheusRecorder) IncResolve(result ResultLabel) {
	p.resolves.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncPageView(kind string) {
	p.pageViews.WithLabelValues(kind).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics in reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
