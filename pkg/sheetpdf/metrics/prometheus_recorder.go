package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sheetpdf"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry  *prom.Registry
	sheets    *prom.CounterVec
	fallbacks *prom.CounterVec
	pages     prom.Histogram
	duration  prom.Histogram
	outcomes  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the conversion metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		sheets: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_total",
			Help:      "Sheets processed by result",
		}, []string{"result"}),
		fallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "read_fallbacks_total",
			Help:      "Sheet reads that fell back to the default parser, by primary strategy",
		}, []string{"strategy"}),
		pages: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_pages",
			Help:      "Pages per rendered document",
			Buckets:   prom.ExponentialBuckets(1, 2, 10),
		}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Total workbook conversion duration",
			Buckets:   prom.DefBuckets,
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_outcomes_total",
			Help:      "Workbook conversions by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.sheets, pr.fallbacks, pr.pages, pr.duration, pr.outcomes)
	return pr
}

// WriteTextfile writes the current metrics in the node exporter textfile
// format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) IncSheetResult(result SheetResult) {
	if p == nil {
		return
	}
	p.sheets.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncReadFallback(strategy string) {
	if p == nil {
		return
	}
	p.fallbacks.WithLabelValues(strategy).Inc()
}

func (p *PrometheusRecorder) ObservePages(n int) {
	if p == nil {
		return
	}
	p.pages.Observe(float64(n))
}

func (p *PrometheusRecorder) ObserveConversionDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.duration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConversionOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}
