package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scan pipeline.
type Metrics struct {
	// OCR latency by engine
	OCRLatency *prometheus.HistogramVec

	// Scans by document type and outcome
	Scans *prometheus.CounterVec

	// Field extraction hits and misses by document type and field
	FieldResults *prometheus.CounterVec

	RenderLatency prometheus.Histogram
}

// New creates the scan metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OCRLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dlscan_ocr_duration_seconds",
			Help:    "Duration of OCR recognition by engine",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"engine"}),

		Scans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dlscan_scans_total",
			Help: "Total scans by document type and status",
		}, []string{"document_type", "status"}), // status: "ok", "rejected", "ocr_error", "error"

		FieldResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dlscan_extracted_fields_total",
			Help: "Extracted fields by document type, field and result",
		}, []string{"document_type", "field", "result"}), // result: "hit", "miss"

		RenderLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dlscan_render_duration_seconds",
			Help:    "Duration of PDF rendering",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveOCRLatency records the duration of one recognition.
func (m *Metrics) ObserveOCRLatency(engine string, d time.Duration) {
	if m != nil {
		m.OCRLatency.WithLabelValues(engine).Observe(d.Seconds())
	}
}

// IncrementScan records a scan outcome.
func (m *Metrics) IncrementScan(documentType, status string) {
	if m != nil {
		m.Scans.WithLabelValues(documentType, status).Inc()
	}
}

// ObserveFields counts non-empty fields as hits and empty ones as misses.
func (m *Metrics) ObserveFields(documentType string, fields map[string]string) {
	if m == nil {
		return
	}
	for field, value := range fields {
		result := "hit"
		if value == "" {
			result = "miss"
		}
		m.FieldResults.WithLabelValues(documentType, field, result).Inc()
	}
}

// ObserveRenderLatency records the duration of one PDF render.
func (m *Metrics) ObserveRenderLatency(d time.Duration) {
	if m != nil {
		m.RenderLatency.Observe(d.Seconds())
	}
}
