// Package metrics provides Prometheus metrics for the fastfishy service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	KindReport  = "report"
	KindHistory = "history"

	OutcomeOK    = "ok"
	OutcomeError = "error"

	EngineCombine     = "combine"
	EngineImprovement = "improvement"
	EngineTripleDrop  = "triple_drop"
	EngineFastFishy   = "fast_fishy"
	EngineSeason      = "season"
)

// Manager manages all Prometheus metrics for the fastfishy service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Ingestion
	documentsIngested *prometheus.CounterVec
	eventsParsed      prometheus.Counter
	linesSkipped      prometheus.Counter
	rowsSkipped       *prometheus.CounterVec

	// Engines
	pairsFound    prometheus.Counter
	verdicts      *prometheus.CounterVec
	labelsEmitted *prometheus.CounterVec
	engineLatency *prometheus.HistogramVec

	// Artifacts
	artifactsStored prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fastfishy",
		subsystem:        "meet",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.documentsIngested = auto.NewCounterVec(
		m.counterOpts("documents_ingested_total", "Uploaded or opened documents by kind and outcome"),
		[]string{"kind", "outcome"},
	)
	m.eventsParsed = auto.NewCounter(m.counterOpts("events_parsed_total", "Events recognised in session reports"))
	m.linesSkipped = auto.NewCounter(m.counterOpts("report_lines_skipped_total", "Session report lines that matched no event pattern"))
	m.rowsSkipped = auto.NewCounterVec(
		m.counterOpts("rows_skipped_total", "Input rows ignored during normalization, by reason"),
		[]string{"reason"},
	)

	m.pairsFound = auto.NewCounter(m.counterOpts("pairs_found_total", "Female/male event pairs the combination engine produced"))
	m.verdicts = auto.NewCounterVec(
		m.counterOpts("verdicts_total", "Combination verdict rows by reason"),
		[]string{"reason"},
	)
	m.labelsEmitted = auto.NewCounterVec(
		m.counterOpts("labels_emitted_total", "Award labels emitted by award kind"),
		[]string{"award"},
	)
	m.engineLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "engine_latency_milliseconds",
			Help:        "Engine run latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"engine"},
	)

	m.artifactsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "artifacts_stored",
		Help:        "Generated files currently held for download",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewGauge(m.gaugeOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

// RecordDocumentIngested counts one ingested document.
func (m *Manager) RecordDocumentIngested(kind, outcome string) {
	if m.enabled {
		m.documentsIngested.WithLabelValues(kind, outcome).Inc()
	}
}

// RecordEventsParsed adds parsed events and skipped report lines.
func (m *Manager) RecordEventsParsed(events, skippedLines int) {
	if m.enabled {
		m.eventsParsed.Add(float64(events))
		m.linesSkipped.Add(float64(skippedLines))
	}
}

// RecordRowsSkipped adds ignored input rows for reason.
func (m *Manager) RecordRowsSkipped(reason string, n int) {
	if m.enabled && n > 0 {
		m.rowsSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordPairsFound adds combinable pairs.
func (m *Manager) RecordPairsFound(n int) {
	if m.enabled {
		m.pairsFound.Add(float64(n))
	}
}

// RecordVerdict counts one verdict row.
func (m *Manager) RecordVerdict(reason string) {
	if m.enabled {
		m.verdicts.WithLabelValues(reason).Inc()
	}
}

// RecordLabelsEmitted adds award labels for award.
func (m *Manager) RecordLabelsEmitted(award string, n int) {
	if m.enabled {
		m.labelsEmitted.WithLabelValues(award).Add(float64(n))
	}
}

// RecordEngineLatency observes an engine run in milliseconds.
func (m *Manager) RecordEngineLatency(engine string, latencyMs float64) {
	if m.enabled {
		m.engineLatency.WithLabelValues(engine).Observe(latencyMs)
	}
}

// UpdateArtifactsStored sets the stored artifact count.
func (m *Manager) UpdateArtifactsStored(n int) {
	if m.enabled {
		m.artifactsStored.Set(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(n int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(n))
	}
}

// RecordSystemGCPauseTime sets the average GC pause.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if m.enabled {
		m.systemGCPauseTime.Set(ms)
	}
}

// Package-level recorders delegate to the global manager.

// RecordDocumentIngested counts one ingested document.
func RecordDocumentIngested(kind, outcome string) { globalManager.RecordDocumentIngested(kind, outcome) }

// RecordEventsParsed adds parsed events and skipped report lines.
func RecordEventsParsed(events, skippedLines int) {
	globalManager.RecordEventsParsed(events, skippedLines)
}

// RecordRowsSkipped adds ignored input rows for reason.
func RecordRowsSkipped(reason string, n int) { globalManager.RecordRowsSkipped(reason, n) }

// RecordPairsFound adds combinable pairs.
func RecordPairsFound(n int) { globalManager.RecordPairsFound(n) }

// RecordVerdict counts one verdict row.
func RecordVerdict(reason string) { globalManager.RecordVerdict(reason) }

// RecordLabelsEmitted adds award labels for award.
func RecordLabelsEmitted(award string, n int) { globalManager.RecordLabelsEmitted(award, n) }

// RecordEngineLatency observes an engine run in milliseconds.
func RecordEngineLatency(engine string, latencyMs float64) {
	globalManager.RecordEngineLatency(engine, latencyMs)
}

// UpdateArtifactsStored sets the stored artifact count.
func UpdateArtifactsStored(n int) { globalManager.UpdateArtifactsStored(n) }

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime sets the average GC pause.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
