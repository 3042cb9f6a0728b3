package pipeline

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"resumeforge-utils/pkg/models"
)

var (
	promOnce sync.Once

	stageDurationVec *prometheus.HistogramVec
	rendersTotalVec  *prometheus.CounterVec
)

func registerCollectors(namespace string) {
	promOnce.Do(func() {
		stageDurationVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each rendering stage.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"stage", "outcome"})

		rendersTotalVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "renders_total",
			Help:      "Completed render calls by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(stageDurationVec, rendersTotalVec)
	})
}

// Metrics is the per-stage performance surface: a queryable, clearable map
// from stage name to duration/timestamp/count, mirrored into Prometheus.
type Metrics struct {
	mu     sync.Mutex
	stages map[string]models.StageMetric
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "resumeforge"
	}
	registerCollectors(namespace)
	return &Metrics{stages: make(map[string]models.StageMetric)}
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, duration time.Duration, succeeded bool) {
	outcome := "success"
	if !succeeded {
		outcome = "failure"
	}
	stageDurationVec.WithLabelValues(stage, outcome).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	metric := m.stages[stage]
	metric.Duration = duration
	metric.Timestamp = time.Now()
	metric.Count++
	m.stages[stage] = metric
}

// ObserveRender records one completed render call.
func (m *Metrics) ObserveRender(succeeded bool) {
	outcome := "success"
	if !succeeded {
		outcome = "failure"
	}
	rendersTotalVec.WithLabelValues(outcome).Inc()
}

// Snapshot returns a copy of the stage metrics map.
func (m *Metrics) Snapshot() map[string]models.StageMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.StageMetric, len(m.stages))
	for stage, metric := range m.stages {
		out[stage] = metric
	}
	return out
}

// Reset clears the stage metrics map. Prometheus counters are cumulative
// and left alone.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages = make(map[string]models.StageMetric)
}
