// Package prometheus exposes crawl progress as Prometheus metrics, written
// to a textfile for the node exporter textfile collector.
package prometheus

import (
	"github.com/fwojciec/sitetext/crawl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the events of a crawl run.
type Metrics struct {
	registry *prometheus.Registry

	pages      *prometheus.CounterVec
	flushes    *prometheus.CounterVec
	queued     prometheus.Gauge
	processed  prometheus.Gauge
	maxDepth   prometheus.Gauge
	lastFinish prometheus.Gauge
}

// NewMetrics creates Metrics on a private registry labeled with mode.
func NewMetrics(mode string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"mode": mode}, reg))

	return &Metrics{
		registry: reg,
		pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitetext_pages_total",
				Help: "Pages processed, by outcome.",
			},
			[]string{"outcome"},
		),
		flushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitetext_flushes_total",
				Help: "Progress snapshots written, by result.",
			},
			[]string{"result"},
		),
		queued: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sitetext_frontier_queued",
			Help: "Tasks waiting in the frontier, including stale duplicates.",
		}),
		processed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sitetext_processed",
			Help: "Tasks processed so far.",
		}),
		maxDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sitetext_max_depth_reached",
			Help: "Deepest depth of a processed page.",
		}),
		lastFinish: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sitetext_last_finish_timestamp_seconds",
			Help: "Unix time the last crawl run finished.",
		}),
	}
}

// Observe records a crawl progress event. It has the signature of
// crawl.ProgressFunc.
func (m *Metrics) Observe(event crawl.ProgressEvent) {
	m.queued.Set(float64(event.Queued))
	m.processed.Set(float64(event.Completed))

	switch event.Type {
	case crawl.ProgressCompleted:
		m.pages.WithLabelValues("saved").Inc()
		m.observeDepth(event.Depth)
	case crawl.ProgressFailed:
		m.pages.WithLabelValues("failed").Inc()
		m.observeDepth(event.Depth)
	case crawl.ProgressSkipped:
		m.pages.WithLabelValues("skipped").Inc()
	case crawl.ProgressFlushed:
		if event.Error != nil {
			m.flushes.WithLabelValues("error").Inc()
		} else {
			m.flushes.WithLabelValues("ok").Inc()
		}
	case crawl.ProgressFinished:
		m.lastFinish.SetToCurrentTime()
	}
}

func (m *Metrics) observeDepth(depth int) {
	// Depth never decreases in a breadth-first run.
	m.maxDepth.Set(float64(depth))
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
