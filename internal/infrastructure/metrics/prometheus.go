package metrics

import (
	"fmt"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "xungho"

// PrometheusRecorder implements Recorder on a private registry.
type PrometheusRecorder struct {
	registry     *prom.Registry
	storeTotal   *prom.CounterVec
	storeSeconds *prom.HistogramVec
	queryTotal   *prom.CounterVec
	querySeconds *prom.HistogramVec
	pathHops     prom.Histogram
}

// NewPrometheusRecorder creates a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	p := &PrometheusRecorder{
		registry: prom.NewRegistry(),
		storeTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "store_ops_total",
			Help:      "Total number of family store operations",
		}, []string{"op", "success"}),
		storeSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "store_op_seconds",
			Help:      "Family store operation duration in seconds",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "success"}),
		queryTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of relationship queries by relation kind and outcome",
		}, []string{"kind", "outcome"}),
		querySeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "query_seconds",
			Help:      "Relationship query duration in seconds, including snapshot load",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		pathHops: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "path_hops",
			Help:      "Length of the shortest path found between two people",
			Buckets:   prom.LinearBuckets(1, 1, 10),
		}),
	}
	p.registry.MustRegister(p.storeTotal, p.storeSeconds, p.queryTotal, p.querySeconds, p.pathHops)
	return p
}

// Registry returns the registry holding the recorder's collectors.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncStoreOpTotal(op string, success bool) {
	p.storeTotal.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusRecorder) ObserveStoreOpSeconds(op string, success bool, seconds float64) {
	p.storeSeconds.WithLabelValues(op, strconv.FormatBool(success)).Observe(seconds)
}

func (p *PrometheusRecorder) IncQueryTotal(kind, outcome string) {
	p.queryTotal.WithLabelValues(kind, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveQuerySeconds(outcome string, seconds float64) {
	p.querySeconds.WithLabelValues(outcome).Observe(seconds)
}

func (p *PrometheusRecorder) ObservePathHops(hops int) {
	p.pathHops.Observe(float64(hops))
}

// WriteTextfile writes the current metrics to path in the Prometheus text
// format, atomically, for a node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// EnableTextfile installs a Prometheus recorder when path is set and returns
// a flush func that writes the metrics file. With an empty path the no-op
// recorder stays in place and flush does nothing.
func EnableTextfile(path string) (flush func() error) {
	if path == "" {
		return func() error { return nil }
	}
	p := NewPrometheusRecorder()
	SetRecorder(p)
	return func() error {
		return p.WriteTextfile(path)
	}
}
