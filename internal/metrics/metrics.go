// Package metrics bundles the Prometheus collectors for dataset loading and
// rendering.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used for the duration histogram.
const (
	StageLoad   = "load"
	StageRender = "render"
)

// Ring kinds used for ring and vertex counters.
const (
	KindExterior = "exterior"
	KindInterior = "interior"
)

// Collector holds the load and render metrics.
//
// A nil *Collector is valid and records nothing, so library code can call
// its methods unconditionally.
type Collector struct {
	AreasLoaded    prometheus.Counter
	RecordsSkipped *prometheus.CounterVec
	Rings          *prometheus.CounterVec
	VerticesDrawn  *prometheus.CounterVec
	LabelsDrawn    prometheus.Counter
	StageDurations *prometheus.HistogramVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice on the same registry returns
// the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	loaded, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oarender_areas_loaded_total",
		Help: "Total number of output areas added to a registry.",
	}), "oarender_areas_loaded_total")
	if err != nil {
		return nil, err
	}

	skipped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oarender_records_skipped_total",
		Help: "Dataset records or vertices skipped under a skip-and-continue policy, by reason.",
	}, []string{"reason"}), "oarender_records_skipped_total")
	if err != nil {
		return nil, err
	}

	rings, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oarender_rings_total",
		Help: "Rings decoded from polygon records, by kind.",
	}, []string{"kind"}), "oarender_rings_total")
	if err != nil {
		return nil, err
	}

	vertices, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oarender_vertices_drawn_total",
		Help: "Boundary vertices written to the canvas, by ring kind.",
	}, []string{"kind"}), "oarender_vertices_drawn_total")
	if err != nil {
		return nil, err
	}

	labels, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oarender_labels_drawn_total",
		Help: "Area labels written to the canvas.",
	}), "oarender_labels_drawn_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oarender_stage_duration_seconds",
		Help:    "Wall time of the load and render passes in seconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"}), "oarender_stage_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		AreasLoaded:    loaded,
		RecordsSkipped: skipped,
		Rings:          rings,
		VerticesDrawn:  vertices,
		LabelsDrawn:    labels,
		StageDurations: durations,
	}, nil
}

// AreaLoaded records one area added with the given number of holes.
func (c *Collector) AreaLoaded(holes int) {
	if c == nil {
		return
	}
	c.AreasLoaded.Inc()
	c.Rings.WithLabelValues(KindExterior).Inc()
	if holes > 0 {
		c.Rings.WithLabelValues(KindInterior).Add(float64(holes))
	}
}

// Skipped records one skipped record or vertex.
func (c *Collector) Skipped(reason string) {
	if c == nil {
		return
	}
	c.RecordsSkipped.WithLabelValues(reason).Inc()
}

// VertexDrawn records one vertex pixel of the given ring kind.
func (c *Collector) VertexDrawn(kind string) {
	if c == nil {
		return
	}
	c.VerticesDrawn.WithLabelValues(kind).Inc()
}

// LabelDrawn records one label.
func (c *Collector) LabelDrawn() {
	if c == nil {
		return
	}
	c.LabelsDrawn.Inc()
}

// ObserveStage records the duration of a pass.
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.StageDurations.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
