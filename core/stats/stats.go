// Package stats collects dispatch metrics for a command engine as
// Prometheus collectors on a private registry, with a plain-text
// snapshot for interactive display.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Collector holds the dispatch metrics for one engine.
type Collector struct {
	Dispatches       *prometheus.CounterVec
	UnknownCommands  prometheus.Counter
	DispatchDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates a collector on its own private registry, so several
// engines can carry independent metrics in one process.
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a collector on the given registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		Dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parley",
				Name:      "dispatches_total",
				Help:      "Total dispatched lines by matched command",
			},
			[]string{"command"},
		),
		UnknownCommands: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "parley",
				Name:      "unknown_commands_total",
				Help:      "Total dispatched lines no command matched",
			},
		),
		DispatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "parley",
				Name:      "dispatch_duration_seconds",
				Help:      "Dispatch duration in seconds",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
		gatherer: reg,
	}
}

// ObserveDispatch records one dispatch that matched a command.
func (c *Collector) ObserveDispatch(command string, d time.Duration) {
	c.Dispatches.WithLabelValues(command).Inc()
	c.DispatchDuration.Observe(d.Seconds())
}

// ObserveUnknown records one dispatch no command matched.
func (c *Collector) ObserveUnknown(d time.Duration) {
	c.UnknownCommands.Inc()
	c.DispatchDuration.Observe(d.Seconds())
}

// Snapshot renders the current metric values as display text, one
// metric series per line.
func (c *Collector) Snapshot() (string, error) {
	families, err := c.gatherer.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var b strings.Builder
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			fmt.Fprintf(&b, "%s%s %s\n", fam.GetName(), formatLabels(m), formatValue(fam.GetType(), m))
		}
	}
	return b.String(), nil
}

func formatLabels(m *dto.Metric) string {
	labels := m.GetLabel()
	if len(labels) == 0 {
		return ""
	}

	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	sort.Strings(parts)

	return "{" + strings.Join(parts, ",") + "}"
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return formatFloat(m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return formatFloat(m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%s", h.GetSampleCount(), formatFloat(h.GetSampleSum()))
	default:
		return "?"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
