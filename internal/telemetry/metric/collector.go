// Package metric provides Prometheus metrics for greetd.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/avosk/greetd/internal/infra/buildinfo"
)

// buildCollector exposes build information and process uptime.
type buildCollector struct {
	start  time.Time
	info   *prometheus.Desc
	uptime *prometheus.Desc
}

func newBuildCollector() *buildCollector {
	return &buildCollector{
		start: time.Now(),
		info: prometheus.NewDesc(
			"greetd_build_info",
			"Build information, value is always 1.",
			nil,
			prometheus.Labels{
				"version": buildinfo.Version,
				"commit":  buildinfo.Commit,
			},
		),
		uptime: prometheus.NewDesc(
			"greetd_uptime_seconds",
			"Seconds since the process started.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *buildCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.uptime
}

// Collect implements prometheus.Collector.
func (c *buildCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, time.Since(c.start).Seconds())
}
