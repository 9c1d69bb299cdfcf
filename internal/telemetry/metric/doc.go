// Package metric provides Prometheus metrics for greetd.
//
// The Registry bundles request counters, a latency histogram, an
// in-flight gauge and a build-info/uptime collector on a private
// prometheus registry, and serves them through Handler() on /metrics.
package metric
