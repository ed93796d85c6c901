package main

import (
	"bufio"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type metrics struct {
	reg     *prometheus.Registry
	seconds *prometheus.HistogramVec
	keys    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		seconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sortbench_sort_seconds",
			Help:    "Wall time of one sort call.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"algorithm", "size"}),
		keys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_keys_sorted_total",
			Help: "Keys sorted and verified.",
		}, []string{"algorithm"}),
	}
	m.reg.MustRegister(m.seconds, m.keys)
	return m
}

func (m *metrics) observe(r BenchmarkResult) {
	m.seconds.WithLabelValues(r.Algorithm, strconv.Itoa(r.DataSize)).Observe(r.Duration.Seconds())
	m.keys.WithLabelValues(r.Algorithm).Add(float64(r.DataSize))
}

// writeFile dumps the registry in the Prometheus text exposition format.
func (m *metrics) writeFile(path string) error {
	families, err := m.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "writing metrics")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return errors.Wrap(w.Flush(), "writing metrics")
}
