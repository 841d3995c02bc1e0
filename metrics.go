// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const prefix = "zone_resolver_"

var subnetInfoDesc = prometheus.NewDesc(prefix+"subnet_info", "Configured CIDR-to-zone mapping", []string{"cidr", "zone", "zone_id"}, nil)

type metrics struct {
	registry        *prometheus.Registry
	lookups         *prometheus.CounterVec
	resolveDuration prometheus.Histogram
}

func newMetrics(table *zoneTable) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "lookups_total",
			Help: "Number of lookup requests by result",
		}, []string{"result"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "dns_resolution_duration_seconds",
			Help:    "Duration of DNS resolutions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(m.lookups)
	m.registry.MustRegister(m.resolveDuration)
	m.registry.MustRegister(&subnetCollector{table: table})

	return m
}

func (m *metrics) countLookup(result string) {
	m.lookups.WithLabelValues(result).Inc()
}

func (m *metrics) observeResolveDuration(d time.Duration) {
	m.resolveDuration.Observe(d.Seconds())
}

func (m *metrics) handler() http.Handler {
	l := log.New()
	l.Level = log.ErrorLevel

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      l,
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// subnetCollector exports one info metric per configured subnet so dashboards
// can join lookup results against the static table.
type subnetCollector struct {
	table *zoneTable
}

func (s *subnetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- subnetInfoDesc
}

func (s *subnetCollector) Collect(ch chan<- prometheus.Metric) {
	for _, e := range s.table.entries {
		ch <- prometheus.MustNewConstMetric(subnetInfoDesc, prometheus.GaugeValue, 1, e.network.String(), e.zone, e.zoneID)
	}
}
