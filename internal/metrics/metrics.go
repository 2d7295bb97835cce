// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PoolVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "luvora_pool_version",
			Help: "Version of the message pool this process is serving.",
		})

	PoolLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "luvora_pool_load_errors_total",
			Help: "Cumulative number of failed pool loads.",
		})

	SparkSelectTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luvora_spark_select_total",
			Help: "Daily spark selections served, labelled by morning-slot rarity.",
		},
		[]string{"rarity"})

	SparkSelectErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "luvora_spark_select_errors_total",
			Help: "Cumulative number of selector failures (bad dates, empty buckets).",
		})

	ArchiveRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luvora_archive_requests_total",
			Help: "Archive recomputations served, labelled by tier.",
		},
		[]string{"tier"})

	EngagementWritesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "luvora_engagement_writes_total",
			Help: "Cumulative number of engagement events stored.",
		})
)

func init() {
	prometheus.MustRegister(
		PoolVersion,
		PoolLoadErrorsTotal,
		SparkSelectTotal,
		SparkSelectErrorsTotal,
		ArchiveRequestsTotal,
		EngagementWritesTotal,
	)
}
