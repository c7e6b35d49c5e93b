package store

import "github.com/prometheus/client_golang/prometheus"

var (
	mutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "casetracker_store_mutations_total", Help: "Count of record store mutations"},
		[]string{"collection", "op"},
	)
	blobErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "casetracker_blob_errors_total", Help: "Count of swallowed blob store failures"},
		[]string{"op"},
	)
	blobWriteSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "casetracker_blob_write_seconds",
			Help:    "Latency of blob store writes",
			Buckets: prometheus.DefBuckets,
		},
	)
	storeRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "casetracker_store_records", Help: "Records held per collection"},
		[]string{"collection"},
	)
)

func init() {
	prometheus.MustRegister(mutationsTotal, blobErrorsTotal, blobWriteSeconds, storeRecords)
}
