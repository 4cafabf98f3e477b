// Package metrics provides Prometheus metrics for slackfs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Remote API metrics
	remoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slackfs_remote_calls_total",
			Help: "Total number of remote API calls",
		},
		[]string{"op", "status"},
	)

	remoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slackfs_remote_call_duration_seconds",
			Help:    "Remote API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// Content transfer metrics
	contentBytesDownloaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slackfs_content_bytes_downloaded_total",
			Help: "Total bytes of item content downloaded",
		},
	)

	contentBytesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slackfs_content_bytes_uploaded_total",
			Help: "Total bytes of item content uploaded on write-back",
		},
	)

	contentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slackfs_content_cache_total",
			Help: "Content cache lookups by result",
		},
		[]string{"result"},
	)

	writeBacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slackfs_write_backs_total",
			Help: "Write-back uploads by status",
		},
		[]string{"status"},
	)

	// Index metrics
	indexedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slackfs_indexed_items",
			Help: "Number of items held in the in-memory item index",
		},
	)
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRemoteCall records one remote API call that started at start.
func ObserveRemoteCall(op string, start time.Time, err error) {
	remoteCallsTotal.WithLabelValues(op, status(err)).Inc()
	remoteCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RecordDownload records downloaded content bytes.
func RecordDownload(bytes int) {
	contentBytesDownloaded.Add(float64(bytes))
}

// RecordContentLookup records a content cache hit or miss.
func RecordContentLookup(hit bool) {
	if hit {
		contentCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	contentCacheTotal.WithLabelValues("miss").Inc()
}

// RecordWriteBack records the outcome of one write-back upload.
func RecordWriteBack(bytes int, err error) {
	writeBacksTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		contentBytesUploaded.Add(float64(bytes))
	}
}

// AddIndexedItems adjusts the indexed item gauge by delta.
func AddIndexedItems(delta int) {
	indexedItems.Add(float64(delta))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
