package jukebox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "jukebox"

// Download outcome labels.
const (
	downloadResultSuccess      = "success"
	downloadResultCanceled     = "canceled"
	downloadResultFailed       = "failed"
	downloadResultSizeMismatch = "size_mismatch"
	downloadResultMD5Mismatch  = "md5_mismatch"
)

// Import outcome labels.
const (
	importResultSuccess = "success"
	importResultFailed  = "failed"
)

// Metrics holds the Prometheus collectors of a jukebox.
type Metrics struct {
	downloads       *prometheus.CounterVec
	downloadedBytes prometheus.Counter
	uploadedBytes   prometheus.Counter
	imports         *prometheus.CounterVec
	songsPlayed     prometheus.Counter
	missingFiles    prometheus.Counter
	prefetchBatches prometheus.Counter
	cachedFiles     prometheus.Gauge
}

// NewMetrics creates the jukebox collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		downloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "song_downloads_total",
			Help:      "Song downloads into the play cache by result.",
		}, []string{"result"}),
		downloadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "downloaded_bytes_total",
			Help:      "Bytes retrieved from the storage backend.",
		}),
		uploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploaded_bytes_total",
			Help:      "Bytes stored in the storage backend.",
		}),
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "imports_total",
			Help:      "Imported items by category and result.",
		}, []string{"category", "result"}),
		songsPlayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "songs_played_total",
			Help:      "Songs handed to the audio player or simulated playback.",
		}),
		missingFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "missing_files_total",
			Help:      "Songs that were not resident in the cache when their turn came.",
		}),
		prefetchBatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "prefetch_batches_total",
			Help:      "Prefetch batches scheduled.",
		}),
		cachedFiles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cached_files",
			Help:      "Fully written files in the play cache at the last prefetch scan.",
		}),
	}
}
