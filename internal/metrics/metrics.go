package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChunksAccepted counts chunk blobs written to the chunk store
	ChunksAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kaija_chunks_accepted_total",
		Help: "Number of upload chunks accepted.",
	})

	// AssembliesCompleted counts sessions assembled into a final asset file
	AssembliesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kaija_assemblies_completed_total",
		Help: "Number of upload sessions assembled into an asset.",
	})

	// TranscodeResults counts transcode worker outcomes by final status
	TranscodeResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kaija_transcode_results_total",
		Help: "Number of transcode runs by final status.",
	}, []string{"status"})

	// SessionsSwept counts abandoned upload sessions deleted by the sweeper
	SessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kaija_sessions_swept_total",
		Help: "Number of abandoned upload sessions deleted.",
	})

	// EventSubscribers tracks currently connected status-stream viewers
	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kaija_event_subscribers",
		Help: "Number of connected status-stream subscribers.",
	})
)
