package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SyncModeCreate = "create"
	SyncModeUpdate = "update"
	SyncModeRelink = "relink"

	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeStorage    = "storage"
	OutcomePartial    = "partial"
	OutcomeNotFound   = "not_found"
)

var (
	// Registry holds the jobtrack collectors.
	Registry = prometheus.NewRegistry()

	syncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobtrack",
			Name:      "sync_total",
			Help:      "Application synchronizations by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	linksWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobtrack",
			Name:      "links_written_total",
			Help:      "Link rows inserted by the synchronizer.",
		},
	)

	dashboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobtrack",
			Name:      "dashboard_cache_total",
			Help:      "Dashboard cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		syncTotal,
		linksWritten,
		dashboardCache,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordSync(mode, outcome string) {
	syncTotal.WithLabelValues(mode, outcome).Inc()
}

func RecordLinksWritten(n int) {
	if n <= 0 {
		return
	}
	linksWritten.Add(float64(n))
}

func RecordDashboardCache(hit bool) {
	if hit {
		dashboardCache.WithLabelValues("hit").Inc()
		return
	}
	dashboardCache.WithLabelValues("miss").Inc()
}
