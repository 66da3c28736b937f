package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	// Matrix engine metrics
	matrixLoadsTotal   *prometheus.CounterVec
	matrixCommitsTotal *prometheus.CounterVec
	commitDuration     prometheus.Histogram
)

// Register initializes the collectors and returns the handler for /metrics.
func Register(registry prometheus.Registerer) http.Handler {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	registerOnce.Do(func() {
		matrixLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matrix_loads_total",
			Help: "Grid load attempts by result",
		}, []string{"result"})

		matrixCommitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matrix_commits_total",
			Help: "Permission commit attempts by result",
		}, []string{"result"})

		commitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matrix_commit_duration_seconds",
			Help:    "Latency of permission store upserts",
			Buckets: prometheus.DefBuckets,
		})

		registry.MustRegister(matrixLoadsTotal, matrixCommitsTotal, commitDuration)
	})

	return promhttp.Handler()
}

func ObserveLoad(result string) {
	if matrixLoadsTotal != nil {
		matrixLoadsTotal.WithLabelValues(result).Inc()
	}
}

func ObserveCommit(result string, seconds float64) {
	if matrixCommitsTotal != nil {
		matrixCommitsTotal.WithLabelValues(result).Inc()
	}
	if commitDuration != nil && seconds >= 0 {
		commitDuration.Observe(seconds)
	}
}
