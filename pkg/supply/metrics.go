package supply

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var fetchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gainsmud_supply_fetch_duration_seconds",
		Help:    "Duration of upstream supply fetches, per endpoint and outcome",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "outcome"},
)

// Collectors returns the package's metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{fetchDuration}
}

// observeFetch records one fetch, retries included.
func observeFetch(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	fetchDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
}
