package bot

import "github.com/prometheus/client_golang/prometheus"

// Command metrics, registered by the metrics server at startup.
var (
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gainsmud_commands_total",
			Help: "Total number of dispatched commands by name and outcome",
		},
		[]string{"command", "outcome"},
	)

	staleCommandsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gainsmud_stale_commands_dropped_total",
			Help: "Commands silently dropped because they predate process start",
		},
	)
)

// Collectors returns every metric this package exposes.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{commandsTotal, staleCommandsTotal}
}
