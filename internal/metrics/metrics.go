package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradeagent_alerts_total", Help: "Alerts received by the pipeline"},
		[]string{"symbol", "signal"},
	)
	RejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradeagent_rejected_alerts_total", Help: "Alerts rejected as malformed input"},
		[]string{"field"},
	)
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradeagent_validations_total", Help: "Validation outcomes"},
		[]string{"valid"},
	)
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradeagent_decisions_total", Help: "Trade decisions by action"},
		[]string{"symbol", "action"},
	)
	ExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradeagent_executions_total", Help: "Execution results by mode and status"},
		[]string{"mode", "status"},
	)
	PipelineSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradeagent_pipeline_seconds",
		Help:    "Time spent running one alert through the pipeline",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(AlertsTotal, RejectedTotal, ValidationsTotal, DecisionsTotal, ExecutionsTotal, PipelineSeconds)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
