package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	brewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewd_brews_total",
		Help: "Completed brews by drink.",
	}, []string{"drink"})

	fillsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewd_fills_total",
		Help: "Completed container refills.",
	}, []string{"container"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewd_request_errors_total",
		Help: "Failed requests by error class.",
	}, []string{"class"})
)

// RegisterMetrics registers the Prometheus handler on the provided mux.
func RegisterMetrics(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}
