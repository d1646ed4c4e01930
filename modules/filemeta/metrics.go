package filemeta

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "earlbox_uploads_total",
			Help: "Upload requests by outcome.",
		},
		[]string{"result"},
	)

	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "earlbox_lookups_total",
			Help: "Lookups by public link by outcome (cache_hit, hit, miss, error).",
		},
		[]string{"result"},
	)

	statsRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "earlbox_stats_requests_total",
			Help: "Aggregate stats requests.",
		},
	)
)
