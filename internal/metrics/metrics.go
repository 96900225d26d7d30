// Package metrics exposes the service's Prometheus counters. They are
// registered on the default registry and served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "endlleestube",
		Name:      "registrations_total",
		Help:      "Number of successfully registered accounts.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "endlleestube",
		Name:      "logins_total",
		Help:      "Number of login attempts by result.",
	}, []string{"result"})

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "endlleestube",
		Name:      "token_refreshes_total",
		Help:      "Number of refresh-token rotations by result.",
	}, []string{"result"})

	VideoUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "endlleestube",
		Name:      "video_uploads_total",
		Help:      "Number of accepted video uploads.",
	})

	VideoViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "endlleestube",
		Name:      "video_views_total",
		Help:      "Number of unique video views recorded.",
	})
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
