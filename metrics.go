package quicmux

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionsAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quicmux_connections_accepted_total",
			Help: "Total number of QUIC connections returned by Accept",
		},
	)

	streamsAcceptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicmux_streams_accepted_total",
			Help: "Total number of peer-initiated streams accepted",
		},
		[]string{"direction"},
	)

	streamsOpenedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicmux_streams_opened_total",
			Help: "Total number of locally opened streams",
		},
		[]string{"direction"},
	)

	streamAbortsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicmux_stream_aborts_total",
			Help: "Total number of stream direction aborts",
		},
		[]string{"direction"},
	)

	negotiationDiagnosticsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicmux_negotiation_diagnostics_total",
			Help: "Total number of negotiation-validation diagnostics emitted",
		},
		[]string{"kind"},
	)
)
