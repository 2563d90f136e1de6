package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DecodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "icsd_decodes_total",
		Help: "The number of calendar documents decoded",
	})
	DecodeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icsd_decode_failures_total",
		Help: "The number of failed decodes by error kind",
	}, []string{"kind"})
	EncodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "icsd_encodes_total",
		Help: "The number of calendar documents encoded",
	})
)
