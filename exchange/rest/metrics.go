package rest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	outcomeOK      = "ok"
	outcomeNetwork = "network_error"
	outcomeHTTP    = "http_error"
	outcomeDecode  = "decode_error"
	outcomeInvalid = "invalid_request"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	return &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clientapi",
			Name:      "requests_total",
			Help:      "API requests by command and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clientapi",
			Name:      "request_duration_seconds",
			Help:      "API request latency by command.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
}

//
// register adds the collectors to reg. When another client already registered them, that
// client's collectors are shared instead.
//
func (o *metrics) register(reg prometheus.Registerer, logger *zap.Logger) {
	if err := reg.Register(o.requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			o.requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			logger.Warn("failed to register request counter", zap.Error(err))
		}
	}

	if err := reg.Register(o.duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			o.duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			logger.Warn("failed to register request duration histogram", zap.Error(err))
		}
	}
}

func (o *metrics) observe(command string, outcome string, start time.Time) {
	o.requests.WithLabelValues(command, outcome).Inc()
	o.duration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}
