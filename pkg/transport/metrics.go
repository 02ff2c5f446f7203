package transport

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics — счётчики запросов клиента.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lccs_client_requests_total",
		Help: "Total HTTP requests sent to LCCS-WS",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lccs_client_request_duration_seconds",
		Help:    "Duration of HTTP requests sent to LCCS-WS",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	return &metrics{
		requests: register(reg, requests),
		duration: register(reg, duration),
	}
}

// register регистрирует коллектор; если такой уже есть (несколько
// клиентов на одном Registerer), возвращает существующий.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// observe учитывает завершённый запрос. code = 0 — запрос не дошёл до сервера.
func (m *metrics) observe(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
