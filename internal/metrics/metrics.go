package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mutual/internal/escrow"
)

// Metrics метрики HTTP-слоя и движка эскроу на собственном реестре.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	events   *prometheus.CounterVec
	released *prometheus.CounterVec
	refunded *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mutual",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests segmented by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mutual",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mutual",
			Subsystem: "escrow",
			Name:      "events_total",
			Help:      "Escrow events committed, by type.",
		}, []string{"type"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mutual",
			Subsystem: "escrow",
			Name:      "released_units_total",
			Help:      "Base units released to KOLs, by currency.",
		}, []string{"currency"}),
		refunded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mutual",
			Subsystem: "escrow",
			Name:      "refunded_units_total",
			Help:      "Base units refunded to project owners by dispute resolution, by currency.",
		}, []string{"currency"}),
	}
	m.Registry.MustRegister(
		m.requests,
		m.latency,
		m.events,
		m.released,
		m.refunded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware учитывает запросы по шаблону маршрута.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// Emit учитывает событие движка.
func (m *Metrics) Emit(ev escrow.Event) {
	m.events.WithLabelValues(ev.Type).Inc()
	if ev.Deal == nil {
		return
	}
	switch ev.Type {
	case escrow.EventTypeDealClaimed:
		m.add(m.released, ev.Deal.CurrencyID, ev.Attributes["claimed"])
	case escrow.EventTypeDisputeResolved:
		m.add(m.released, ev.Deal.CurrencyID, ev.Attributes["kolAmount"])
		m.add(m.refunded, ev.Deal.CurrencyID, ev.Attributes["ownerAmount"])
	}
}

func (m *Metrics) add(c *prometheus.CounterVec, currency, raw string) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return
	}
	c.WithLabelValues(currency).Add(float64(v))
}

var _ escrow.Emitter = (*Metrics)(nil)
