package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "devconnector"

// Metrics owns a per-app Prometheus registry with the HTTP metrics and the
// domain counters
type Metrics struct {
	Registry      *prometheus.Registry
	GithubLookups *prometheus.CounterVec

	prom *fiberprometheus.FiberPrometheus
}

func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "github_lookups_total",
		Help:      "GitHub repository lookups by result",
	}, []string{"result"})
	registry.MustRegister(lookups)

	return &Metrics{
		Registry:      registry,
		GithubLookups: lookups,
		prom:          fiberprometheus.NewWithRegistry(registry, serviceName, metricsNamespace, "http", nil),
	}
}

// Middleware records request count, latency and in-flight requests
func (m *Metrics) Middleware() fiber.Handler {
	return m.prom.Middleware
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
