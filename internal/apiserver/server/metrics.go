// Package server Prometheus 指标导出
package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 包含所有 API Server 指标
//
// 指标注册到实例自己的 Registry，同一进程可以创建多个实例（测试）。
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求指标
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Seed 指标
	SeedRunsTotal    *prometheus.CounterVec
	SeedDuration     prometheus.Histogram
	SeedImportedLast prometheus.Gauge
}

// NewMetrics 创建指标实例
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		SeedRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "seed_runs_total",
				Help:      "Total seed executions by result",
			},
			[]string{"result"},
		),
		SeedDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "seed_duration_seconds",
				Help:      "Seed execution duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		SeedImportedLast: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "seed_imported_entries",
				Help:      "Entries imported by the last successful seed",
			},
		),
	}
}

// Registry 返回指标注册表
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsMiddleware 创建 HTTP 指标中间件
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)
		status := strconv.Itoa(wrapped.statusCode)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// normalizePath 规范化路径，将 term / id 替换为占位符，避免高基数
func normalizePath(path string) string {
	const prefix = "/api/v2/pokemon/"
	if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
		return prefix + "{term}"
	}
	return path
}

// Handler 返回 Prometheus HTTP Handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSeed 记录一次 seed 结果
func (m *Metrics) ObserveSeed(err error, imported int, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	} else {
		m.SeedImportedLast.Set(float64(imported))
	}
	m.SeedRunsTotal.WithLabelValues(result).Inc()
	m.SeedDuration.Observe(duration.Seconds())
}
