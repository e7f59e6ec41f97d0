package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector manages Prometheus metrics for the service. Every
// collector owns its registry so several can coexist in one process.
type MetricsCollector struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	activeConnections   prometheus.Gauge
	serviceInfo         *prometheus.GaugeVec

	graphqlOperations *prometheus.CounterVec
	graphqlDuration   *prometheus.HistogramVec
	catalogRecords    *prometheus.GaugeVec
}

func NewMetricsCollector(serviceName, version string) *MetricsCollector {
	// Prometheus metric names cannot contain hyphens
	sanitizedServiceName := strings.ReplaceAll(serviceName, "-", "_")

	mc := &MetricsCollector{
		serviceName: sanitizedServiceName,
		registry:    prometheus.NewRegistry(),
	}

	mc.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	mc.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mc.activeConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_active_connections",
			Help: "Number of active connections",
		},
	)

	mc.serviceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_service_info",
			Help: "Service information",
		},
		[]string{"version"},
	)

	mc.graphqlOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_graphql_operations_total",
			Help: "Total GraphQL operations",
		},
		[]string{"type", "operation", "status"},
	)

	mc.graphqlDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_graphql_operation_duration_seconds",
			Help:    "GraphQL operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type", "operation"},
	)

	mc.catalogRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_catalog_records",
			Help: "Number of records held in the catalog store",
		},
		[]string{"entity"},
	)

	mc.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		mc.httpRequestsTotal,
		mc.httpRequestDuration,
		mc.activeConnections,
		mc.serviceInfo,
		mc.graphqlOperations,
		mc.graphqlDuration,
		mc.catalogRecords,
	)

	mc.serviceInfo.WithLabelValues(version).Set(1)

	return mc
}

func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// SetCatalogRecords publishes the current record count for an entity type
func (mc *MetricsCollector) SetCatalogRecords(entity string, count int) {
	mc.catalogRecords.WithLabelValues(entity).Set(float64(count))
}

// MetricsMiddleware returns middleware that collects HTTP metrics
func (mc *MetricsCollector) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		mc.activeConnections.Inc()
		defer mc.activeConnections.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		mc.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		mc.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}

// Handler returns the Prometheus metrics HTTP handler
func (mc *MetricsCollector) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// GraphQLExtension counts and times GraphQL operations by type and name.
func (mc *MetricsCollector) GraphQLExtension() graphql.HandlerExtension {
	return graphqlMetrics{mc: mc}
}

type graphqlMetrics struct {
	mc *MetricsCollector
}

var _ interface {
	graphql.HandlerExtension
	graphql.ResponseInterceptor
} = graphqlMetrics{}

func (graphqlMetrics) ExtensionName() string {
	return "PrometheusMetrics"
}

func (graphqlMetrics) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (g graphqlMetrics) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	start := time.Now()
	resp := next(ctx)

	operationType, operationName := "unknown", "anonymous"
	if graphql.HasOperationContext(ctx) {
		opCtx := graphql.GetOperationContext(ctx)
		if opCtx.Operation != nil {
			operationType = string(opCtx.Operation.Operation)
			if opCtx.Operation.Name != "" {
				operationName = opCtx.Operation.Name
			}
		}
	}

	status := "success"
	if resp == nil || len(resp.Errors) > 0 {
		status = "error"
	}

	g.mc.graphqlOperations.WithLabelValues(operationType, operationName, status).Inc()
	g.mc.graphqlDuration.WithLabelValues(operationType, operationName).Observe(time.Since(start).Seconds())
	return resp
}
