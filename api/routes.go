package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/bookgraph/api/handlers"
	"github.com/customeros/bookgraph/api/middleware"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/internal/tracing"
	"github.com/customeros/bookgraph/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, h *handlers.APIHandlers, mc *metrics.MetricsCollector, appSource string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if h == nil {
		panic("Handlers cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery
	r.Use(middleware.RequestIdMiddleware())
	if mc != nil {
		r.Use(mc.MetricsMiddleware())
		r.GET("/metrics", mc.Handler())
	}

	// Health check and status endpoints (no custom context needed)
	r.GET("/health", handlers.HealthCheck)
	r.GET("/status", handlers.Status(s.CatalogService))

	gql := r.Group("/")
	gql.Use(middleware.CustomContextMiddleware(appSource))
	gql.Use(middleware.TracingMiddleware())
	{
		gql.POST(handlers.GraphQLPath, h.GraphQL.Serve())
		gql.GET(handlers.GraphQLPath, h.GraphQL.Serve())
		gql.OPTIONS(handlers.GraphQLPath, h.GraphQL.Serve())

		if h.GraphQL.PlaygroundEnabled() {
			gql.GET(handlers.PlaygroundPath, h.GraphQL.Playground())
		}
	}
}
