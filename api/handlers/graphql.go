package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/vektah/gqlparser/v2/ast"

	api_errors "github.com/customeros/bookgraph/api/errors"
	"github.com/customeros/bookgraph/api/graphql/executor"
	"github.com/customeros/bookgraph/api/graphql/resolver"
	"github.com/customeros/bookgraph/api/graphql/schema"
	"github.com/customeros/bookgraph/config"
	"github.com/customeros/bookgraph/interfaces"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/internal/tracing"
)

const (
	GraphQLPath    = "/graphql"
	PlaygroundPath = "/playground"

	defaultQueryCacheSize = 1000
	defaultAPQCacheSize   = 100
)

type GraphQLHandler struct {
	server            *handler.Server
	playground        http.HandlerFunc
	playgroundEnabled bool
}

func NewGraphQLHandler(catalog interfaces.CatalogService, cfg *config.GraphQLConfig, log logger.Logger, mc *metrics.MetricsCollector) (*GraphQLHandler, error) {
	if cfg == nil {
		cfg = &config.GraphQLConfig{}
	}

	s, err := schema.Load()
	if err != nil {
		return nil, err
	}
	es, err := executor.New(s, resolver.NewResolver(catalog).Bindings())
	if err != nil {
		return nil, err
	}

	srv := handler.New(es)
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](positiveOr(cfg.QueryCacheSize, defaultQueryCacheSize)))

	if cfg.IntrospectionEnabled {
		srv.Use(extension.Introspection{})
	}
	srv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](positiveOr(cfg.APQCacheSize, defaultAPQCacheSize)),
	})
	if cfg.ComplexityLimit > 0 {
		srv.Use(extension.FixedComplexityLimit(cfg.ComplexityLimit))
	}
	srv.Use(tracing.GraphQLTracer{})
	if mc != nil {
		srv.Use(mc.GraphQLExtension())
	}

	srv.SetErrorPresenter(api_errors.ErrorPresenter)
	srv.SetRecoverFunc(func(ctx context.Context, err any) error {
		traceId := ""
		if span := opentracing.SpanFromContext(ctx); span != nil {
			traceId = tracing.GetTraceId(span)
		}
		log.Errorf("panic while resolving %v (trace %s): %v", graphql.GetPath(ctx), traceId, err)
		return api_errors.NewError("internal system error", api_errors.CodeInternal, nil)
	})

	return &GraphQLHandler{
		server:            srv,
		playground:        playground.Handler("GraphQL playground", GraphQLPath),
		playgroundEnabled: cfg.PlaygroundEnabled,
	}, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func (h *GraphQLHandler) PlaygroundEnabled() bool {
	return h.playgroundEnabled
}

// Serve handles GraphQL requests. A browser navigating to the endpoint
// without a query gets the playground instead of an error.
func (h *GraphQLHandler) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.playgroundEnabled && wantsPlayground(c.Request) {
			h.playground.ServeHTTP(c.Writer, c.Request)
			return
		}
		h.server.ServeHTTP(c.Writer, c.Request)
	}
}

func (h *GraphQLHandler) Playground() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.playground.ServeHTTP(c.Writer, c.Request)
	}
}

func wantsPlayground(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		r.URL.Query().Get("query") == "" &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}
