package handlers

import (
	"github.com/customeros/bookgraph/config"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/services"
)

type APIHandlers struct {
	GraphQL *GraphQLHandler
}

func InitHandlers(s *services.Services, cfg *config.GraphQLConfig, log logger.Logger, mc *metrics.MetricsCollector) (*APIHandlers, error) {
	graphqlHandler, err := NewGraphQLHandler(s.CatalogService, cfg, log, mc)
	if err != nil {
		return nil, err
	}
	return &APIHandlers{
		GraphQL: graphqlHandler,
	}, nil
}
