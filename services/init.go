package services

import (
	"github.com/customeros/bookgraph/interfaces"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/repository"
	"github.com/customeros/bookgraph/services/catalog"
	"github.com/customeros/bookgraph/services/events"
)

type Services struct {
	EventsService  *events.EventsService
	CatalogService interfaces.CatalogService
}

func InitServices(rabbitmqURL string, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	eventsService, err := events.NewEventsService(rabbitmqURL, log, events.DefaultPublisherConfig())
	if err != nil {
		return nil, err
	}

	services := Services{
		EventsService:  eventsService,
		CatalogService: catalog.NewCatalogService(repos, eventsService.Publisher, log),
	}

	return &services, nil
}
