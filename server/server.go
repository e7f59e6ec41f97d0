package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"

	"github.com/customeros/bookgraph/api"
	"github.com/customeros/bookgraph/api/handlers"
	"github.com/customeros/bookgraph/config"
	"github.com/customeros/bookgraph/internal/cron"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/internal/repository"
	"github.com/customeros/bookgraph/internal/tracing"
	"github.com/customeros/bookgraph/services"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	repositories *repository.Repositories
	metrics      *metrics.MetricsCollector
	cronManager  *cron.CronManager
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	// The catalog lives in memory and is seeded on every start
	repos := repository.InitSeededRepositories()

	svcs, err := services.InitServices(cfg.AppConfig.RabbitMQURL, appLogger, repos)
	if err != nil {
		return nil, err
	}

	mc := metrics.NewMetricsCollector(cfg.MetricsConfig.ServiceName, cfg.AppConfig.Version)

	apiHandlers, err := handlers.InitHandlers(svcs, cfg.GraphQLConfig, appLogger, mc)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	api.RegisterRoutes(router, svcs, apiHandlers, mc, cfg.AppConfig.AppSource)

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		services:     svcs,
		repositories: repos,
		metrics:      mc,
		cronManager:  cron.NewCronManager(cfg.Cron, appLogger, svcs.CatalogService, mc),
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppConfig.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) recoverWithJaeger(name string) {
	if r := recover(); r != nil {
		span := opentracing.GlobalTracer().StartSpan(
			fmt.Sprintf("panic.%s", name),
		)
		defer span.Finish()

		ext.Error.Set(span, true)

		span.LogKV(
			"event", "panic",
			"process", name,
			"error", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)

		s.log.Errorf("Panic in %s: %v\n%s", name, r, debug.Stack())
	}
}

func (s *Server) wrapGoroutine(name string, fn func()) {
	defer s.recoverWithJaeger(name)
	fn()
}

func (s *Server) Run() error {
	if err := s.cronManager.Start(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go s.wrapGoroutine("http_server", func() {
		s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	})
	s.log.Infof("bookgraph is now running, GraphQL endpoint at http://localhost:%s%s", s.config.AppConfig.APIPort, handlers.GraphQLPath)

	return s.waitForShutdown(serverErr)
}

func (s *Server) waitForShutdown(serverErr <-chan error) error {
	defer s.recoverWithJaeger("shutdown")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
		s.log.Info("Shutting down...")
	case err := <-serverErr:
		s.log.Errorf("HTTP server error: %v", err)
		runErr = err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("HTTP server shutdown error: %v", err)
	} else {
		s.log.Info("HTTP server shut down successfully")
	}

	s.cronManager.Stop()

	if err := s.services.EventsService.Close(); err != nil {
		s.log.Errorf("Events service shutdown error: %v", err)
	}

	if s.tracerCloser != nil {
		if err := s.tracerCloser.Close(); err != nil {
			s.log.Errorf("Tracer shutdown error: %v", err)
		}
	}

	_ = s.log.Sync()
	return runErr
}
