package cron

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/customeros/bookgraph/interfaces"
	cron_config "github.com/customeros/bookgraph/internal/cron/config"
	"github.com/customeros/bookgraph/internal/enum"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/internal/tracing"
	"github.com/customeros/bookgraph/internal/utils"
)

const (
	// GroupCatalog is the group for jobs reading the catalog
	GroupCatalog = "catalog"

	JobHeartbeat    = "heartbeat"
	JobCatalogStats = "catalog_stats"

	AppSourceCron = "bookgraph-cron"
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupCatalog: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg      *cron_config.Config
	log      logger.Logger
	cron     *cronv3.Cron
	stopCh   chan struct{}
	stopOnce sync.Once
	jobIDs   map[string]cronv3.EntryID
	catalog  interfaces.CatalogService
	metrics  *metrics.MetricsCollector
}

func NewCronManager(cfg *cron_config.Config, log logger.Logger, catalog interfaces.CatalogService, mc *metrics.MetricsCollector) *CronManager {
	if cfg == nil {
		cfg = &cron_config.Config{}
	}
	return &CronManager{
		cfg:     cfg,
		log:     log,
		stopCh:  make(chan struct{}),
		jobIDs:  make(map[string]cronv3.EntryID),
		catalog: catalog,
		metrics: mc,
	}
}

// Start registers the configured jobs and starts the scheduler. The catalog
// lives in process memory, so every instance runs its own jobs.
func (cm *CronManager) Start() error {
	cm.log.Info("Starting cron manager")
	// Create a new cron with seconds field enabled and panic recovery
	c := cronv3.New(
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger), // Skip if still running
			cronv3.Recover(cronv3.DefaultLogger),            // Default recovery as backup
		),
	)
	if err := cm.registerJobs(c); err != nil {
		return err
	}
	c.Start()
	cm.cron = c
	return nil
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	cm.stopOnce.Do(func() {
		if cm.cron != nil {
			cm.log.Info("Stopping cron manager")
			ctx := cm.cron.Stop()
			// Wait for jobs to finish
			<-ctx.Done()
		}
		close(cm.stopCh)
	})
}

// registerJobs adds all cron jobs to the scheduler. Empty schedules disable
// the job.
func (cm *CronManager) registerJobs(c *cronv3.Cron) error {
	if cm.cfg.CronScheduleHeartbeat != "" {
		podName := os.Getenv("POD_NAME")
		if podName == "" {
			podName = "local"
		}
		id, err := c.AddFunc(cm.cfg.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Infof("Cron heartbeat from pod: %s", podName)
		})
		if err != nil {
			return errors.Wrap(err, "could not add heartbeat cron job")
		}
		cm.jobIDs[JobHeartbeat] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cm.cfg.CronScheduleHeartbeat)
	}

	if cm.cfg.CronScheduleCatalogStats != "" && cm.catalog != nil {
		id, err := c.AddFunc(cm.cfg.CronScheduleCatalogStats, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupCatalog].Lock()
			defer jobLocks.locks[GroupCatalog].Unlock()
			cm.recordCatalogStats()
		})
		if err != nil {
			return errors.Wrap(err, "could not add catalog stats cron job")
		}
		cm.jobIDs[JobCatalogStats] = id
		cm.log.Infof("Registered catalog stats job with schedule: %s", cm.cfg.CronScheduleCatalogStats)
	}

	return nil
}

func (cm *CronManager) recordCatalogStats() {
	span, ctx := tracing.StartTracerSpan(utils.SetAppSourceInContext(context.Background(), AppSourceCron), "CronManager.recordCatalogStats")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	stats, err := cm.catalog.Stats(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to read catalog stats: %v", err)
		return
	}
	span.LogKV("authors", stats.Authors, "books", stats.Books)

	if cm.metrics != nil {
		cm.metrics.SetCatalogRecords(enum.AUTHOR.String(), stats.Authors)
		cm.metrics.SetCatalogRecords(enum.BOOK.String(), stats.Books)
	}
	cm.log.Debugf("Catalog holds %d authors and %d books", stats.Authors, stats.Books)
}
