package cron

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/bookgraph/interfaces"
	cron_config "github.com/customeros/bookgraph/internal/cron/config"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
)

type mockCatalogService struct {
	interfaces.CatalogService
	mock.Mock
}

func (m *mockCatalogService) Stats(ctx context.Context) (interfaces.CatalogStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(interfaces.CatalogStats), args.Error(1)
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	cfg := &cron_config.Config{CronScheduleHeartbeat: "0 * * * * *"}
	log := getLogger()

	cm := NewCronManager(cfg, log, nil, nil)

	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_RegisterJobs(t *testing.T) {
	cfg := &cron_config.Config{
		CronScheduleHeartbeat:    "0 * * * * *",
		CronScheduleCatalogStats: "*/30 * * * * *",
	}
	cm := NewCronManager(cfg, getLogger(), &mockCatalogService{}, nil)

	c := cronv3.New(cronv3.WithSeconds())
	require.NoError(t, cm.registerJobs(c))

	assert.Len(t, cm.jobIDs, 2)
	assert.Contains(t, cm.jobIDs, JobHeartbeat)
	assert.Contains(t, cm.jobIDs, JobCatalogStats)
	assert.Len(t, c.Entries(), 2)
}

func TestCronManager_RegisterJobs_SkipsDisabled(t *testing.T) {
	cfg := &cron_config.Config{CronScheduleHeartbeat: "0 * * * * *"}
	cm := NewCronManager(cfg, getLogger(), &mockCatalogService{}, nil)

	c := cronv3.New(cronv3.WithSeconds())
	require.NoError(t, cm.registerJobs(c))
	assert.Len(t, cm.jobIDs, 1)
}

func TestCronManager_RegisterJobs_InvalidSchedule(t *testing.T) {
	cfg := &cron_config.Config{CronScheduleHeartbeat: "not a schedule"}
	cm := NewCronManager(cfg, getLogger(), nil, nil)

	err := cm.registerJobs(cronv3.New(cronv3.WithSeconds()))
	assert.Error(t, err)
}

func TestCronManager_RecordCatalogStats(t *testing.T) {
	catalog := &mockCatalogService{}
	catalog.On("Stats", mock.Anything).Return(interfaces.CatalogStats{Authors: 3, Books: 8}, nil)
	mc := metrics.NewMetricsCollector("bookgraph-test", "test")

	cm := NewCronManager(&cron_config.Config{}, getLogger(), catalog, mc)
	cm.recordCatalogStats()

	catalog.AssertExpectations(t)
	count, err := testutil.GatherAndCount(mc.Registry(), "bookgraph_test_catalog_records")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCronManager_Stop(t *testing.T) {
	cm := NewCronManager(&cron_config.Config{}, getLogger(), nil, nil)
	require.NoError(t, cm.Start())

	cm.Stop()
	cm.Stop()

	select {
	case <-cm.stopCh:
		// Channel is closed as expected
	default:
		t.Error("Stop channel was not closed")
	}
}
