package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Catalog record counts, every 30 seconds
	CronScheduleCatalogStats string `env:"CRON_SCHEDULE_CATALOG_STATS" envDefault:"*/30 * * * * *"`
}
