package providers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/totegamma/jobtrack/internal/config"
	"github.com/totegamma/jobtrack/internal/infra/cache"
	"github.com/totegamma/jobtrack/internal/infra/database"
	"github.com/totegamma/jobtrack/internal/service"
	"github.com/totegamma/jobtrack/internal/usecase"
)

const memcachedTimeout = 200 * time.Millisecond

// NewDatabase opens a Postgres connection using the configured DSN and
// applies migrations.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	db, err := database.NewPostgres(conf.PostgresDsn)
	if err != nil {
		return nil, err
	}
	if err := database.MigratePostgres(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSignal connects to redis for change events. It returns nil when no
// redis address is configured.
func NewSignal(ctx context.Context, conf config.Server) (*service.SignalService, error) {
	if conf.RedisAddr == "" {
		return nil, nil
	}
	rdb, err := database.NewRedis(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
	if err != nil {
		return nil, err
	}
	return service.NewSignalService(rdb), nil
}

// NewDashboardCache shares dashboards through memcached when servers are
// configured and falls back to process memory otherwise.
func NewDashboardCache(server config.Server, dashboard config.Dashboard) usecase.DashboardCache {
	if len(server.MemcachedAddrs) > 0 {
		mc := database.NewMemcached(server.MemcachedAddrs, memcachedTimeout)
		return cache.NewMemcacheDashboardCache(mc, dashboard.CacheTTL)
	}
	return cache.NewLocalDashboardCache(dashboard.CacheTTL)
}

// NewDashboardPolicy maps the dashboard section onto the heuristics.
func NewDashboardPolicy(conf config.Dashboard) usecase.DashboardPolicy {
	return usecase.DashboardPolicy{
		FollowUpAfter: conf.FollowUpAfter(),
		RecentLimit:   conf.RecentLimit,
		FollowUpLimit: conf.FollowUpLimit,
	}
}
