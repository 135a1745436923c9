package db

import (
	"errors"
	"time"

	"github.com/angelmondragon/favorites-catalog/pkg/metrics"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const startedAtKey = "favorites:started_at"

type metricsPlugin struct {
	metrics *metrics.StorageMetrics
}

func newMetricsPlugin(m *metrics.StorageMetrics) *metricsPlugin {
	return &metricsPlugin{metrics: m}
}

func (p *metricsPlugin) Name() string {
	return "favorites:storage_metrics"
}

func (p *metricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return multierr.Combine(
		cb.Create().Before("gorm:create").Register("metrics:before_create", p.start),
		cb.Create().After("gorm:create").Register("metrics:after_create", p.observe("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", p.start),
		cb.Query().After("gorm:query").Register("metrics:after_query", p.observe("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", p.start),
		cb.Update().After("gorm:update").Register("metrics:after_update", p.observe("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", p.start),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", p.observe("delete")),
		cb.Row().Before("gorm:row").Register("metrics:before_row", p.start),
		cb.Row().After("gorm:row").Register("metrics:after_row", p.observe("row")),
		cb.Raw().Before("gorm:raw").Register("metrics:before_raw", p.start),
		cb.Raw().After("gorm:raw").Register("metrics:after_raw", p.observe("raw")),
	)
}

func (p *metricsPlugin) start(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func (p *metricsPlugin) observe(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		var elapsed time.Duration
		if value, ok := db.InstanceGet(startedAtKey); ok {
			if startedAt, ok := value.(time.Time); ok {
				elapsed = time.Since(startedAt)
			}
		}

		result := metrics.ResultOK
		switch {
		case db.Error == nil:
		case errors.Is(db.Error, gorm.ErrRecordNotFound):
			result = metrics.ResultNotFound
		default:
			result = metrics.ResultError
		}

		table := ""
		if db.Statement != nil {
			table = db.Statement.Table
		}
		p.metrics.ObserveStatement(table, operation, result, elapsed)
	}
}
