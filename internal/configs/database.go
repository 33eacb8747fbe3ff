package config

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"activity-tracker.com/activity-tracker/internal/constants"
	model "activity-tracker.com/activity-tracker/internal/models"
)

// NewDatabase opens a gorm connection for the configured driver. Schema
// changes are left to Migrate.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the builtin statuses.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.Status{}, &model.Activity{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	for _, status := range constants.BuiltinStatuses() {
		row := model.Status{ID: status, StatusName: status.String()}
		if err := db.WithContext(ctx).Where(model.Status{ID: status}).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed status %s: %w", status, err)
		}
	}

	return backfillSearchText(ctx, db)
}

// backfillSearchText fills activity_search for rows written before the
// column existed.
func backfillSearchText(ctx context.Context, db *gorm.DB) error {
	var stale []model.Activity
	err := db.WithContext(ctx).Select("id", "activity").Where("activity_search = ?", "").Find(&stale).Error
	if err != nil {
		return fmt.Errorf("load activities to backfill: %w", err)
	}

	for _, a := range stale {
		err := db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", a.ID).
			UpdateColumn("activity_search", model.SearchText(a.Activity)).Error
		if err != nil {
			return fmt.Errorf("backfill activity %s: %w", a.ID, err)
		}
	}
	return nil
}
