package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	config "activity-tracker.com/activity-tracker/internal/configs"
	repository "activity-tracker.com/activity-tracker/internal/repositories"
	"activity-tracker.com/activity-tracker/internal/services"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "activity-tracker",
	Short:         "Activity tracker service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every subcommand needs: configuration, a logger and a
// migrated database.
type app struct {
	cfg    config.Config
	logger *log.Logger
	db     *gorm.DB
}

func bootstrap(ctx context.Context) (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	db, err := openDatabase(ctx, cfg, config.Migrate)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

// openDatabase connects and migrates; the connection is closed again when
// migrating fails.
func openDatabase(ctx context.Context, cfg config.Config, migrate func(context.Context, *gorm.DB) error) (*gorm.DB, error) {
	db, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (a *app) activityService() (*services.ActivityService, error) {
	location, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	return services.NewActivityService(
		repository.NewActivityRepository(a.db, nil),
		repository.NewStatusRepository(a.db),
		a.logger,
		services.ActivityServiceConfig{
			PageSize: a.cfg.PageSize,
			Location: location,
		},
	), nil
}

func (a *app) close() {
	closeDatabase(a.db)
}
