// Package app wires the stores, rules engine and services from configuration.
// The server and the CLI both start here.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"questforge/internal/catalog"
	"questforge/internal/config"
	"questforge/internal/database"
	"questforge/internal/engine"
	"questforge/internal/generator"
	"questforge/internal/random"
	"questforge/internal/repository"
	"questforge/internal/service"
	"questforge/internal/store/memory"
)

// App holds the wired services. DB is nil in memory mode.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *database.DB
	Progress *service.ProgressionService
	Profiles *service.ProfileService
	Backup   *service.BackupService
	Email    *service.EmailService
}

// Options adjusts how New builds the App
type Options struct {
	// Memory keeps all data in process instead of the configured database
	Memory bool
	// SkipMigrations leaves the schema alone; used by the migrate command
	SkipMigrations bool
}

// New opens storage and builds the services
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	var (
		progressions service.ProgressionStore
		profiles     service.ProfileStore
		dbType       = cfg.DatabaseType
	)
	if opts.Memory {
		store := memory.New()
		progressions, profiles, dbType = store, store, "memory"
		logger.Info("using in-memory store")
	} else {
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		a.DB = db
		logger.Info("database connection established", zap.String("type", db.Dialect.Name()))

		if !opts.SkipMigrations {
			if err := db.RunMigrations(); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
			logger.Info("migrations completed successfully")
		}
		progressions = repository.NewProgressionRepository(db)
		profiles = repository.NewProfileRepository(db)
	}

	loc, err := cfg.Location()
	if err != nil {
		a.Close()
		return nil, err
	}
	rng, err := random.New()
	if err != nil {
		a.Close()
		return nil, err
	}

	email, err := service.NewEmailService(ctx, cfg.Email.Region, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.AppURL, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Email = email

	eng := engine.New(catalog.Default(), rng, engine.WithDailyCount(cfg.Game.DailyQuestsCount))
	gen := generator.New(rng)
	serviceOpts := []service.Option{
		service.WithLogger(logger),
		service.WithLocation(loc),
		service.WithMaxRetries(cfg.Game.MaxSaveRetries),
		service.WithHistoryLimit(cfg.Game.HistoryLimit),
	}
	if email.IsEnabled() {
		serviceOpts = append(serviceOpts, service.WithNotifier(email))
	}

	a.Progress = service.NewProgressionService(eng, gen, progressions, profiles, serviceOpts...)
	a.Profiles = service.NewProfileService(profiles)
	a.Backup = service.NewBackupService(progressions, profiles, dbType, logger)
	return a, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
