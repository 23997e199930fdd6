package setup

import (
	"log/slog"
	"net/http"

	"contact-book/app"
	"contact-book/config"
	"contact-book/database"
	"contact-book/services"
	"contact-book/sync"
)

// InitDatabase opens the SQLite database, runs migrations, and bootstraps the
// contacts table: an empty table is seeded with the fixed sample contacts and
// the lowest-id row is promoted to favorite when no favorite exists. A failed
// call leaves nothing memoized; retrying is a fresh call.
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, *database.Repository, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := database.NewRepository(db)
	if err := repo.Seed(); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, repo, nil
}

// InitApp initializes the application with all dependencies
func InitApp(repo *database.Repository, logger *slog.Logger) *app.App {
	// Contact service owns the snapshot; load it once up front so the first
	// request already sees data.
	contacts := services.NewContactService(repo)
	if err := contacts.Load(); err != nil {
		logger.Warn("initial snapshot load failed", "error", err)
	}

	importer := sync.NewImporter(repo, &http.Client{}, config.AppConfig.ImportURL)

	// Periodic auto-import only runs when both a source and an interval are
	// configured.
	var worker *sync.Worker
	if config.AppConfig.ImportURL != "" && config.AppConfig.ImportInterval > 0 {
		worker = sync.NewWorker(importer, contacts.Refresh, config.AppConfig.ImportInterval)
		worker.Start()
		logger.Info("import worker started",
			"source", config.AppConfig.ImportURL,
			"interval", config.AppConfig.ImportInterval,
		)
	}

	application := app.New(repo, contacts, importer, worker, logger)
	logger.Info("application initialized with dependency injection")

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(application *app.App, db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application != nil && application.Worker != nil {
		application.Worker.Stop()
		logger.Info("import worker stopped")
	}

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
