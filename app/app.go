package app

import (
	"log/slog"

	"contact-book/database"
	"contact-book/services"
	"contact-book/sync"
	"contact-book/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo      *database.Repository
	Contacts  *services.ContactService
	Importer  *sync.Importer
	Worker    *sync.Worker
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, contacts *services.ContactService, importer *sync.Importer, worker *sync.Worker, logger *slog.Logger) *App {
	return &App{
		Repo:      repo,
		Contacts:  contacts,
		Importer:  importer,
		Worker:    worker,
		Validator: validator.New(),
		Logger:    logger,
	}
}
