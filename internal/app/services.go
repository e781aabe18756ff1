package app

import (
	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/bus"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/services"
)

type Services struct {
	Validator services.PayloadValidator
	Document  services.DocumentService
	Author    services.AuthorService
	Notifier  services.Notifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, publisher bus.Publisher) Services {
	log.Info("Wiring services...")
	documentService := services.NewDocumentService(db, log, reposet.Document, reposet.Author, reposet.Edge)
	return Services{
		Validator: services.NewPayloadValidator(log, reposet.Author, reposet.Document),
		Document:  documentService,
		Author:    services.NewAuthorService(db, log, reposet.Author, reposet.Edge, documentService),
		Notifier:  services.NewNotifier(log, publisher, cfg.UpdatesChannel),
	}
}
