package app

import (
	"github.com/gin-gonic/gin"

	"github.com/docukit/docgraph-backend/internal/handlers"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/middleware"
	"github.com/docukit/docgraph-backend/internal/server"
)

type Handlers struct {
	Author   *handlers.AuthorHandler
	Document *handlers.DocumentHandler
}

func wireHandlers(serviceset Services) Handlers {
	return Handlers{
		Author:   handlers.NewAuthorHandler(serviceset.Author, serviceset.Notifier),
		Document: handlers.NewDocumentHandler(serviceset.Document, serviceset.Validator, serviceset.Notifier),
	}
}

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		RequestLogger:   middleware.NewRequestLogger(log),
		AuthorHandler:   handlerset.Author,
		DocumentHandler: handlerset.Document,
	})
}
