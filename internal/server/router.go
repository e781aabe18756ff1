package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/docukit/docgraph-backend/internal/handlers"
	"github.com/docukit/docgraph-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLogger   *middleware.RequestLogger
	AuthorHandler   *handlers.AuthorHandler
	DocumentHandler *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handle())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Author
	router.POST("/author", cfg.AuthorHandler.Create)
	router.GET("/author", cfg.AuthorHandler.List)
	router.GET("/author/:id", cfg.AuthorHandler.GetByID)
	router.GET("/author/search/:firstName/:lastName", cfg.AuthorHandler.Search)
	router.PUT("/author/updateFirstName/:id/:firstName", cfg.AuthorHandler.UpdateFirstName)
	router.PUT("/author/updateLastName/:id/:lastName", cfg.AuthorHandler.UpdateLastName)
	router.DELETE("/author/:id", cfg.AuthorHandler.Delete)
	router.DELETE("/author", cfg.AuthorHandler.DeleteAll)

	// Document
	router.POST("/document", cfg.DocumentHandler.Create)
	router.GET("/document", cfg.DocumentHandler.List)
	router.GET("/document/:id", cfg.DocumentHandler.GetByID)
	router.PUT("/document/updateTitle/:documentID/:title", cfg.DocumentHandler.UpdateTitle)
	router.PUT("/document/updateBody", cfg.DocumentHandler.UpdateBody)
	router.PUT("/document/addAuthor/:documentID/:authorID", cfg.DocumentHandler.AddAuthor)
	router.PUT("/document/removeAuthor/:documentID/:authorID", cfg.DocumentHandler.RemoveAuthor)
	router.PUT("/document/addReference/:referencingID/:referencedID", cfg.DocumentHandler.AddReference)
	router.PUT("/document/removeReference/:referencingID/:referencedID", cfg.DocumentHandler.RemoveReference)
	router.DELETE("/document/:id", cfg.DocumentHandler.Delete)
	router.DELETE("/document", cfg.DocumentHandler.DeleteAll)

	return router
}
