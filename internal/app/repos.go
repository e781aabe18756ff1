package app

import (
	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/repos"
)

type Repos struct {
	Author   repos.AuthorRepo
	Document repos.DocumentRepo
	Edge     repos.EdgeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Author:   repos.NewAuthorRepo(db, log),
		Document: repos.NewDocumentRepo(db, log),
		Edge:     repos.NewEdgeRepo(db, log),
	}
}
