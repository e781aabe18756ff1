package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/repos"
	"github.com/docukit/docgraph-backend/internal/types"
)

type fixture struct {
	db       *gorm.DB
	authors  repos.AuthorRepo
	docs     repos.DocumentRepo
	edges    repos.EdgeRepo
	author   AuthorService
	document DocumentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Author{},
		&types.Document{},
		&types.AuthoredBy{},
		&types.ReferencedBy{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	authorRepo := repos.NewAuthorRepo(db, log)
	documentRepo := repos.NewDocumentRepo(db, log)
	edgeRepo := repos.NewEdgeRepo(db, log)
	documentService := NewDocumentService(db, log, documentRepo, authorRepo, edgeRepo)

	return &fixture{
		db:       db,
		authors:  authorRepo,
		docs:     documentRepo,
		edges:    edgeRepo,
		author:   NewAuthorService(db, log, authorRepo, edgeRepo, documentService),
		document: documentService,
	}
}

func (f *fixture) seedAuthor(t *testing.T, firstName, lastName string) *types.Author {
	t.Helper()
	author, err := f.author.CreateAuthor(dbctx.Background(), firstName, lastName)
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	return author
}

func (f *fixture) seedDocument(t *testing.T, id int, title string, authorIDs, referenceIDs []int) *types.Document {
	t.Helper()
	doc, err := f.document.CreateDocument(dbctx.Background(), &ValidatedDocument{
		ID:           id,
		Title:        title,
		Body:         "body of " + title,
		AuthorIDs:    authorIDs,
		ReferenceIDs: referenceIDs,
	})
	if err != nil {
		t.Fatalf("seed document %d: %v", id, err)
	}
	return doc
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func idsPtr(v ...int) *[]int  { return &v }

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
