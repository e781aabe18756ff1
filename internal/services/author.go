package services

import (
	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/repos"
	"github.com/docukit/docgraph-backend/internal/types"
)

type AuthorService interface {
	CreateAuthor(dbc dbctx.Context, firstName, lastName string) (*types.Author, error)
	GetAuthor(dbc dbctx.Context, authorID int) (*types.Author, error)
	ListAuthors(dbc dbctx.Context) ([]*types.Author, error)
	FindAuthorsByName(dbc dbctx.Context, firstName, lastName string) ([]*types.Author, error)
	UpdateFirstName(dbc dbctx.Context, authorID int, firstName string) (*types.Author, error)
	UpdateLastName(dbc dbctx.Context, authorID int, lastName string) (*types.Author, error)
	DeleteAuthor(dbc dbctx.Context, authorID int) error
	DeleteAllAuthors(dbc dbctx.Context) error
	CascadeDeleteAuthorAndWorks(dbc dbctx.Context, authorID int) error
}

type authorService struct {
	db              *gorm.DB
	log             *logger.Logger
	authorRepo      repos.AuthorRepo
	edgeRepo        repos.EdgeRepo
	documentService DocumentService
}

func NewAuthorService(db *gorm.DB, log *logger.Logger, authorRepo repos.AuthorRepo, edgeRepo repos.EdgeRepo, documentService DocumentService) AuthorService {
	return &authorService{
		db:              db,
		log:             log.With("service", "AuthorService"),
		authorRepo:      authorRepo,
		edgeRepo:        edgeRepo,
		documentService: documentService,
	}
}

func (as *authorService) inTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return as.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
	})
}

func (as *authorService) CreateAuthor(dbc dbctx.Context, firstName, lastName string) (*types.Author, error) {
	if firstName == "" || lastName == "" {
		return nil, apierr.BadRequest(apierr.CodeInvalidAuthorFields,
			"first name and last name must both be provided to create a new author")
	}

	author := &types.Author{FirstName: firstName, LastName: lastName}
	err := as.inTx(dbc, func(dbc dbctx.Context) error {
		if _, err := as.authorRepo.Create(dbc, author); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (as *authorService) GetAuthor(dbc dbctx.Context, authorID int) (*types.Author, error) {
	if authorID <= 0 {
		return nil, apierr.BadRequest(apierr.CodeInvalidID, "invalid author id %d", authorID)
	}

	var author *types.Author
	err := as.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := as.authorRepo.GetByID(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		if found == nil {
			return apierr.NotFound(apierr.CodeNotFound, "no author found for id %d", authorID)
		}
		author = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (as *authorService) ListAuthors(dbc dbctx.Context) ([]*types.Author, error) {
	var authors []*types.Author
	err := as.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := as.authorRepo.FindAll(dbc)
		if err != nil {
			return storeErr(err)
		}
		authors = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (as *authorService) FindAuthorsByName(dbc dbctx.Context, firstName, lastName string) ([]*types.Author, error) {
	if firstName == "" || lastName == "" {
		return nil, apierr.BadRequest(apierr.CodeInvalidSearchTerm,
			"a value for first name and last name must both be provided for the author search")
	}

	var authors []*types.Author
	err := as.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := as.authorRepo.FindByNames(dbc, firstName, lastName)
		if err != nil {
			return storeErr(err)
		}
		authors = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (as *authorService) UpdateFirstName(dbc dbctx.Context, authorID int, firstName string) (*types.Author, error) {
	return as.updateName(dbc, authorID, func(author *types.Author) {
		author.FirstName = firstName
	})
}

func (as *authorService) UpdateLastName(dbc dbctx.Context, authorID int, lastName string) (*types.Author, error) {
	return as.updateName(dbc, authorID, func(author *types.Author) {
		author.LastName = lastName
	})
}

func (as *authorService) updateName(dbc dbctx.Context, authorID int, mutate func(*types.Author)) (*types.Author, error) {
	var author *types.Author
	err := as.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := as.authorRepo.GetByID(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		if found == nil {
			return apierr.NotFound(apierr.CodeNotFound, "no author found for id %d", authorID)
		}
		mutate(found)
		if _, err := as.authorRepo.Save(dbc, found); err != nil {
			return storeErr(err)
		}
		author = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes every authorship edge naming the author before the
// author row, in one transaction. Documents are left alone; one may end up
// with an empty author set.
func (as *authorService) DeleteAuthor(dbc dbctx.Context, authorID int) error {
	return as.inTx(dbc, func(dbc dbctx.Context) error {
		exists, err := as.authorRepo.ExistsByID(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		if !exists {
			return apierr.NotFound(apierr.CodeNotFound, "no author found for id %d", authorID)
		}
		if err := as.edgeRepo.DeleteAuthoredByForAuthor(dbc, authorID); err != nil {
			return storeErr(err)
		}
		if err := as.authorRepo.DeleteByID(dbc, authorID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (as *authorService) DeleteAllAuthors(dbc dbctx.Context) error {
	return as.inTx(dbc, func(dbc dbctx.Context) error {
		authors, err := as.authorRepo.FindAll(dbc)
		if err != nil {
			return storeErr(err)
		}
		for _, author := range authors {
			if err := as.edgeRepo.DeleteAuthoredByForAuthor(dbc, author.ID); err != nil {
				return storeErr(err)
			}
		}
		if err := as.authorRepo.DeleteAll(dbc); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// CascadeDeleteAuthorAndWorks deletes every document the author authored
// (full per-document cascade) and then the author. An unknown author id is
// a no-op; the operation answers deletion events from the bus.
func (as *authorService) CascadeDeleteAuthorAndWorks(dbc dbctx.Context, authorID int) error {
	return as.inTx(dbc, func(dbc dbctx.Context) error {
		exists, err := as.authorRepo.ExistsByID(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		if !exists {
			return nil
		}
		documentIDs, err := as.edgeRepo.DocumentsOf(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		for _, documentID := range documentIDs {
			if err := as.documentService.DeleteDocument(dbc, documentID); err != nil {
				return err
			}
		}
		return as.DeleteAuthor(dbc, authorID)
	})
}
