package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/repos"
	"github.com/docukit/docgraph-backend/internal/types"
)

// DocumentService owns every mutation that touches document rows or edge
// rows. Each public operation runs as one transaction: when dbc.Tx is nil a
// new transaction is opened, otherwise the caller's transaction is joined so
// larger operations (the author cascade) stay atomic.
type DocumentService interface {
	CreateDocument(dbc dbctx.Context, validated *ValidatedDocument) (*types.Document, error)
	GetDocument(dbc dbctx.Context, documentID int) (*types.Document, error)
	ListDocuments(dbc dbctx.Context) ([]*types.Document, error)
	UpdateTitle(dbc dbctx.Context, documentID int, title string) (*types.Document, error)
	UpdateBody(dbc dbctx.Context, payload *BodyUpdatePayload) (*types.Document, error)
	AddAuthorToDocument(dbc dbctx.Context, documentID, authorID int) error
	RemoveAuthorFromDocument(dbc dbctx.Context, documentID, authorID int) error
	AddReferenceToDocument(dbc dbctx.Context, referencingID, referencedID int) error
	RemoveReferenceFromDocument(dbc dbctx.Context, referencingID, referencedID int) error
	DeleteDocument(dbc dbctx.Context, documentID int) error
	DeleteAllDocuments(dbc dbctx.Context) error
}

type documentService struct {
	db           *gorm.DB
	log          *logger.Logger
	documentRepo repos.DocumentRepo
	authorRepo   repos.AuthorRepo
	edgeRepo     repos.EdgeRepo
}

func NewDocumentService(db *gorm.DB, log *logger.Logger, documentRepo repos.DocumentRepo, authorRepo repos.AuthorRepo, edgeRepo repos.EdgeRepo) DocumentService {
	return &documentService{
		db:           db,
		log:          log.With("service", "DocumentService"),
		documentRepo: documentRepo,
		authorRepo:   authorRepo,
		edgeRepo:     edgeRepo,
	}
}

func (ds *documentService) inTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	return ds.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
	})
}

// storeErr keeps taxonomy errors intact and wraps everything else as a
// store failure.
func storeErr(err error) error {
	if _, ok := apierr.As(err); ok {
		return err
	}
	return apierr.Store(err)
}

// CreateDocument commits an already-validated payload: the document row,
// one authorship edge per author id and one reference edge per reference
// id, all or nothing. A uniqueness denial from the store (the document id
// is already taken) surfaces as StoreConflict.
func (ds *documentService) CreateDocument(dbc dbctx.Context, validated *ValidatedDocument) (*types.Document, error) {
	if validated == nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "no validated payload provided")
	}

	doc := &types.Document{
		ID:    validated.ID,
		Title: validated.Title,
		Body:  validated.Body,
	}

	err := ds.inTx(dbc, func(dbc dbctx.Context) error {
		if _, err := ds.documentRepo.Create(dbc, doc); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict(apierr.CodeStoreConflict,
					"document %d already exists", validated.ID)
			}
			return storeErr(err)
		}
		for _, referenceID := range validated.ReferenceIDs {
			if err := ds.edgeRepo.InsertReferencedBy(dbc, doc.ID, referenceID); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apierr.Conflict(apierr.CodeStoreConflict,
						"reference edge (%d,%d) already exists", doc.ID, referenceID)
				}
				return storeErr(err)
			}
		}
		for _, authorID := range validated.AuthorIDs {
			if err := ds.edgeRepo.InsertAuthoredBy(dbc, authorID, doc.ID); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apierr.Conflict(apierr.CodeStoreConflict,
						"authorship edge (%d,%d) already exists", authorID, doc.ID)
				}
				return storeErr(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.AuthorIDs = validated.AuthorIDs
	doc.ReferenceIDs = validated.ReferenceIDs
	if doc.AuthorIDs == nil {
		doc.AuthorIDs = []int{}
	}
	if doc.ReferenceIDs == nil {
		doc.ReferenceIDs = []int{}
	}
	return doc, nil
}

func (ds *documentService) GetDocument(dbc dbctx.Context, documentID int) (*types.Document, error) {
	if documentID <= 0 {
		return nil, apierr.BadRequest(apierr.CodeInvalidID, "invalid document id %d", documentID)
	}

	var doc *types.Document
	err := ds.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := ds.documentRepo.GetByID(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if found == nil {
			return apierr.NotFound(apierr.CodeNotFound, "no document found for id %d", documentID)
		}
		if err := ds.hydrateEdges(dbc, found); err != nil {
			return err
		}
		doc = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (ds *documentService) ListDocuments(dbc dbctx.Context) ([]*types.Document, error) {
	var docs []*types.Document
	err := ds.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := ds.documentRepo.FindAll(dbc)
		if err != nil {
			return storeErr(err)
		}
		for _, doc := range found {
			if err := ds.hydrateEdges(dbc, doc); err != nil {
				return err
			}
		}
		docs = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (ds *documentService) UpdateTitle(dbc dbctx.Context, documentID int, title string) (*types.Document, error) {
	if documentID <= 0 {
		return nil, apierr.BadRequest(apierr.CodeInvalidID, "invalid document id %d", documentID)
	}
	if title == "" {
		return nil, apierr.BadRequest(apierr.CodeInvalidTitle, "invalid new title provided")
	}

	var doc *types.Document
	err := ds.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := ds.documentRepo.GetByID(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if found == nil {
			return apierr.NotFound(apierr.CodeNotFound, "no document found for id %d", documentID)
		}
		found.Title = title
		if _, err := ds.documentRepo.Save(dbc, found); err != nil {
			return storeErr(err)
		}
		if err := ds.hydrateEdges(dbc, found); err != nil {
			return err
		}
		doc = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (ds *documentService) UpdateBody(dbc dbctx.Context, payload *BodyUpdatePayload) (*types.Document, error) {
	if payload == nil || payload.ID == nil || payload.Body == nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField,
			"id and body must both be included in the payload")
	}

	var doc *types.Document
	err := ds.inTx(dbc, func(dbc dbctx.Context) error {
		found, err := ds.documentRepo.GetByID(dbc, *payload.ID)
		if err != nil {
			return storeErr(err)
		}
		if found == nil {
			return apierr.NotFound(apierr.CodeNotFound, "no document found for id %d", *payload.ID)
		}
		found.Body = *payload.Body
		if _, err := ds.documentRepo.Save(dbc, found); err != nil {
			return storeErr(err)
		}
		if err := ds.hydrateEdges(dbc, found); err != nil {
			return err
		}
		doc = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// AddAuthorToDocument checks, in order: id validity, edge duplication,
// author existence, document existence. The duplicate check deliberately
// precedes the endpoint checks.
func (ds *documentService) AddAuthorToDocument(dbc dbctx.Context, documentID, authorID int) error {
	if documentID <= 0 || authorID <= 0 {
		return apierr.BadRequest(apierr.CodeInvalidID,
			"invalid author id or document id provided")
	}

	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		authors, err := ds.edgeRepo.AuthorsOf(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if containsID(authors, authorID) {
			return apierr.BadRequest(apierr.CodeDuplicateEdge,
				"author %d is already credited on document %d", authorID, documentID)
		}
		authorExists, err := ds.authorRepo.ExistsByID(dbc, authorID)
		if err != nil {
			return storeErr(err)
		}
		if !authorExists {
			return apierr.BadRequest(apierr.CodeUnknownAuthor,
				"author %d does not exist", authorID)
		}
		documentExists, err := ds.documentRepo.ExistsByID(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if !documentExists {
			return apierr.BadRequest(apierr.CodeUnknownDocument,
				"document %d does not exist", documentID)
		}
		if err := ds.edgeRepo.InsertAuthoredBy(dbc, authorID, documentID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// RemoveAuthorFromDocument deletes an authorship edge. Endpoints are not
// re-checked: if either endpoint were already gone the edge could not exist.
func (ds *documentService) RemoveAuthorFromDocument(dbc dbctx.Context, documentID, authorID int) error {
	if documentID <= 0 || authorID <= 0 {
		return apierr.BadRequest(apierr.CodeInvalidID,
			"invalid author id or document id provided")
	}

	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		authors, err := ds.edgeRepo.AuthorsOf(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if !containsID(authors, authorID) {
			return apierr.BadRequest(apierr.CodeEdgeNotFound,
				"author %d is not credited on document %d", authorID, documentID)
		}
		if err := ds.edgeRepo.DeleteAuthoredByPair(dbc, documentID, authorID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (ds *documentService) AddReferenceToDocument(dbc dbctx.Context, referencingID, referencedID int) error {
	if referencingID <= 0 || referencedID <= 0 {
		return apierr.BadRequest(apierr.CodeInvalidID, "invalid reference ids provided")
	}

	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		references, err := ds.edgeRepo.ReferencesOf(dbc, referencingID)
		if err != nil {
			return storeErr(err)
		}
		if containsID(references, referencedID) {
			return apierr.BadRequest(apierr.CodeDuplicateEdge,
				"document %d already references document %d", referencingID, referencedID)
		}
		referencingExists, err := ds.documentRepo.ExistsByID(dbc, referencingID)
		if err != nil {
			return storeErr(err)
		}
		if !referencingExists {
			return apierr.BadRequest(apierr.CodeUnknownDocument,
				"referencing document %d does not exist", referencingID)
		}
		referencedExists, err := ds.documentRepo.ExistsByID(dbc, referencedID)
		if err != nil {
			return storeErr(err)
		}
		if !referencedExists {
			return apierr.BadRequest(apierr.CodeUnknownDocument,
				"referenced document %d does not exist", referencedID)
		}
		if err := ds.edgeRepo.InsertReferencedBy(dbc, referencingID, referencedID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (ds *documentService) RemoveReferenceFromDocument(dbc dbctx.Context, referencingID, referencedID int) error {
	if referencingID <= 0 || referencedID <= 0 {
		return apierr.BadRequest(apierr.CodeInvalidID, "invalid reference ids provided")
	}

	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		references, err := ds.edgeRepo.ReferencesOf(dbc, referencingID)
		if err != nil {
			return storeErr(err)
		}
		if !containsID(references, referencedID) {
			return apierr.BadRequest(apierr.CodeEdgeNotFound,
				"document %d does not reference document %d", referencingID, referencedID)
		}
		if err := ds.edgeRepo.DeleteReferencedByPair(dbc, referencingID, referencedID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// DeleteDocument removes the document's authorship edges, every reference
// edge naming it in either role, and finally the row itself, atomically.
func (ds *documentService) DeleteDocument(dbc dbctx.Context, documentID int) error {
	if documentID <= 0 {
		return apierr.BadRequest(apierr.CodeInvalidID, "invalid document id %d", documentID)
	}

	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		exists, err := ds.documentRepo.ExistsByID(dbc, documentID)
		if err != nil {
			return storeErr(err)
		}
		if !exists {
			return apierr.NotFound(apierr.CodeNotFound, "no document found for id %d", documentID)
		}
		if err := ds.edgeRepo.DeleteAuthoredByForDocument(dbc, documentID); err != nil {
			return storeErr(err)
		}
		if err := ds.edgeRepo.DeleteReferencedByForDocument(dbc, documentID); err != nil {
			return storeErr(err)
		}
		if err := ds.documentRepo.DeleteByID(dbc, documentID); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

// DeleteAllDocuments wipes both edge tables before the document rows: every
// authorship edge and every reference edge names a document, so nothing can
// be left dangling. Calling it on an already empty store is a no-op.
func (ds *documentService) DeleteAllDocuments(dbc dbctx.Context) error {
	return ds.inTx(dbc, func(dbc dbctx.Context) error {
		if err := ds.edgeRepo.DeleteAllAuthoredBy(dbc); err != nil {
			return storeErr(err)
		}
		if err := ds.edgeRepo.DeleteAllReferencedBy(dbc); err != nil {
			return storeErr(err)
		}
		if err := ds.documentRepo.DeleteAll(dbc); err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (ds *documentService) hydrateEdges(dbc dbctx.Context, doc *types.Document) error {
	authors, err := ds.edgeRepo.AuthorsOf(dbc, doc.ID)
	if err != nil {
		return storeErr(err)
	}
	references, err := ds.edgeRepo.ReferencesOf(dbc, doc.ID)
	if err != nil {
		return storeErr(err)
	}
	doc.AuthorIDs = authors
	doc.ReferenceIDs = references
	return nil
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
