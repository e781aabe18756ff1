package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
	validator       services.PayloadValidator
	notifier        services.Notifier
}

func NewDocumentHandler(documentService services.DocumentService, validator services.PayloadValidator, notifier services.Notifier) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		validator:       validator,
		notifier:        notifier,
	}
}

// Create validates the composite payload fully before any store mutation
// is issued, then commits the document with all its edges in one go.
func (dh *DocumentHandler) Create(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeMissingRequiredField, "could not read payload: %v", err))
		return
	}
	payload, err := services.ParseDocumentPayload(raw)
	if err != nil {
		RespondError(c, err)
		return
	}
	validated, err := dh.validator.Validate(reqCtx(c), payload)
	if err != nil {
		RespondError(c, err)
		return
	}
	doc, err := dh.documentService.CreateDocument(reqCtx(c), validated)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) GetByID(c *gin.Context) {
	documentID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	doc, err := dh.documentService.GetDocument(reqCtx(c), documentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) List(c *gin.Context) {
	docs, err := dh.documentService.ListDocuments(reqCtx(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, docs)
}

func (dh *DocumentHandler) UpdateTitle(c *gin.Context) {
	documentID, err := pathInt(c, "documentID")
	if err != nil {
		RespondError(c, err)
		return
	}
	title := c.Param("title")
	doc, err := dh.documentService.UpdateTitle(reqCtx(c), documentID, title)
	if err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.DocumentTitleUpdated(c.Request.Context(), documentID, title)
	RespondMutated(c, doc, notifyErr)
}

func (dh *DocumentHandler) UpdateBody(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeMissingRequiredField, "could not read payload: %v", err))
		return
	}
	payload, err := services.ParseBodyUpdatePayload(raw)
	if err != nil {
		RespondError(c, err)
		return
	}
	doc, err := dh.documentService.UpdateBody(reqCtx(c), payload)
	if err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.DocumentBodyUpdated(c.Request.Context(), doc.ID)
	RespondMutated(c, doc, notifyErr)
}

func (dh *DocumentHandler) AddAuthor(c *gin.Context) {
	documentID, err := pathInt(c, "documentID")
	if err != nil {
		RespondError(c, err)
		return
	}
	authorID, err := pathInt(c, "authorID")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := dh.documentService.AddAuthorToDocument(reqCtx(c), documentID, authorID); err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.AuthorAddedToDocument(c.Request.Context(), documentID, authorID)
	RespondMutated(c, gin.H{"message": "author successfully added as author to document"}, notifyErr)
}

func (dh *DocumentHandler) RemoveAuthor(c *gin.Context) {
	documentID, err := pathInt(c, "documentID")
	if err != nil {
		RespondError(c, err)
		return
	}
	authorID, err := pathInt(c, "authorID")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := dh.documentService.RemoveAuthorFromDocument(reqCtx(c), documentID, authorID); err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.AuthorRemovedFromDocument(c.Request.Context(), documentID, authorID)
	RespondMutated(c, gin.H{"message": "author successfully removed as author from document"}, notifyErr)
}

func (dh *DocumentHandler) AddReference(c *gin.Context) {
	referencingID, err := pathInt(c, "referencingID")
	if err != nil {
		RespondError(c, err)
		return
	}
	referencedID, err := pathInt(c, "referencedID")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := dh.documentService.AddReferenceToDocument(reqCtx(c), referencingID, referencedID); err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.ReferenceAddedToDocument(c.Request.Context(), referencingID, referencedID)
	RespondMutated(c, gin.H{"message": "document successfully added as reference"}, notifyErr)
}

func (dh *DocumentHandler) RemoveReference(c *gin.Context) {
	referencingID, err := pathInt(c, "referencingID")
	if err != nil {
		RespondError(c, err)
		return
	}
	referencedID, err := pathInt(c, "referencedID")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := dh.documentService.RemoveReferenceFromDocument(reqCtx(c), referencingID, referencedID); err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := dh.notifier.ReferenceRemovedFromDocument(c.Request.Context(), referencingID, referencedID)
	RespondMutated(c, gin.H{"message": "document successfully removed as reference"}, notifyErr)
}

func (dh *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := dh.documentService.DeleteDocument(reqCtx(c), documentID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document successfully deleted"})
}

func (dh *DocumentHandler) DeleteAll(c *gin.Context) {
	if err := dh.documentService.DeleteAllDocuments(reqCtx(c)); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "all documents successfully deleted"})
}
