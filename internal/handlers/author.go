package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/services"
)

type AuthorHandler struct {
	authorService services.AuthorService
	notifier      services.Notifier
}

func NewAuthorHandler(authorService services.AuthorService, notifier services.Notifier) *AuthorHandler {
	return &AuthorHandler{authorService: authorService, notifier: notifier}
}

// pathInt parses an integer path parameter; anything non-numeric counts as
// an invalid id.
func pathInt(c *gin.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apierr.BadRequest(apierr.CodeInvalidID, "path parameter %q must be an integer", name)
	}
	return value, nil
}

func reqCtx(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

type createAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (ah *AuthorHandler) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidAuthorFields, "invalid author payload: %v", err))
		return
	}
	author, err := ah.authorService.CreateAuthor(reqCtx(c), req.FirstName, req.LastName)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, author)
}

func (ah *AuthorHandler) GetByID(c *gin.Context) {
	authorID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	author, err := ah.authorService.GetAuthor(reqCtx(c), authorID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, author)
}

func (ah *AuthorHandler) List(c *gin.Context) {
	authors, err := ah.authorService.ListAuthors(reqCtx(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, authors)
}

func (ah *AuthorHandler) Search(c *gin.Context) {
	authors, err := ah.authorService.FindAuthorsByName(reqCtx(c), c.Param("firstName"), c.Param("lastName"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, authors)
}

func (ah *AuthorHandler) UpdateFirstName(c *gin.Context) {
	authorID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	firstName := c.Param("firstName")
	author, err := ah.authorService.UpdateFirstName(reqCtx(c), authorID, firstName)
	if err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := ah.notifier.AuthorFirstNameUpdated(c.Request.Context(), authorID, firstName)
	RespondMutated(c, author, notifyErr)
}

func (ah *AuthorHandler) UpdateLastName(c *gin.Context) {
	authorID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	lastName := c.Param("lastName")
	author, err := ah.authorService.UpdateLastName(reqCtx(c), authorID, lastName)
	if err != nil {
		RespondError(c, err)
		return
	}
	notifyErr := ah.notifier.AuthorLastNameUpdated(c.Request.Context(), authorID, lastName)
	RespondMutated(c, author, notifyErr)
}

func (ah *AuthorHandler) Delete(c *gin.Context) {
	authorID, err := pathInt(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.authorService.DeleteAuthor(reqCtx(c), authorID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "author successfully deleted"})
}

func (ah *AuthorHandler) DeleteAll(c *gin.Context) {
	if err := ah.authorService.DeleteAllAuthors(reqCtx(c)); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "all authors successfully deleted"})
}
