package services

import (
	"encoding/json"
	"sort"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/repos"
)

// DocumentPayload is the composite creation input. Pointer fields make an
// absent key distinguishable from a zero value, which the validation order
// depends on.
type DocumentPayload struct {
	ID           *int    `json:"id"`
	Title        *string `json:"title"`
	Body         *string `json:"body"`
	AuthorIDs    *[]int  `json:"author_ids"`
	ReferenceIDs *[]int  `json:"reference_ids"`
}

// BodyUpdatePayload carries a body update for an existing document.
type BodyUpdatePayload struct {
	ID   *int    `json:"id"`
	Body *string `json:"body"`
}

// ValidatedDocument is a payload that passed every check and is safe to
// commit. Both id lists are deduplicated and sorted.
type ValidatedDocument struct {
	ID           int
	Title        string
	Body         string
	AuthorIDs    []int
	ReferenceIDs []int
}

// ParseDocumentPayload decodes a raw creation payload. It is stateless; an
// empty or malformed payload reports MissingRequiredField since no field
// presence can be established from it.
func ParseDocumentPayload(raw []byte) (*DocumentPayload, error) {
	if len(raw) == 0 {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "payload must not be empty")
	}
	var payload DocumentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "payload is not valid JSON: %v", err)
	}
	return &payload, nil
}

// ParseBodyUpdatePayload decodes a raw body-update payload.
func ParseBodyUpdatePayload(raw []byte) (*BodyUpdatePayload, error) {
	if len(raw) == 0 {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "payload must not be empty")
	}
	var payload BodyUpdatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "payload is not valid JSON: %v", err)
	}
	return &payload, nil
}

// PayloadValidator checks a creation payload against current graph state
// before any mutation is issued. It only reads.
type PayloadValidator interface {
	Validate(dbc dbctx.Context, payload *DocumentPayload) (*ValidatedDocument, error)
}

type payloadValidator struct {
	log          *logger.Logger
	authorRepo   repos.AuthorRepo
	documentRepo repos.DocumentRepo
}

func NewPayloadValidator(log *logger.Logger, authorRepo repos.AuthorRepo, documentRepo repos.DocumentRepo) PayloadValidator {
	return &payloadValidator{
		log:          log.With("service", "PayloadValidator"),
		authorRepo:   authorRepo,
		documentRepo: documentRepo,
	}
}

// Validate runs the checks in a fixed order so the reported error is
// deterministic: field presence, author-list presence, author-list
// non-emptiness, author existence, reference existence.
func (pv *payloadValidator) Validate(dbc dbctx.Context, payload *DocumentPayload) (*ValidatedDocument, error) {
	if payload == nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField, "payload must not be empty")
	}
	if payload.ID == nil || payload.Title == nil || payload.Body == nil {
		return nil, apierr.BadRequest(apierr.CodeMissingRequiredField,
			"id, title and body must all be included in the payload")
	}
	if payload.AuthorIDs == nil {
		return nil, apierr.BadRequest(apierr.CodeMissingAuthorList,
			"a list with at least one author id must be included in the payload")
	}

	authorIDs := dedupeIDs(*payload.AuthorIDs)
	if len(authorIDs) == 0 {
		return nil, apierr.BadRequest(apierr.CodeEmptyAuthorList,
			"the author list must not be empty")
	}

	for _, authorID := range authorIDs {
		exists, err := pv.authorRepo.ExistsByID(dbc, authorID)
		if err != nil {
			return nil, apierr.Store(err)
		}
		if !exists {
			return nil, apierr.BadRequest(apierr.CodeUnknownAuthor,
				"author %d is not registered", authorID)
		}
	}

	var referenceIDs []int
	if payload.ReferenceIDs != nil {
		referenceIDs = dedupeIDs(*payload.ReferenceIDs)
		for _, referenceID := range referenceIDs {
			exists, err := pv.documentRepo.ExistsByID(dbc, referenceID)
			if err != nil {
				return nil, apierr.Store(err)
			}
			if !exists {
				return nil, apierr.BadRequest(apierr.CodeUnknownReferencedDoc,
					"referenced document %d is not registered", referenceID)
			}
		}
	}

	return &ValidatedDocument{
		ID:           *payload.ID,
		Title:        *payload.Title,
		Body:         *payload.Body,
		AuthorIDs:    authorIDs,
		ReferenceIDs: referenceIDs,
	}, nil
}

// dedupeIDs treats the input as a set: duplicates collapse and the result
// comes back sorted.
func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
