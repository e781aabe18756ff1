package services

import (
	"testing"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
)

func newValidator(f *fixture) PayloadValidator {
	return NewPayloadValidator(logger.NewNop(), f.authors, f.docs)
}

func TestParseDocumentPayloadRejectsEmptyAndMalformed(t *testing.T) {
	if _, err := ParseDocumentPayload(nil); apierr.CodeOf(err) != apierr.CodeMissingRequiredField {
		t.Fatalf("empty payload: want=%q got=%q", apierr.CodeMissingRequiredField, apierr.CodeOf(err))
	}
	if _, err := ParseDocumentPayload([]byte("{not json")); apierr.CodeOf(err) != apierr.CodeMissingRequiredField {
		t.Fatalf("malformed payload: want=%q got=%q", apierr.CodeMissingRequiredField, apierr.CodeOf(err))
	}
}

func TestParseDocumentPayloadKeepsAbsentFieldsNil(t *testing.T) {
	payload, err := ParseDocumentPayload([]byte(`{"id": 1, "title": "t"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if payload.ID == nil || *payload.ID != 1 {
		t.Fatalf("id not decoded")
	}
	if payload.Body != nil || payload.AuthorIDs != nil || payload.ReferenceIDs != nil {
		t.Fatalf("absent fields must decode as nil")
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)

	cases := []*DocumentPayload{
		nil,
		{Title: strPtr("t"), Body: strPtr("b"), AuthorIDs: idsPtr(1)},
		{ID: intPtr(1), Body: strPtr("b"), AuthorIDs: idsPtr(1)},
		{ID: intPtr(1), Title: strPtr("t"), AuthorIDs: idsPtr(1)},
	}
	for i, payload := range cases {
		if _, err := validator.Validate(dbctx.Background(), payload); apierr.CodeOf(err) != apierr.CodeMissingRequiredField {
			t.Fatalf("case %d: want=%q got=%q", i, apierr.CodeMissingRequiredField, apierr.CodeOf(err))
		}
	}
}

func TestValidateAuthorListChecksPrecedeExistence(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)

	missing := &DocumentPayload{ID: intPtr(1), Title: strPtr("t"), Body: strPtr("b")}
	if _, err := validator.Validate(dbctx.Background(), missing); apierr.CodeOf(err) != apierr.CodeMissingAuthorList {
		t.Fatalf("missing list: want=%q got=%q", apierr.CodeMissingAuthorList, apierr.CodeOf(err))
	}

	empty := &DocumentPayload{ID: intPtr(1), Title: strPtr("t"), Body: strPtr("b"), AuthorIDs: idsPtr()}
	if _, err := validator.Validate(dbctx.Background(), empty); apierr.CodeOf(err) != apierr.CodeEmptyAuthorList {
		t.Fatalf("empty list: want=%q got=%q", apierr.CodeEmptyAuthorList, apierr.CodeOf(err))
	}
}

func TestValidateUnknownAuthor(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)

	payload := &DocumentPayload{ID: intPtr(1), Title: strPtr("t"), Body: strPtr("b"), AuthorIDs: idsPtr(42)}
	if _, err := validator.Validate(dbctx.Background(), payload); apierr.CodeOf(err) != apierr.CodeUnknownAuthor {
		t.Fatalf("want=%q got=%q", apierr.CodeUnknownAuthor, apierr.CodeOf(err))
	}
}

func TestValidateUnknownReferencedDocument(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)
	author := f.seedAuthor(t, "Ada", "Lovelace")

	payload := &DocumentPayload{
		ID:           intPtr(1),
		Title:        strPtr("t"),
		Body:         strPtr("b"),
		AuthorIDs:    idsPtr(author.ID),
		ReferenceIDs: idsPtr(99),
	}
	if _, err := validator.Validate(dbctx.Background(), payload); apierr.CodeOf(err) != apierr.CodeUnknownReferencedDoc {
		t.Fatalf("want=%q got=%q", apierr.CodeUnknownReferencedDoc, apierr.CodeOf(err))
	}
}

func TestValidateDedupesAndSortsIDLists(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)
	a := f.seedAuthor(t, "Ada", "Lovelace")
	b := f.seedAuthor(t, "Alan", "Turing")
	f.seedDocument(t, 10, "base", []int{a.ID}, nil)
	f.seedDocument(t, 11, "base2", []int{a.ID}, nil)

	payload := &DocumentPayload{
		ID:           intPtr(20),
		Title:        strPtr("t"),
		Body:         strPtr("b"),
		AuthorIDs:    idsPtr(b.ID, a.ID, b.ID),
		ReferenceIDs: idsPtr(11, 10, 11),
	}
	validated, err := validator.Validate(dbctx.Background(), payload)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !equalIDs(validated.AuthorIDs, []int{a.ID, b.ID}) {
		t.Fatalf("author ids: want=%v got=%v", []int{a.ID, b.ID}, validated.AuthorIDs)
	}
	if !equalIDs(validated.ReferenceIDs, []int{10, 11}) {
		t.Fatalf("reference ids: want=%v got=%v", []int{10, 11}, validated.ReferenceIDs)
	}
}

func TestValidateReferencesOptional(t *testing.T) {
	f := newFixture(t)
	validator := newValidator(f)
	a := f.seedAuthor(t, "Ada", "Lovelace")

	payload := &DocumentPayload{ID: intPtr(1), Title: strPtr("t"), Body: strPtr("b"), AuthorIDs: idsPtr(a.ID)}
	validated, err := validator.Validate(dbctx.Background(), payload)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(validated.ReferenceIDs) != 0 {
		t.Fatalf("want no references, got %v", validated.ReferenceIDs)
	}
}
