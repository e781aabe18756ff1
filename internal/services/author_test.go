package services

import (
	"testing"

	"github.com/docukit/docgraph-backend/internal/apierr"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
)

func TestCreateAuthorRequiresBothNames(t *testing.T) {
	f := newFixture(t)

	if _, err := f.author.CreateAuthor(dbctx.Background(), "", "Lovelace"); apierr.CodeOf(err) != apierr.CodeInvalidAuthorFields {
		t.Fatalf("missing first name: want=%q got=%q", apierr.CodeInvalidAuthorFields, apierr.CodeOf(err))
	}
	if _, err := f.author.CreateAuthor(dbctx.Background(), "Ada", ""); apierr.CodeOf(err) != apierr.CodeInvalidAuthorFields {
		t.Fatalf("missing last name: want=%q got=%q", apierr.CodeInvalidAuthorFields, apierr.CodeOf(err))
	}

	author, err := f.author.CreateAuthor(dbctx.Background(), "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if author.ID <= 0 {
		t.Fatalf("author id must be assigned, got %d", author.ID)
	}
}

func TestGetAuthorErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.author.GetAuthor(dbctx.Background(), 0); apierr.CodeOf(err) != apierr.CodeInvalidID {
		t.Fatalf("zero id: want=%q got=%q", apierr.CodeInvalidID, apierr.CodeOf(err))
	}
	if _, err := f.author.GetAuthor(dbctx.Background(), 7); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("unknown id: want=%q got=%q", apierr.CodeNotFound, apierr.CodeOf(err))
	}
}

func TestFindAuthorsByName(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")
	f.seedAuthor(t, "Alan", "Turing")
	grace := f.seedAuthor(t, "Grace", "Hopper")

	if _, err := f.author.FindAuthorsByName(dbctx.Background(), "", "Turing"); apierr.CodeOf(err) != apierr.CodeInvalidSearchTerm {
		t.Fatalf("empty term: want=%q got=%q", apierr.CodeInvalidSearchTerm, apierr.CodeOf(err))
	}

	// Substring containment, either name qualifies.
	found, err := f.author.FindAuthorsByName(dbctx.Background(), "da", "Hopper")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].ID != ada.ID || found[1].ID != grace.ID {
		t.Fatalf("want authors %d and %d, got %v", ada.ID, grace.ID, found)
	}

	none, err := f.author.FindAuthorsByName(dbctx.Background(), "xyz", "qrs")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("want no match, got %v", none)
	}
}

func TestUpdateAuthorNames(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")

	if _, err := f.author.UpdateFirstName(dbctx.Background(), 9, "X"); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("unknown id: want=%q got=%q", apierr.CodeNotFound, apierr.CodeOf(err))
	}

	updated, err := f.author.UpdateFirstName(dbctx.Background(), ada.ID, "Augusta")
	if err != nil {
		t.Fatalf("update first name: %v", err)
	}
	if updated.FirstName != "Augusta" || updated.LastName != "Lovelace" {
		t.Fatalf("got %+v", updated)
	}

	updated, err = f.author.UpdateLastName(dbctx.Background(), ada.ID, "King")
	if err != nil {
		t.Fatalf("update last name: %v", err)
	}
	if updated.FirstName != "Augusta" || updated.LastName != "King" {
		t.Fatalf("got %+v", updated)
	}
}

func TestDeleteAuthorLeavesDocuments(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")
	alan := f.seedAuthor(t, "Alan", "Turing")
	f.seedDocument(t, 1, "joint", []int{ada.ID, alan.ID}, nil)

	if err := f.author.DeleteAuthor(dbctx.Background(), 9); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("unknown id: want=%q got=%q", apierr.CodeNotFound, apierr.CodeOf(err))
	}

	if err := f.author.DeleteAuthor(dbctx.Background(), ada.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.author.GetAuthor(dbctx.Background(), ada.ID); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("author must be gone, got err=%v", err)
	}

	doc, err := f.document.GetDocument(dbctx.Background(), 1)
	if err != nil {
		t.Fatalf("document must survive: %v", err)
	}
	if !equalIDs(doc.AuthorIDs, []int{alan.ID}) {
		t.Fatalf("author ids: want=%v got=%v", []int{alan.ID}, doc.AuthorIDs)
	}
}

func TestDeleteAllAuthorsLeavesDocuments(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")
	f.seedDocument(t, 1, "doc", []int{ada.ID}, nil)

	if err := f.author.DeleteAllAuthors(dbctx.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	authors, err := f.author.ListAuthors(dbctx.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(authors) != 0 {
		t.Fatalf("authors: want none, got %d", len(authors))
	}

	doc, err := f.document.GetDocument(dbctx.Background(), 1)
	if err != nil {
		t.Fatalf("document must survive: %v", err)
	}
	if len(doc.AuthorIDs) != 0 {
		t.Fatalf("author ids: want empty, got %v", doc.AuthorIDs)
	}
}

func TestCascadeDeleteAuthorAndWorks(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")
	alan := f.seedAuthor(t, "Alan", "Turing")
	f.seedDocument(t, 1, "ada one", []int{ada.ID}, nil)
	f.seedDocument(t, 2, "ada two", []int{ada.ID}, []int{1})
	f.seedDocument(t, 3, "alan survives", []int{alan.ID}, []int{1})

	if err := f.author.CascadeDeleteAuthorAndWorks(dbctx.Background(), ada.ID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if _, err := f.author.GetAuthor(dbctx.Background(), ada.ID); apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("author must be gone, got err=%v", err)
	}
	for _, id := range []int{1, 2} {
		if _, err := f.document.GetDocument(dbctx.Background(), id); apierr.CodeOf(err) != apierr.CodeNotFound {
			t.Fatalf("document %d must be gone, got err=%v", id, err)
		}
	}

	doc, err := f.document.GetDocument(dbctx.Background(), 3)
	if err != nil {
		t.Fatalf("unrelated document must survive: %v", err)
	}
	if !equalIDs(doc.AuthorIDs, []int{alan.ID}) {
		t.Fatalf("author ids: want=%v got=%v", []int{alan.ID}, doc.AuthorIDs)
	}
	if len(doc.ReferenceIDs) != 0 {
		t.Fatalf("dangling reference must be gone, got %v", doc.ReferenceIDs)
	}
}

func TestCascadeDeleteUnknownAuthorIsNoOp(t *testing.T) {
	f := newFixture(t)
	ada := f.seedAuthor(t, "Ada", "Lovelace")
	f.seedDocument(t, 1, "doc", []int{ada.ID}, nil)

	if err := f.author.CascadeDeleteAuthorAndWorks(dbctx.Background(), 99); err != nil {
		t.Fatalf("unknown author must be a no-op, got %v", err)
	}
	if _, err := f.document.GetDocument(dbctx.Background(), 1); err != nil {
		t.Fatalf("document must survive: %v", err)
	}
}
