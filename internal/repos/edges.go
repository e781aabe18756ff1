package repos

import (
	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/types"
)

// EdgeRepo owns the two edge tables. Edge rows are stored independently of
// the entities they connect; endpoint existence is enforced by the services,
// not here.
type EdgeRepo interface {
	InsertAuthoredBy(dbc dbctx.Context, authorID, documentID int) error
	DeleteAuthoredByForAuthor(dbc dbctx.Context, authorID int) error
	DeleteAuthoredByForDocument(dbc dbctx.Context, documentID int) error
	DeleteAuthoredByPair(dbc dbctx.Context, documentID, authorID int) error
	AuthorsOf(dbc dbctx.Context, documentID int) ([]int, error)
	DocumentsOf(dbc dbctx.Context, authorID int) ([]int, error)
	DeleteAllAuthoredBy(dbc dbctx.Context) error

	InsertReferencedBy(dbc dbctx.Context, referencingID, referencedID int) error
	DeleteReferencedByPair(dbc dbctx.Context, referencingID, referencedID int) error
	DeleteReferencedByForDocument(dbc dbctx.Context, documentID int) error
	ReferencesOf(dbc dbctx.Context, documentID int) ([]int, error)
	DeleteAllReferencedBy(dbc dbctx.Context) error
}

type edgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEdgeRepo(db *gorm.DB, baseLog *logger.Logger) EdgeRepo {
	repoLog := baseLog.With("repo", "EdgeRepo")
	return &edgeRepo{db: db, log: repoLog}
}

func (er *edgeRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (er *edgeRepo) InsertAuthoredBy(dbc dbctx.Context, authorID, documentID int) error {
	edge := types.AuthoredBy{AuthorID: authorID, DocumentID: documentID}
	return er.conn(dbc).Create(&edge).Error
}

func (er *edgeRepo) DeleteAuthoredByForAuthor(dbc dbctx.Context, authorID int) error {
	return er.conn(dbc).
		Where("author_id = ?", authorID).
		Delete(&types.AuthoredBy{}).Error
}

func (er *edgeRepo) DeleteAuthoredByForDocument(dbc dbctx.Context, documentID int) error {
	return er.conn(dbc).
		Where("document_id = ?", documentID).
		Delete(&types.AuthoredBy{}).Error
}

func (er *edgeRepo) DeleteAuthoredByPair(dbc dbctx.Context, documentID, authorID int) error {
	return er.conn(dbc).
		Where("document_id = ? AND author_id = ?", documentID, authorID).
		Delete(&types.AuthoredBy{}).Error
}

func (er *edgeRepo) AuthorsOf(dbc dbctx.Context, documentID int) ([]int, error) {
	ids := []int{}
	if err := er.conn(dbc).
		Model(&types.AuthoredBy{}).
		Where("document_id = ?", documentID).
		Order("author_id").
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (er *edgeRepo) DocumentsOf(dbc dbctx.Context, authorID int) ([]int, error) {
	ids := []int{}
	if err := er.conn(dbc).
		Model(&types.AuthoredBy{}).
		Where("author_id = ?", authorID).
		Order("document_id").
		Pluck("document_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (er *edgeRepo) DeleteAllAuthoredBy(dbc dbctx.Context) error {
	return er.conn(dbc).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&types.AuthoredBy{}).Error
}

func (er *edgeRepo) InsertReferencedBy(dbc dbctx.Context, referencingID, referencedID int) error {
	edge := types.ReferencedBy{ReferencingID: referencingID, ReferencedID: referencedID}
	return er.conn(dbc).Create(&edge).Error
}

func (er *edgeRepo) DeleteReferencedByPair(dbc dbctx.Context, referencingID, referencedID int) error {
	return er.conn(dbc).
		Where("referencing_id = ? AND referenced_id = ?", referencingID, referencedID).
		Delete(&types.ReferencedBy{}).Error
}

// DeleteReferencedByForDocument removes every reference edge naming the
// document in either endpoint role.
func (er *edgeRepo) DeleteReferencedByForDocument(dbc dbctx.Context, documentID int) error {
	return er.conn(dbc).
		Where("referencing_id = ? OR referenced_id = ?", documentID, documentID).
		Delete(&types.ReferencedBy{}).Error
}

func (er *edgeRepo) ReferencesOf(dbc dbctx.Context, documentID int) ([]int, error) {
	ids := []int{}
	if err := er.conn(dbc).
		Model(&types.ReferencedBy{}).
		Where("referencing_id = ?", documentID).
		Order("referenced_id").
		Pluck("referenced_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (er *edgeRepo) DeleteAllReferencedBy(dbc dbctx.Context) error {
	return er.conn(dbc).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&types.ReferencedBy{}).Error
}
