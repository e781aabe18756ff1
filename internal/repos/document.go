package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/types"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, document *types.Document) (*types.Document, error)
	GetByID(dbc dbctx.Context, documentID int) (*types.Document, error)
	ExistsByID(dbc dbctx.Context, documentID int) (bool, error)
	FindAll(dbc dbctx.Context) ([]*types.Document, error)
	Save(dbc dbctx.Context, document *types.Document) (*types.Document, error)
	DeleteByID(dbc dbctx.Context, documentID int) error
	DeleteAll(dbc dbctx.Context) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (dr *documentRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (dr *documentRepo) Create(dbc dbctx.Context, document *types.Document) (*types.Document, error) {
	if err := dr.conn(dbc).Create(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

// GetByID returns (nil, nil) when no document row exists for the id. The
// returned row carries empty edge sets; hydration is the service's job.
func (dr *documentRepo) GetByID(dbc dbctx.Context, documentID int) (*types.Document, error) {
	var result types.Document
	err := dr.conn(dbc).First(&result, "id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *documentRepo) ExistsByID(dbc dbctx.Context, documentID int) (bool, error) {
	var count int64
	if err := dr.conn(dbc).
		Model(&types.Document{}).
		Where("id = ?", documentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *documentRepo) FindAll(dbc dbctx.Context) ([]*types.Document, error) {
	results := []*types.Document{}
	if err := dr.conn(dbc).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentRepo) Save(dbc dbctx.Context, document *types.Document) (*types.Document, error) {
	if err := dr.conn(dbc).Save(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

func (dr *documentRepo) DeleteByID(dbc dbctx.Context, documentID int) error {
	return dr.conn(dbc).Delete(&types.Document{}, "id = ?", documentID).Error
}

func (dr *documentRepo) DeleteAll(dbc dbctx.Context) error {
	return dr.conn(dbc).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&types.Document{}).Error
}
