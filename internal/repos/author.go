package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/types"
)

type AuthorRepo interface {
	Create(dbc dbctx.Context, author *types.Author) (*types.Author, error)
	GetByID(dbc dbctx.Context, authorID int) (*types.Author, error)
	ExistsByID(dbc dbctx.Context, authorID int) (bool, error)
	FindAll(dbc dbctx.Context) ([]*types.Author, error)
	FindByNames(dbc dbctx.Context, firstName, lastName string) ([]*types.Author, error)
	Save(dbc dbctx.Context, author *types.Author) (*types.Author, error)
	DeleteByID(dbc dbctx.Context, authorID int) error
	DeleteAll(dbc dbctx.Context) error
}

type authorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	repoLog := baseLog.With("repo", "AuthorRepo")
	return &authorRepo{db: db, log: repoLog}
}

func (ar *authorRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (ar *authorRepo) Create(dbc dbctx.Context, author *types.Author) (*types.Author, error) {
	if err := ar.conn(dbc).Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID returns (nil, nil) when no author row exists for the id.
func (ar *authorRepo) GetByID(dbc dbctx.Context, authorID int) (*types.Author, error) {
	var result types.Author
	err := ar.conn(dbc).First(&result, "id = ?", authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *authorRepo) ExistsByID(dbc dbctx.Context, authorID int) (bool, error) {
	var count int64
	if err := ar.conn(dbc).
		Model(&types.Author{}).
		Where("id = ?", authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *authorRepo) FindAll(dbc dbctx.Context) ([]*types.Author, error) {
	results := []*types.Author{}
	if err := ar.conn(dbc).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindByNames matches on substring containment of either name, so a record
// qualifies when its first name contains firstName OR its last name contains
// lastName.
func (ar *authorRepo) FindByNames(dbc dbctx.Context, firstName, lastName string) ([]*types.Author, error) {
	results := []*types.Author{}
	if err := ar.conn(dbc).
		Where("first_name LIKE ? OR last_name LIKE ?", "%"+firstName+"%", "%"+lastName+"%").
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *authorRepo) Save(dbc dbctx.Context, author *types.Author) (*types.Author, error) {
	if err := ar.conn(dbc).Save(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

func (ar *authorRepo) DeleteByID(dbc dbctx.Context, authorID int) error {
	return ar.conn(dbc).Delete(&types.Author{}, "id = ?", authorID).Error
}

func (ar *authorRepo) DeleteAll(dbc dbctx.Context) error {
	return ar.conn(dbc).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&types.Author{}).Error
}
