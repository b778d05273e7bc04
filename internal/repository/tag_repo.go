package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

type TagRepo interface {
	WithTx(tx *gorm.DB) TagRepo
	// GetOrCreate returns the tag stored under the slug of name, creating
	// it when missing. created reports whether a row was inserted.
	GetOrCreate(ctx context.Context, name string) (tag *model.Tag, created bool, err error)
	GetBySlug(ctx context.Context, slug string) (*model.Tag, error)
	List(ctx context.Context, limit int) ([]model.Tag, error)
	DeleteAll(ctx context.Context) error
}

type tagRepoGorm struct {
	db *gorm.DB
}

var _ TagRepo = (*tagRepoGorm)(nil)

func NewTagRepoGorm(db *gorm.DB) *tagRepoGorm {
	return &tagRepoGorm{
		db: db,
	}
}

func (r *tagRepoGorm) WithTx(tx *gorm.DB) TagRepo {
	return &tagRepoGorm{
		db: tx,
	}
}

func (r *tagRepoGorm) GetOrCreate(ctx context.Context, name string) (*model.Tag, bool, error) {
	slug := model.MakeSlug(name)
	if slug == "" {
		return nil, false, ErrEmptySlug
	}
	return getOrCreate(ctx, r.db, &model.Tag{Slug: slug}, &model.Tag{Name: name, Slug: slug})
}

func (r *tagRepoGorm) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	tag, err := gorm.G[model.Tag](r.db).Where(&model.Tag{Slug: slug}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns tags ordered by name; a non-positive limit returns all.
func (r *tagRepoGorm) List(ctx context.Context, limit int) ([]model.Tag, error) {
	q := gorm.G[model.Tag](r.db).Order("name, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(ctx)
}

func (r *tagRepoGorm) DeleteAll(ctx context.Context) error {
	tx := r.db.WithContext(ctx)
	if err := deleteJoinRows(tx, model.MovieTagsTable, ""); err != nil {
		return err
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Tag{}).Error
}
