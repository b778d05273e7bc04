package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

type GenreRepo interface {
	WithTx(tx *gorm.DB) GenreRepo
	GetOrCreate(ctx context.Context, name string) (genre *model.Genre, created bool, err error)
	GetBySlug(ctx context.Context, slug string) (*model.Genre, error)
	List(ctx context.Context, limit int) ([]model.Genre, error)
	DeleteAll(ctx context.Context) error
}

type genreRepoGorm struct {
	db *gorm.DB
}

var _ GenreRepo = (*genreRepoGorm)(nil)

func NewGenreRepoGorm(db *gorm.DB) *genreRepoGorm {
	return &genreRepoGorm{
		db: db,
	}
}

func (r *genreRepoGorm) WithTx(tx *gorm.DB) GenreRepo {
	return &genreRepoGorm{
		db: tx,
	}
}

func (r *genreRepoGorm) GetOrCreate(ctx context.Context, name string) (*model.Genre, bool, error) {
	slug := model.MakeSlug(name)
	if slug == "" {
		return nil, false, ErrEmptySlug
	}
	return getOrCreate(ctx, r.db, &model.Genre{Slug: slug}, &model.Genre{Name: name, Slug: slug})
}

func (r *genreRepoGorm) GetBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	genre, err := gorm.G[model.Genre](r.db).Where(&model.Genre{Slug: slug}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepoGorm) List(ctx context.Context, limit int) ([]model.Genre, error) {
	q := gorm.G[model.Genre](r.db).Order("name, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(ctx)
}

func (r *genreRepoGorm) DeleteAll(ctx context.Context) error {
	tx := r.db.WithContext(ctx)
	if err := deleteJoinRows(tx, model.MovieGenresTable, ""); err != nil {
		return err
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Genre{}).Error
}
