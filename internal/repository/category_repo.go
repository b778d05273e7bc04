package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

type CategoryRepo interface {
	WithTx(tx *gorm.DB) CategoryRepo
	GetOrCreate(ctx context.Context, name string) (category *model.Category, created bool, err error)
	List(ctx context.Context) ([]model.Category, error)
	// Delete removes the category; movies referencing it lose their
	// category instead of being deleted.
	Delete(ctx context.Context, id uint) error
}

type categoryRepoGorm struct {
	db *gorm.DB
}

var _ CategoryRepo = (*categoryRepoGorm)(nil)

func NewCategoryRepoGorm(db *gorm.DB) *categoryRepoGorm {
	return &categoryRepoGorm{
		db: db,
	}
}

func (r *categoryRepoGorm) WithTx(tx *gorm.DB) CategoryRepo {
	return &categoryRepoGorm{
		db: tx,
	}
}

func (r *categoryRepoGorm) GetOrCreate(ctx context.Context, name string) (*model.Category, bool, error) {
	slug := model.MakeSlug(name)
	if slug == "" {
		return nil, false, ErrEmptySlug
	}
	return getOrCreate(ctx, r.db, &model.Category{Slug: slug}, &model.Category{Name: name, Slug: slug})
}

func (r *categoryRepoGorm) List(ctx context.Context) ([]model.Category, error) {
	return gorm.G[model.Category](r.db).Order("name, id").Find(ctx)
}

func (r *categoryRepoGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Movie{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
