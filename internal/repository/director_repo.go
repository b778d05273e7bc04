package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

type DirectorRepo interface {
	WithTx(tx *gorm.DB) DirectorRepo
	GetOrCreate(ctx context.Context, name string) (director *model.Director, created bool, err error)
	// UpsertProfile creates the director's profile or overwrites the
	// existing one.
	UpsertProfile(ctx context.Context, directorID uint, bio string, birthday *time.Time) (*model.DirectorProfile, error)
	GetByID(ctx context.Context, id uint) (*model.Director, error)
	List(ctx context.Context, limit int) ([]model.Director, error)
	// Delete removes the director together with its profile and its movie
	// credits.
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type directorRepoGorm struct {
	db *gorm.DB
}

var _ DirectorRepo = (*directorRepoGorm)(nil)

func NewDirectorRepoGorm(db *gorm.DB) *directorRepoGorm {
	return &directorRepoGorm{
		db: db,
	}
}

func (r *directorRepoGorm) WithTx(tx *gorm.DB) DirectorRepo {
	return &directorRepoGorm{
		db: tx,
	}
}

func (r *directorRepoGorm) GetOrCreate(ctx context.Context, name string) (*model.Director, bool, error) {
	slug := model.MakeSlug(name)
	if slug == "" {
		return nil, false, ErrEmptySlug
	}
	return getOrCreate(ctx, r.db, &model.Director{Slug: slug}, &model.Director{Name: name, Slug: slug})
}

func (r *directorRepoGorm) UpsertProfile(ctx context.Context, directorID uint, bio string, birthday *time.Time) (*model.DirectorProfile, error) {
	profile, err := gorm.G[model.DirectorProfile](r.db).Where(&model.DirectorProfile{DirectorID: directorID}).First(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = model.DirectorProfile{DirectorID: directorID}
	}
	profile.Bio = bio
	profile.Birthday = birthday
	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *directorRepoGorm) GetByID(ctx context.Context, id uint) (*model.Director, error) {
	var director model.Director
	if err := r.db.WithContext(ctx).Preload("Profile").First(&director, id).Error; err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *directorRepoGorm) List(ctx context.Context, limit int) ([]model.Director, error) {
	q := gorm.G[model.Director](r.db).Order("name, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(ctx)
}

func (r *directorRepoGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteJoinRows(tx, model.MovieDirectorsTable, "director_id", id); err != nil {
			return err
		}
		if err := tx.Where("director_id = ?", id).Delete(&model.DirectorProfile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Director{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *directorRepoGorm) DeleteAll(ctx context.Context) error {
	tx := r.db.WithContext(ctx)
	if err := deleteJoinRows(tx, model.MovieDirectorsTable, ""); err != nil {
		return err
	}
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&model.DirectorProfile{}).Error; err != nil {
		return err
	}
	return all.Delete(&model.Director{}).Error
}
