package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

type ActorRepo interface {
	WithTx(tx *gorm.DB) ActorRepo
	GetOrCreate(ctx context.Context, name string) (actor *model.Actor, created bool, err error)
	// UpsertProfile creates the actor's profile or overwrites the
	// existing one.
	UpsertProfile(ctx context.Context, actorID uint, bio string, birthday *time.Time) (*model.ActorProfile, error)
	GetByID(ctx context.Context, id uint) (*model.Actor, error)
	List(ctx context.Context, limit int) ([]model.Actor, error)
	// Delete removes the actor together with its profile and its movie
	// credits.
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type actorRepoGorm struct {
	db *gorm.DB
}

var _ ActorRepo = (*actorRepoGorm)(nil)

func NewActorRepoGorm(db *gorm.DB) *actorRepoGorm {
	return &actorRepoGorm{
		db: db,
	}
}

func (r *actorRepoGorm) WithTx(tx *gorm.DB) ActorRepo {
	return &actorRepoGorm{
		db: tx,
	}
}

func (r *actorRepoGorm) GetOrCreate(ctx context.Context, name string) (*model.Actor, bool, error) {
	slug := model.MakeSlug(name)
	if slug == "" {
		return nil, false, ErrEmptySlug
	}
	return getOrCreate(ctx, r.db, &model.Actor{Slug: slug}, &model.Actor{Name: name, Slug: slug})
}

func (r *actorRepoGorm) UpsertProfile(ctx context.Context, actorID uint, bio string, birthday *time.Time) (*model.ActorProfile, error) {
	profile, err := gorm.G[model.ActorProfile](r.db).Where(&model.ActorProfile{ActorID: actorID}).First(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = model.ActorProfile{ActorID: actorID}
	}
	profile.Bio = bio
	profile.Birthday = birthday
	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *actorRepoGorm) GetByID(ctx context.Context, id uint) (*model.Actor, error) {
	var actor model.Actor
	if err := r.db.WithContext(ctx).Preload("Profile").First(&actor, id).Error; err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepoGorm) List(ctx context.Context, limit int) ([]model.Actor, error) {
	q := gorm.G[model.Actor](r.db).Order("name, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(ctx)
}

func (r *actorRepoGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteJoinRows(tx, model.MovieActorsTable, "actor_id", id); err != nil {
			return err
		}
		if err := tx.Where("actor_id = ?", id).Delete(&model.ActorProfile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Actor{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *actorRepoGorm) DeleteAll(ctx context.Context) error {
	tx := r.db.WithContext(ctx)
	if err := deleteJoinRows(tx, model.MovieActorsTable, ""); err != nil {
		return err
	}
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&model.ActorProfile{}).Error; err != nil {
		return err
	}
	return all.Delete(&model.Actor{}).Error
}
