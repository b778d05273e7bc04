package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

// MovieFilter narrows a movie listing to one relation. Zero fields are
// ignored; setting several combines them.
type MovieFilter struct {
	TagSlug    string
	GenreSlug  string
	DirectorID uint
	ActorID    uint
}

type MovieRepo interface {
	WithTx(tx *gorm.DB) MovieRepo
	Create(ctx context.Context, movie *model.Movie) error
	GetPublishedByID(ctx context.Context, id uint) (*model.Movie, error)
	ListPublished(ctx context.Context, filter MovieFilter) ([]model.Movie, error)
	// ListRecent returns the newest published movies with only their tags
	// loaded.
	ListRecent(ctx context.Context, limit int) ([]model.Movie, error)
	AttachTags(ctx context.Context, movie *model.Movie, tags []model.Tag) error
	AttachGenres(ctx context.Context, movie *model.Movie, genres []model.Genre) error
	AttachDirectors(ctx context.Context, movie *model.Movie, directors []model.Director) error
	AttachActors(ctx context.Context, movie *model.Movie, actors []model.Actor) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type movieRepoGorm struct {
	db *gorm.DB
}

var _ MovieRepo = (*movieRepoGorm)(nil)

func NewMovieRepoGorm(db *gorm.DB) *movieRepoGorm {
	return &movieRepoGorm{
		db: db,
	}
}

func (r *movieRepoGorm) WithTx(tx *gorm.DB) MovieRepo {
	return &movieRepoGorm{
		db: tx,
	}
}

const movieOrder = "movies.created_at DESC, movies.title ASC"

var movieJoinTables = []string{
	model.MovieTagsTable,
	model.MovieGenresTable,
	model.MovieDirectorsTable,
	model.MovieActorsTable,
}

func (r *movieRepoGorm) Create(ctx context.Context, movie *model.Movie) error {
	if err := gorm.G[model.Movie](r.db).Create(ctx, movie); err != nil {
		return err
	}
	return nil
}

func (r *movieRepoGorm) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", orderByName).
		Preload("Genres", orderByName).
		Preload("Directors", orderByName).
		Preload("Actors", orderByName)
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name")
}

func (r *movieRepoGorm) GetPublishedByID(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	err := r.withRelations(ctx).
		Where("movies.is_published = ?", true).
		First(&movie, id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepoGorm) ListPublished(ctx context.Context, filter MovieFilter) ([]model.Movie, error) {
	q := r.withRelations(ctx).Where("movies.is_published = ?", true)

	// Filters go through IN subqueries so a movie matching several join
	// rows still comes back once.
	if filter.TagSlug != "" {
		q = q.Where("movies.id IN (?)", r.db.Table(model.MovieTagsTable).
			Select("movie_tags.movie_id").
			Joins("JOIN tags ON tags.id = movie_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug))
	}
	if filter.GenreSlug != "" {
		q = q.Where("movies.id IN (?)", r.db.Table(model.MovieGenresTable).
			Select("movie_genres.movie_id").
			Joins("JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug))
	}
	if filter.DirectorID != 0 {
		q = q.Where("movies.id IN (?)", r.db.Table(model.MovieDirectorsTable).
			Select("movie_id").
			Where("director_id = ?", filter.DirectorID))
	}
	if filter.ActorID != 0 {
		q = q.Where("movies.id IN (?)", r.db.Table(model.MovieActorsTable).
			Select("movie_id").
			Where("actor_id = ?", filter.ActorID))
	}

	var movies []model.Movie
	if err := q.Order(movieOrder).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepoGorm) ListRecent(ctx context.Context, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).
		Preload("Tags", orderByName).
		Where("movies.is_published = ?", true).
		Order(movieOrder).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepoGorm) AttachTags(ctx context.Context, movie *model.Movie, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(movie).Association("Tags").Append(tags)
}

func (r *movieRepoGorm) AttachGenres(ctx context.Context, movie *model.Movie, genres []model.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(movie).Association("Genres").Append(genres)
}

func (r *movieRepoGorm) AttachDirectors(ctx context.Context, movie *model.Movie, directors []model.Director) error {
	if len(directors) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(movie).Association("Directors").Append(directors)
}

func (r *movieRepoGorm) AttachActors(ctx context.Context, movie *model.Movie, actors []model.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(movie).Association("Actors").Append(actors)
}

func (r *movieRepoGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range movieJoinTables {
			if err := deleteJoinRows(tx, table, "movie_id", id); err != nil {
				return err
			}
		}
		res := tx.Delete(&model.Movie{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *movieRepoGorm) DeleteAll(ctx context.Context) error {
	tx := r.db.WithContext(ctx)
	for _, table := range movieJoinTables {
		if err := deleteJoinRows(tx, table, ""); err != nil {
			return err
		}
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Movie{}).Error
}
