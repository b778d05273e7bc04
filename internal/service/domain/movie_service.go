package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/repository"
	"github.com/qs-lzh/movie-catalog/internal/service"
)

// MovieService answers the public catalog pages. Every method only ever
// returns published movies.
type MovieService interface {
	ListPublished(ctx context.Context) ([]model.Movie, error)
	GetPublished(ctx context.Context, id uint) (*model.Movie, error)
	ListByTag(ctx context.Context, slug string) (*model.Tag, []model.Movie, error)
	ListByGenre(ctx context.Context, slug string) (*model.Genre, []model.Movie, error)
	ListByDirector(ctx context.Context, id uint) (*model.Director, []model.Movie, error)
	ListByActor(ctx context.Context, id uint) (*model.Actor, []model.Movie, error)
}

type movieService struct {
	movieRepo    repository.MovieRepo
	tagRepo      repository.TagRepo
	genreRepo    repository.GenreRepo
	directorRepo repository.DirectorRepo
	actorRepo    repository.ActorRepo
}

var _ MovieService = (*movieService)(nil)

func NewMovieService(
	movieRepo repository.MovieRepo,
	tagRepo repository.TagRepo,
	genreRepo repository.GenreRepo,
	directorRepo repository.DirectorRepo,
	actorRepo repository.ActorRepo,
) *movieService {
	return &movieService{
		movieRepo:    movieRepo,
		tagRepo:      tagRepo,
		genreRepo:    genreRepo,
		directorRepo: directorRepo,
		actorRepo:    actorRepo,
	}
}

func (s *movieService) ListPublished(ctx context.Context) ([]model.Movie, error) {
	return s.movieRepo.ListPublished(ctx, repository.MovieFilter{})
}

func (s *movieService) GetPublished(ctx context.Context, id uint) (*model.Movie, error) {
	movie, err := s.movieRepo.GetPublishedByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return movie, nil
}

func (s *movieService) ListByTag(ctx context.Context, slug string) (*model.Tag, []model.Movie, error) {
	tag, err := s.tagRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, notFound(err)
	}
	movies, err := s.movieRepo.ListPublished(ctx, repository.MovieFilter{TagSlug: tag.Slug})
	if err != nil {
		return nil, nil, err
	}
	return tag, movies, nil
}

func (s *movieService) ListByGenre(ctx context.Context, slug string) (*model.Genre, []model.Movie, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, notFound(err)
	}
	movies, err := s.movieRepo.ListPublished(ctx, repository.MovieFilter{GenreSlug: genre.Slug})
	if err != nil {
		return nil, nil, err
	}
	return genre, movies, nil
}

func (s *movieService) ListByDirector(ctx context.Context, id uint) (*model.Director, []model.Movie, error) {
	director, err := s.directorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err)
	}
	movies, err := s.movieRepo.ListPublished(ctx, repository.MovieFilter{DirectorID: director.ID})
	if err != nil {
		return nil, nil, err
	}
	return director, movies, nil
}

func (s *movieService) ListByActor(ctx context.Context, id uint) (*model.Actor, []model.Movie, error) {
	actor, err := s.actorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err)
	}
	movies, err := s.movieRepo.ListPublished(ctx, repository.MovieFilter{ActorID: actor.ID})
	if err != nil {
		return nil, nil, err
	}
	return actor, movies, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}
