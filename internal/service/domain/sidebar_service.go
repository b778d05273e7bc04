package domain

import (
	"context"

	"go.uber.org/zap"

	"github.com/qs-lzh/movie-catalog/internal/cache"
	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/repository"
)

const (
	DefaultDirectorsLimit = 10
	DefaultActorsLimit    = 10
	DefaultRecentLimit    = 5
	SmallTagsLimit        = 10
)

// SnippetCache stores rendered-page building blocks. A miss is reported as
// (false, nil).
type SnippetCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// SidebarService feeds the small lists shown around every page. Limits
// that are not positive fall back to the defaults above.
type SidebarService interface {
	Tags(ctx context.Context) ([]model.Tag, error)
	TagsSmall(ctx context.Context) ([]model.Tag, error)
	Genres(ctx context.Context) ([]model.Genre, error)
	Directors(ctx context.Context, limit int) ([]model.Director, error)
	Actors(ctx context.Context, limit int) ([]model.Actor, error)
	RecentMovies(ctx context.Context, limit int) ([]model.Movie, error)
}

type sidebarService struct {
	movieRepo    repository.MovieRepo
	tagRepo      repository.TagRepo
	genreRepo    repository.GenreRepo
	directorRepo repository.DirectorRepo
	actorRepo    repository.ActorRepo

	cache  SnippetCache
	logger *zap.Logger
}

var _ SidebarService = (*sidebarService)(nil)

// NewSidebarService wires the sidebar queries. snippetCache may be nil, in
// which case every call goes to the database.
func NewSidebarService(
	movieRepo repository.MovieRepo,
	tagRepo repository.TagRepo,
	genreRepo repository.GenreRepo,
	directorRepo repository.DirectorRepo,
	actorRepo repository.ActorRepo,
	snippetCache SnippetCache,
	logger *zap.Logger,
) *sidebarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sidebarService{
		movieRepo:    movieRepo,
		tagRepo:      tagRepo,
		genreRepo:    genreRepo,
		directorRepo: directorRepo,
		actorRepo:    actorRepo,
		cache:        snippetCache,
		logger:       logger,
	}
}

func (s *sidebarService) Tags(ctx context.Context) ([]model.Tag, error) {
	return cached(ctx, s, cache.MakeSidebarKey("tags", 0), func() ([]model.Tag, error) {
		return s.tagRepo.List(ctx, 0)
	})
}

func (s *sidebarService) TagsSmall(ctx context.Context) ([]model.Tag, error) {
	return cached(ctx, s, cache.MakeSidebarKey("tags", SmallTagsLimit), func() ([]model.Tag, error) {
		return s.tagRepo.List(ctx, SmallTagsLimit)
	})
}

func (s *sidebarService) Genres(ctx context.Context) ([]model.Genre, error) {
	return cached(ctx, s, cache.MakeSidebarKey("genres", 0), func() ([]model.Genre, error) {
		return s.genreRepo.List(ctx, 0)
	})
}

func (s *sidebarService) Directors(ctx context.Context, limit int) ([]model.Director, error) {
	limit = orDefault(limit, DefaultDirectorsLimit)
	return cached(ctx, s, cache.MakeSidebarKey("directors", limit), func() ([]model.Director, error) {
		return s.directorRepo.List(ctx, limit)
	})
}

func (s *sidebarService) Actors(ctx context.Context, limit int) ([]model.Actor, error) {
	limit = orDefault(limit, DefaultActorsLimit)
	return cached(ctx, s, cache.MakeSidebarKey("actors", limit), func() ([]model.Actor, error) {
		return s.actorRepo.List(ctx, limit)
	})
}

func (s *sidebarService) RecentMovies(ctx context.Context, limit int) ([]model.Movie, error) {
	limit = orDefault(limit, DefaultRecentLimit)
	return cached(ctx, s, cache.MakeSidebarKey("recent", limit), func() ([]model.Movie, error) {
		return s.movieRepo.ListRecent(ctx, limit)
	})
}

// cached serves key from the snippet cache, falling back to load. Cache
// errors are logged and never fail the page.
func cached[T any](ctx context.Context, s *sidebarService, key string, load func() ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var items []T
		hit, err := s.cache.GetJSON(ctx, key, &items)
		if err != nil {
			s.logger.Warn("sidebar cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return items, nil
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, items); err != nil {
			s.logger.Warn("sidebar cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func orDefault(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
