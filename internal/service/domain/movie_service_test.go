package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/repository"
	"github.com/qs-lzh/movie-catalog/internal/service"
	"github.com/qs-lzh/movie-catalog/internal/service/domain"
	"github.com/qs-lzh/movie-catalog/internal/testutil"
)

type catalog struct {
	movies    repository.MovieRepo
	tags      repository.TagRepo
	genres    repository.GenreRepo
	directors repository.DirectorRepo
	actors    repository.ActorRepo

	tag      *model.Tag
	genre    *model.Genre
	director *model.Director
	actor    *model.Actor

	published   *model.Movie
	older       *model.Movie
	unpublished *model.Movie
}

// newCatalog stores two published movies and a draft, all sharing the
// same tag, genre, director and actor.
func newCatalog(t *testing.T) *catalog {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)

	c := &catalog{
		movies:    repository.NewMovieRepoGorm(db),
		tags:      repository.NewTagRepoGorm(db),
		genres:    repository.NewGenreRepoGorm(db),
		directors: repository.NewDirectorRepoGorm(db),
		actors:    repository.NewActorRepoGorm(db),
	}

	var err error
	c.tag, _, err = c.tags.GetOrCreate(ctx, "Cult")
	require.NoError(t, err)
	c.genre, _, err = c.genres.GetOrCreate(ctx, "Western")
	require.NoError(t, err)
	c.director, _, err = c.directors.GetOrCreate(ctx, "Rosa Kell")
	require.NoError(t, err)
	c.actor, _, err = c.actors.GetOrCreate(ctx, "Tom Ardent")
	require.NoError(t, err)

	now := time.Now()
	c.published = c.add(t, "Dust Road", true, now)
	c.older = c.add(t, "Iron Mesa", true, now.Add(-time.Hour))
	c.unpublished = c.add(t, "Unreleased Cut", false, now)
	return c
}

func (c *catalog) add(t *testing.T, title string, published bool, createdAt time.Time) *model.Movie {
	t.Helper()
	ctx := context.Background()
	m := &model.Movie{Title: title, IsPublished: published, CreatedAt: createdAt}
	require.NoError(t, c.movies.Create(ctx, m))
	require.NoError(t, c.movies.AttachTags(ctx, m, []model.Tag{*c.tag}))
	require.NoError(t, c.movies.AttachGenres(ctx, m, []model.Genre{*c.genre}))
	require.NoError(t, c.movies.AttachDirectors(ctx, m, []model.Director{*c.director}))
	require.NoError(t, c.movies.AttachActors(ctx, m, []model.Actor{*c.actor}))
	return m
}

func (c *catalog) service() domain.MovieService {
	return domain.NewMovieService(c.movies, c.tags, c.genres, c.directors, c.actors)
}

func movieTitles(movies []model.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	c := newCatalog(t)

	movies, err := c.service().ListPublished(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dust Road", "Iron Mesa"}, movieTitles(movies))

	first := movies[0]
	assert.Len(t, first.Tags, 1)
	assert.Len(t, first.Genres, 1)
	assert.Len(t, first.Directors, 1)
	assert.Len(t, first.Actors, 1)
}

func TestGetPublished(t *testing.T) {
	c := newCatalog(t)
	svc := c.service()
	ctx := context.Background()

	movie, err := svc.GetPublished(ctx, c.published.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dust Road", movie.Title)
	require.Len(t, movie.Actors, 1)
	assert.Equal(t, "Tom Ardent", movie.Actors[0].Name)

	_, err = svc.GetPublished(ctx, c.unpublished.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.GetPublished(ctx, 424242)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListByLookup(t *testing.T) {
	c := newCatalog(t)
	svc := c.service()
	ctx := context.Background()
	want := []string{"Dust Road", "Iron Mesa"}

	tag, movies, err := svc.ListByTag(ctx, "cult")
	require.NoError(t, err)
	assert.Equal(t, "Cult", tag.Name)
	assert.Equal(t, want, movieTitles(movies))

	genre, movies, err := svc.ListByGenre(ctx, "western")
	require.NoError(t, err)
	assert.Equal(t, "Western", genre.Name)
	assert.Equal(t, want, movieTitles(movies))

	director, movies, err := svc.ListByDirector(ctx, c.director.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rosa Kell", director.Name)
	assert.Equal(t, want, movieTitles(movies))

	actor, movies, err := svc.ListByActor(ctx, c.actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom Ardent", actor.Name)
	assert.Equal(t, want, movieTitles(movies))
}

func TestListByLookupNotFound(t *testing.T) {
	c := newCatalog(t)
	svc := c.service()
	ctx := context.Background()

	_, _, err := svc.ListByTag(ctx, "no-such-tag")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, _, err = svc.ListByGenre(ctx, "no-such-genre")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, _, err = svc.ListByDirector(ctx, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, _, err = svc.ListByActor(ctx, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListByTagReturnsEachMovieOnce(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	// a second tag with the same movies must not multiply results
	extra, _, err := c.tags.GetOrCreate(ctx, "Cult Classic")
	require.NoError(t, err)
	require.NoError(t, c.movies.AttachTags(ctx, c.published, []model.Tag{*extra}))

	_, movies, err := c.service().ListByTag(ctx, "cult")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dust Road", "Iron Mesa"}, movieTitles(movies))
}

func TestListByTagWithoutMovies(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	_, _, err := c.tags.GetOrCreate(ctx, "Lonely")
	require.NoError(t, err)

	tag, movies, err := c.service().ListByTag(ctx, "lonely")
	require.NoError(t, err)
	assert.Equal(t, "Lonely", tag.Name)
	assert.Empty(t, movies)
}
