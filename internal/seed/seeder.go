// Package seed fills the catalog with random demo data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/media"
	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/repository"
)

const (
	minMovieYear = 1950

	directorMinAge, directorMaxAge = 25, 90
	actorMinAge, actorMaxAge       = 18, 80

	directorBioSentences = 5
	actorBioSentences    = 4
	descriptionSentences = 6
	wordsPerSentence     = 10
	titleWords           = 3

	// titleAttemptsFactor bounds title generation to factor*movies draws.
	titleAttemptsFactor = 10
)

// relation count bounds per movie, inclusive
const (
	minTags, maxTags           = 0, 4
	minGenres, maxGenres       = 1, 2
	minDirectors, maxDirectors = 1, 2
	minActors, maxActors       = 2, 6
)

type Repos struct {
	Movies     repository.MovieRepo
	Tags       repository.TagRepo
	Genres     repository.GenreRepo
	Categories repository.CategoryRepo
	Directors  repository.DirectorRepo
	Actors     repository.ActorRepo
}

func (r Repos) withTx(tx *gorm.DB) Repos {
	return Repos{
		Movies:     r.Movies.WithTx(tx),
		Tags:       r.Tags.WithTx(tx),
		Genres:     r.Genres.WithTx(tx),
		Categories: r.Categories.WithTx(tx),
		Directors:  r.Directors.WithTx(tx),
		Actors:     r.Actors.WithTx(tx),
	}
}

type Seeder struct {
	db        *gorm.DB
	repos     Repos
	storage   *media.Storage
	imagePath string
	logger    *zap.Logger

	// now is the clock used for years and birthdays.
	now func() time.Time
}

func NewSeeder(db *gorm.DB, repos Repos, storage *media.Storage, imagePath string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		db:        db,
		repos:     repos,
		storage:   storage,
		imagePath: imagePath,
		logger:    logger,
		now:       time.Now,
	}
}

// run holds the state of one Seed call. Names come from unique sources
// keyed by slug, so every get-or-create in a run hits a different row and
// the sampled pools never hold duplicates.
type run struct {
	opts   Options
	repos  Repos
	faker  *gofakeit.Faker
	rnd    *rand.Rand
	now    time.Time
	logger *zap.Logger

	words *uniqueSource
	names *uniqueSource

	tags       []model.Tag
	genres     []model.Genre
	directors  []model.Director
	actors     []model.Actor
	categories []model.Category

	posterPath string
	storage    *media.Storage
	written    []string

	result Result
}

// Seed generates the catalog described by opts inside a single
// transaction. On any error nothing is kept, including poster files.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	randSeed := opts.RandSeed
	for randSeed == 0 {
		randSeed = rand.Uint64()
	}

	r := &run{
		opts:    opts,
		faker:   gofakeit.New(randSeed),
		rnd:     rand.New(rand.NewPCG(randSeed, randSeed>>1)),
		now:     s.now().UTC(),
		logger:  s.logger,
		words:   newUniqueSource(),
		names:   newUniqueSource(),
		storage: s.storage,
		result:  Result{RandSeed: randSeed},
	}
	r.posterPath = s.posterSource()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r.repos = s.repos.withTx(tx)
		return r.execute(ctx)
	})
	if err != nil {
		r.discardPosters()
		return nil, err
	}

	s.logger.Info("seeding finished",
		zap.Int("tags", r.result.Tags),
		zap.Int("genres", r.result.Genres),
		zap.Int("directors", r.result.Directors),
		zap.Int("actors", r.result.Actors),
		zap.Int("categories", r.result.Categories),
		zap.Int("movies", r.result.Movies),
		zap.Int("published", r.result.Published),
		zap.Uint64("rand_seed", randSeed),
	)
	return &r.result, nil
}

// posterSource returns the placeholder image path, or "" when posters have
// to be skipped.
func (s *Seeder) posterSource() string {
	if s.storage == nil || s.imagePath == "" {
		return ""
	}
	info, err := os.Stat(s.imagePath)
	if err != nil || info.IsDir() {
		s.logger.Warn("placeholder image not found, movies get no poster", zap.String("path", s.imagePath))
		return ""
	}
	return s.imagePath
}

func (r *run) execute(ctx context.Context) error {
	if r.opts.Force {
		if err := r.clear(ctx); err != nil {
			return err
		}
	}
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"tags", r.seedTags},
		{"genres", r.seedGenres},
		{"directors", r.seedDirectors},
		{"actors", r.seedActors},
		{"categories", r.seedCategories},
		{"movies", r.seedMovies},
	}
	for _, step := range steps {
		r.logger.Info("creating " + step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func (r *run) clear(ctx context.Context) error {
	r.logger.Warn("deleting existing movies, directors, actors, tags and genres")
	if err := r.repos.Movies.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete movies: %w", err)
	}
	if err := r.repos.Directors.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete directors: %w", err)
	}
	if err := r.repos.Actors.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete actors: %w", err)
	}
	if err := r.repos.Tags.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	if err := r.repos.Genres.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete genres: %w", err)
	}
	return nil
}

// uniqueWords draws n distinct capitalized words from the shared word pool.
func (r *run) uniqueWords(n int) ([]string, error) {
	words := make([]string, 0, n)
	for len(words) < n {
		w, err := r.words.next(r.faker.Word)
		if err != nil {
			return nil, err
		}
		words = append(words, capitalize(w))
	}
	return words, nil
}

func (r *run) seedTags(ctx context.Context) error {
	names, err := r.uniqueWords(r.opts.Tags)
	if err != nil {
		return err
	}
	for _, name := range names {
		tag, _, err := r.repos.Tags.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		r.tags = append(r.tags, *tag)
	}
	r.result.Tags = len(r.tags)
	r.logger.Info("tags ready", zap.Int("count", len(r.tags)))
	return nil
}

func (r *run) seedGenres(ctx context.Context) error {
	names, err := r.uniqueWords(r.opts.Genres)
	if err != nil {
		return err
	}
	for _, name := range names {
		genre, _, err := r.repos.Genres.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		r.genres = append(r.genres, *genre)
	}
	r.result.Genres = len(r.genres)
	r.logger.Info("genres ready", zap.Int("count", len(r.genres)))
	return nil
}

func (r *run) bio(sentences int) string {
	return r.faker.Paragraph(1, sentences, wordsPerSentence, " ")
}

func (r *run) birthday(minAge, maxAge int) *time.Time {
	earliest, latest := birthdayRange(r.now, minAge, maxAge)
	d := truncateToDate(r.faker.DateRange(earliest, latest))
	return &d
}

func (r *run) seedDirectors(ctx context.Context) error {
	for range r.opts.Directors {
		name, err := r.names.next(r.faker.Name)
		if err != nil {
			return err
		}
		director, _, err := r.repos.Directors.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if _, err := r.repos.Directors.UpsertProfile(ctx, director.ID,
			r.bio(directorBioSentences), r.birthday(directorMinAge, directorMaxAge)); err != nil {
			return err
		}
		r.directors = append(r.directors, *director)
	}
	r.result.Directors = len(r.directors)
	r.logger.Info("directors ready", zap.Int("count", len(r.directors)))
	return nil
}

func (r *run) seedActors(ctx context.Context) error {
	for range r.opts.Actors {
		name, err := r.names.next(r.faker.Name)
		if err != nil {
			return err
		}
		actor, _, err := r.repos.Actors.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if _, err := r.repos.Actors.UpsertProfile(ctx, actor.ID,
			r.bio(actorBioSentences), r.birthday(actorMinAge, actorMaxAge)); err != nil {
			return err
		}
		r.actors = append(r.actors, *actor)
	}
	r.result.Actors = len(r.actors)
	r.logger.Info("actors ready", zap.Int("count", len(r.actors)))
	return nil
}

func (r *run) seedCategories(ctx context.Context) error {
	for _, name := range CategoryNames {
		category, _, err := r.repos.Categories.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		r.categories = append(r.categories, *category)
	}
	r.result.Categories = len(r.categories)
	r.logger.Info("categories ready", zap.Int("count", len(r.categories)))
	return nil
}

// titles draws up to n distinct titles within the attempt budget; fewer
// than n come back when the budget runs out.
func (r *run) titles(n int) []string {
	titles := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for attempts := 0; len(titles) < n && attempts < n*titleAttemptsFactor; attempts++ {
		t := titleFromSentence(r.faker.Sentence(titleWords))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		titles = append(titles, t)
	}
	return titles
}

func (r *run) published() bool {
	v, err := r.faker.Weighted([]any{true, false}, []float32{9, 1})
	if err != nil {
		return true
	}
	return v.(bool)
}

func (r *run) seedMovies(ctx context.Context) error {
	titles := r.titles(r.opts.Movies)
	if len(titles) < r.opts.Movies {
		r.logger.Warn("could not generate enough distinct titles",
			zap.Int("requested", r.opts.Movies), zap.Int("generated", len(titles)))
	}

	for _, title := range titles {
		year := r.faker.IntRange(minMovieYear, r.now.Year())
		movie := &model.Movie{
			Title:       title,
			Description: r.faker.Paragraph(1, descriptionSentences, wordsPerSentence, " "),
			Year:        &year,
			IsPublished: r.published(),
		}
		if len(r.categories) > 0 {
			category := r.categories[r.rnd.IntN(len(r.categories))]
			movie.CategoryID = &category.ID
		}

		if r.posterPath != "" {
			rel, err := r.storage.SavePosterFile(r.posterPath)
			if err != nil {
				return fmt.Errorf("copy poster: %w", err)
			}
			r.written = append(r.written, rel)
			movie.Poster = rel
			r.result.Posters++
		}

		if err := r.repos.Movies.Create(ctx, movie); err != nil {
			return err
		}
		if err := r.attachRelations(ctx, movie); err != nil {
			return err
		}

		r.result.Movies++
		if movie.IsPublished {
			r.result.Published++
		}
	}
	r.logger.Info("movies ready", zap.Int("count", r.result.Movies), zap.Int("published", r.result.Published))
	return nil
}

func (r *run) attachRelations(ctx context.Context, movie *model.Movie) error {
	tags := sample(r.rnd, r.tags, pickCount(r.rnd, minTags, maxTags, len(r.tags)))
	if err := r.repos.Movies.AttachTags(ctx, movie, tags); err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	genres := sample(r.rnd, r.genres, pickCount(r.rnd, minGenres, maxGenres, len(r.genres)))
	if err := r.repos.Movies.AttachGenres(ctx, movie, genres); err != nil {
		return fmt.Errorf("attach genres: %w", err)
	}
	directors := sample(r.rnd, r.directors, pickCount(r.rnd, minDirectors, maxDirectors, len(r.directors)))
	if err := r.repos.Movies.AttachDirectors(ctx, movie, directors); err != nil {
		return fmt.Errorf("attach directors: %w", err)
	}
	actors := sample(r.rnd, r.actors, pickCount(r.rnd, minActors, maxActors, len(r.actors)))
	if err := r.repos.Movies.AttachActors(ctx, movie, actors); err != nil {
		return fmt.Errorf("attach actors: %w", err)
	}
	return nil
}

// discardPosters removes poster files written by a run that rolled back.
func (r *run) discardPosters() {
	var errs []error
	for _, rel := range r.written {
		if err := r.storage.Remove(rel); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		r.logger.Warn("failed to remove posters of a rolled back seed", zap.Error(err))
	}
}
