package app

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/config"
	"github.com/qs-lzh/movie-catalog/internal/cache"
	"github.com/qs-lzh/movie-catalog/internal/database"
	"github.com/qs-lzh/movie-catalog/internal/media"
	"github.com/qs-lzh/movie-catalog/internal/mq"
	"github.com/qs-lzh/movie-catalog/internal/repository"
	"github.com/qs-lzh/movie-catalog/internal/seed"
	"github.com/qs-lzh/movie-catalog/internal/service/domain"
	"github.com/qs-lzh/movie-catalog/internal/service/workflow"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.RedisCache
	Logger *zap.Logger
	MQConn *amqp.Connection

	Storage *media.Storage

	MovieRepo    repository.MovieRepo
	TagRepo      repository.TagRepo
	GenreRepo    repository.GenreRepo
	CategoryRepo repository.CategoryRepo
	DirectorRepo repository.DirectorRepo
	ActorRepo    repository.ActorRepo

	MovieService   domain.MovieService
	SidebarService domain.SidebarService

	Seeder *seed.Seeder

	CatalogWorkflow *workflow.CatalogWorkflow
}

// New wires the application. redisCache and mqConn are optional and may be
// nil.
func New(config *config.Config, db *gorm.DB, redisCache *cache.RedisCache, mqConn *amqp.Connection, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	movieRepo := repository.NewMovieRepoGorm(db)
	tagRepo := repository.NewTagRepoGorm(db)
	genreRepo := repository.NewGenreRepoGorm(db)
	categoryRepo := repository.NewCategoryRepoGorm(db)
	directorRepo := repository.NewDirectorRepoGorm(db)
	actorRepo := repository.NewActorRepoGorm(db)

	storage := media.NewStorage(config.MediaRoot, config.MediaURL)

	// a nil *RedisCache must not end up inside the interfaces
	var snippetCache domain.SnippetCache
	var invalidator workflow.SidebarInvalidator
	if redisCache != nil {
		snippetCache = redisCache
		invalidator = redisCache
	}

	movieService := domain.NewMovieService(movieRepo, tagRepo, genreRepo, directorRepo, actorRepo)
	sidebarService := domain.NewSidebarService(movieRepo, tagRepo, genreRepo, directorRepo, actorRepo,
		snippetCache, logger.Named("sidebar"))

	seeder := seed.NewSeeder(db, seed.Repos{
		Movies:     movieRepo,
		Tags:       tagRepo,
		Genres:     genreRepo,
		Categories: categoryRepo,
		Directors:  directorRepo,
		Actors:     actorRepo,
	}, storage, config.SeedImagePath, logger.Named("seed"))

	catalogWorkflow := workflow.NewCatalogWorkflow(invalidator, logger.Named("catalog"))

	return &App{
		Config:          config,
		DB:              db,
		Cache:           redisCache,
		Logger:          logger,
		MQConn:          mqConn,
		Storage:         storage,
		MovieRepo:       movieRepo,
		TagRepo:         tagRepo,
		GenreRepo:       genreRepo,
		CategoryRepo:    categoryRepo,
		DirectorRepo:    directorRepo,
		ActorRepo:       actorRepo,
		MovieService:    movieService,
		SidebarService:  sidebarService,
		Seeder:          seeder,
		CatalogWorkflow: catalogWorkflow,
	}
}

// Init prepares the web server side: queues and the catalog event
// consumer. It is a no-op without a message queue.
func (app *App) Init() error {
	if app.MQConn == nil {
		return nil
	}

	// init rabbit mq
	if err := mq.InitQueues(app.MQConn); err != nil {
		return err
	}

	return app.CatalogWorkflow.Start(app.MQConn)
}

// SeedCatalog runs the seeder and announces the new catalog on the queue,
// when one is configured. A failed announcement is logged, the seed itself
// is already committed.
func (app *App) SeedCatalog(ctx context.Context, opts seed.Options) (*seed.Result, error) {
	result, err := app.Seeder.Seed(ctx, opts)
	if err != nil {
		return nil, err
	}

	if app.MQConn != nil {
		msg := mq.CatalogSeededMessage{
			Tags:      result.Tags,
			Genres:    result.Genres,
			Directors: result.Directors,
			Actors:    result.Actors,
			Movies:    result.Movies,
			Forced:    opts.Force,
			SeededAt:  time.Now().UTC(),
		}
		if err := mq.PublishCatalogSeeded(ctx, app.MQConn, msg); err != nil {
			app.Logger.Warn("failed to publish catalog seeded event", zap.Error(err))
		}
	} else if app.Cache != nil {
		if _, err := app.Cache.InvalidateSidebar(ctx); err != nil {
			app.Logger.Warn("failed to invalidate sidebar cache", zap.Error(err))
		}
	}

	return result, nil
}

func (app *App) Close() error {
	if app.MQConn != nil {
		app.MQConn.Close()
	}
	if app.Cache != nil {
		app.Cache.Close()
	}
	return database.Close(app.DB)
}
