package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/qs-lzh/movie-catalog/internal/seed"
)

func (r *runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		migrateCommand(r),
		seedCommand(r),
	}
}

func serveCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the catalog web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides ADDR",
			},
		},
		Action: r.Serve,
	}
}

func migrateCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create or update the database schema",
		Action: r.Migrate,
	}
}

func seedCommand(r *runner) *cli.Command {
	defaults := seed.DefaultOptions()
	return &cli.Command{
		Name:  "seed",
		Usage: "Fill the catalog with random demo data",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Delete movies, people, tags and genres before seeding",
			},
			&cli.IntFlag{
				Name:  "tags",
				Usage: "Number of tags to generate",
				Value: defaults.Tags,
			},
			&cli.IntFlag{
				Name:  "genres",
				Usage: "Number of genres to generate",
				Value: defaults.Genres,
			},
			&cli.IntFlag{
				Name:  "directors",
				Usage: "Number of directors to generate",
				Value: defaults.Directors,
			},
			&cli.IntFlag{
				Name:  "actors",
				Usage: "Number of actors to generate",
				Value: defaults.Actors,
			},
			&cli.IntFlag{
				Name:  "movies",
				Usage: "Number of movies to generate",
				Value: defaults.Movies,
			},
			&cli.Uint64Flag{
				Name:  "rand-seed",
				Usage: "Seed for the random generators, 0 picks one",
			},
		},
		Action: r.Seed,
	}
}

func (r *runner) Serve(ctx context.Context, cmd *cli.Command) error {
	a, err := r.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Init(); err != nil {
		return fmt.Errorf("failed to start catalog consumer: %w", err)
	}

	addr := a.Config.Addr
	if v := cmd.String("addr"); v != "" {
		addr = v
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return r.serve(ctx, a, addr)
}

func (r *runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	a, err := r.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(r.output, "Schema is up to date.")
	return nil
}

func (r *runner) Seed(ctx context.Context, cmd *cli.Command) error {
	opts := seedOptions(cmd)
	if err := opts.Validate(); err != nil {
		return err
	}

	a, err := r.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.SeedCatalog(ctx, opts)
	if err != nil {
		a.Logger.Error("seed failed", zap.Error(err))
		return err
	}

	printResult(r.output, result)
	return nil
}

func seedOptions(cmd *cli.Command) seed.Options {
	return seed.Options{
		Force:     cmd.Bool("force"),
		Tags:      cmd.Int("tags"),
		Genres:    cmd.Int("genres"),
		Directors: cmd.Int("directors"),
		Actors:    cmd.Int("actors"),
		Movies:    cmd.Int("movies"),
		RandSeed:  cmd.Uint64("rand-seed"),
	}
}

func printResult(w io.Writer, res *seed.Result) {
	fmt.Fprintf(w, "Seeded catalog (rand seed %d)\n", res.RandSeed)
	fmt.Fprintf(w, "  tags:       %d\n", res.Tags)
	fmt.Fprintf(w, "  genres:     %d\n", res.Genres)
	fmt.Fprintf(w, "  directors:  %d\n", res.Directors)
	fmt.Fprintf(w, "  actors:     %d\n", res.Actors)
	fmt.Fprintf(w, "  categories: %d\n", res.Categories)
	fmt.Fprintf(w, "  movies:     %d (%d published, %d with poster)\n", res.Movies, res.Published, res.Posters)
}
