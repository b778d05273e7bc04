package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	r := newRunner(os.Stdout)

	app := &cli.Command{
		Name:     "movies",
		Usage:    "Movie catalog web server and tools",
		Commands: r.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "movies: %v\n", err)
		os.Exit(1)
	}
}
