package seed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCount = errors.New("seed counts must not be negative")
	// ErrUniqueExhausted means the fake data source kept producing values
	// that were already used.
	ErrUniqueExhausted = errors.New("could not generate a unique value")
)

// Options controls one seeding run.
type Options struct {
	// Force deletes movies, people (with profiles), tags and genres before
	// generating. Categories are never deleted.
	Force     bool
	Tags      int `validate:"gte=0"`
	Genres    int `validate:"gte=0"`
	Directors int `validate:"gte=0"`
	Actors    int `validate:"gte=0"`
	Movies    int `validate:"gte=0"`
	// RandSeed makes a run reproducible; zero picks a random seed.
	RandSeed uint64
}

func DefaultOptions() Options {
	return Options{
		Tags:      10,
		Genres:    8,
		Directors: 10,
		Actors:    30,
		Movies:    40,
	}
}

var validate = validator.New()

func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s=%v", ErrInvalidCount, strings.ToLower(fe.Field()), fe.Value())
	}
	return err
}

// CategoryNames is the fixed set of age ratings every seed run ensures.
var CategoryNames = []string{"0+", "4+", "6+", "12+", "16+", "18+"}

// Result summarises a finished run.
type Result struct {
	Tags       int
	Genres     int
	Directors  int
	Actors     int
	Categories int
	Movies     int
	Published  int
	// Posters is the number of movies that got the placeholder poster.
	Posters  int
	RandSeed uint64
}
