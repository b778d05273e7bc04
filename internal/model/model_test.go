package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/testutil"
)

func TestMakeSlug(t *testing.T) {
	tests := map[string]string{
		"Drama":          "drama",
		"John Smith":     "john-smith",
		"Mary-Ann Quinn": "mary-ann-quinn",
		"12+":            "12",
		"  Spaced  Out ": "spaced-out",
	}
	for name, want := range tests {
		assert.Equal(t, want, model.MakeSlug(name), name)
	}
}

func TestSlugDerivedOnCreate(t *testing.T) {
	db := testutil.NewDB(t)

	tag := model.Tag{Name: "Heist"}
	genre := model.Genre{Name: "Film Noir"}
	category := model.Category{Name: "16+"}
	director := model.Director{Name: "Greta Hall"}
	actor := model.Actor{Name: "Tom Baker"}

	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Create(&genre).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&director).Error)
	require.NoError(t, db.Create(&actor).Error)

	assert.Equal(t, "heist", tag.Slug)
	assert.Equal(t, "film-noir", genre.Slug)
	assert.Equal(t, "16", category.Slug)
	assert.Equal(t, "greta-hall", director.Slug)
	assert.Equal(t, "tom-baker", actor.Slug)
}

func TestExplicitSlugIsKept(t *testing.T) {
	db := testutil.NewDB(t)

	tag := model.Tag{Name: "Heist", Slug: "caper"}
	require.NoError(t, db.Create(&tag).Error)
	assert.Equal(t, "caper", tag.Slug)
}

func TestSlugUniqueness(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, db.Create(&model.Genre{Name: "Drama"}).Error)
	assert.Error(t, db.Create(&model.Genre{Name: "drama"}).Error)
}

func TestMovieUpdatedAtChangesOnSave(t *testing.T) {
	db := testutil.NewDB(t)

	movie := model.Movie{Title: "First Cut", IsPublished: true}
	require.NoError(t, db.Create(&movie).Error)
	created := movie.UpdatedAt

	movie.Title = "Final Cut"
	require.NoError(t, db.Save(&movie).Error)
	assert.False(t, movie.UpdatedAt.Before(created))

	var reloaded model.Movie
	require.NoError(t, db.First(&reloaded, movie.ID).Error)
	assert.Equal(t, "Final Cut", reloaded.Title)
}
