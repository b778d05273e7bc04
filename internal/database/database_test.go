package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/qs-lzh/movie-catalog/internal/model"
)

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open("oracle", "whatever", zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"movies.db", "movies.db?_foreign_keys=on"},
		{"file:movies.db?cache=shared", "file:movies.db?cache=shared&_foreign_keys=on"},
		{"movies.db?_foreign_keys=off", "movies.db?_foreign_keys=off"},
		{"movies.db?_fk=1", "movies.db?_fk=1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.in))
		})
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	db, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "m.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	// running twice is a no-op
	require.NoError(t, Migrate(db))

	for _, m := range model.AllModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	for _, table := range []string{model.MovieTagsTable, model.MovieGenresTable, model.MovieDirectorsTable, model.MovieActorsTable} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestForeignKeyRules(t *testing.T) {
	db, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "fk.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	category := model.Category{Name: "12+"}
	require.NoError(t, db.Create(&category).Error)
	movie := model.Movie{Title: "Night Train", CategoryID: &category.ID, IsPublished: true}
	require.NoError(t, db.Create(&movie).Error)

	require.NoError(t, db.Delete(&category).Error)

	var reloaded model.Movie
	require.NoError(t, db.First(&reloaded, movie.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	director := model.Director{Name: "Ann Lee", Profile: &model.DirectorProfile{Bio: "bio"}}
	require.NoError(t, db.Create(&director).Error)
	require.NoError(t, db.Delete(&director).Error)

	var profiles int64
	require.NoError(t, db.Model(&model.DirectorProfile{}).Count(&profiles).Error)
	assert.Zero(t, profiles)
}
