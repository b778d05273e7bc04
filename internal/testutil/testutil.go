// Package testutil contains shared testing helpers.
package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/qs-lzh/movie-catalog/internal/database"
)

// NewDB returns a migrated SQLite database living in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies_test.db")
	db, err := database.Open(database.TypeSQLite, path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}
