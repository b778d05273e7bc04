package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrEmptySlug is returned for names that produce no usable slug.
var ErrEmptySlug = errors.New("name produces an empty slug")

// getOrCreate looks a row up by cond and inserts fresh when none matches.
func getOrCreate[T any](ctx context.Context, db *gorm.DB, cond *T, fresh *T) (*T, bool, error) {
	found, err := gorm.G[T](db).Where(cond).First(ctx)
	if err == nil {
		return &found, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if err := gorm.G[T](db).Create(ctx, fresh); err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}

// deleteJoinRows clears rows of a many-to-many join table, either all of
// them or only those whose column matches one of ids.
func deleteJoinRows(tx *gorm.DB, table string, column string, ids ...uint) error {
	if column == "" {
		return tx.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error
	}
	return tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s IN ?", table, column), ids).Error
}
