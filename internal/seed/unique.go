package seed

import (
	"github.com/qs-lzh/movie-catalog/internal/model"
)

const maxUniqueRetries = 1000

// uniqueSource hands out generated values whose slugs have not been seen
// before, so every value maps to its own row.
type uniqueSource struct {
	seen map[string]struct{}
}

func newUniqueSource() *uniqueSource {
	return &uniqueSource{seen: make(map[string]struct{})}
}

func (u *uniqueSource) next(gen func() string) (string, error) {
	for range maxUniqueRetries {
		v := gen()
		key := model.MakeSlug(v)
		if key == "" {
			continue
		}
		if _, ok := u.seen[key]; ok {
			continue
		}
		u.seen[key] = struct{}{}
		return v, nil
	}
	return "", ErrUniqueExhausted
}
