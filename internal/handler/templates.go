package handler

import (
	"context"
	"html/template"
	"strconv"
	"time"

	"github.com/qs-lzh/movie-catalog/internal/media"
	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/service/domain"
	"github.com/qs-lzh/movie-catalog/web"
)

const helperTimeout = 3 * time.Second

// TemplateFuncs exposes the sidebar snippets and a few formatting helpers
// to the page templates. A failing snippet aborts rendering of the page.
func TemplateFuncs(sidebar domain.SidebarService, storage *media.Storage) template.FuncMap {
	return template.FuncMap{
		"showTags": func() ([]model.Tag, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.Tags(ctx)
		},
		"showTagsSmall": func() ([]model.Tag, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.TagsSmall(ctx)
		},
		"showGenres": func() ([]model.Genre, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.Genres(ctx)
		},
		"showDirectors": func(limit int) ([]model.Director, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.Directors(ctx, limit)
		},
		"showActors": func(limit int) ([]model.Actor, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.Actors(ctx, limit)
		},
		"showRecentMovies": func(limit int) ([]model.Movie, error) {
			ctx, cancel := helperContext()
			defer cancel()
			return sidebar.RecentMovies(ctx, limit)
		},
		"posterURL": storage.URL,
		"year":      formatYear,
	}
}

// ParseTemplates builds the page set from the embedded templates.
func ParseTemplates(sidebar domain.SidebarService, storage *media.Storage) (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs(sidebar, storage)).ParseFS(web.Templates, web.TemplatesGlob)
}

func helperContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), helperTimeout)
}

func formatYear(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}
