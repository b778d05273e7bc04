package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/movie-catalog/internal/app"
	"github.com/qs-lzh/movie-catalog/internal/model"
	"github.com/qs-lzh/movie-catalog/internal/service"
)

const (
	listTemplate     = "movie_list.html"
	detailTemplate   = "movie_detail.html"
	notFoundTemplate = "404.html"
	errorTemplate    = "500.html"

	htmlContentType = "text/html; charset=utf-8"
)

type CatalogHandler struct {
	app  *app.App
	tmpl *template.Template
}

func NewCatalogHandler(app *app.App, tmpl *template.Template) *CatalogHandler {
	return &CatalogHandler{
		app:  app,
		tmpl: tmpl,
	}
}

func (h *CatalogHandler) HandleIndex(ctx *gin.Context) {
	movies, err := h.app.MovieService.ListPublished(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	h.renderList(ctx, "All movies", "", movies)
}

func (h *CatalogHandler) HandleMovieDetail(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		h.HandleNotFound(ctx)
		return
	}

	movie, err := h.app.MovieService.GetPublished(ctx.Request.Context(), id)
	if err != nil {
		h.renderError(ctx, err)
		return
	}

	h.render(ctx, http.StatusOK, detailTemplate, gin.H{
		"Title": movie.Title,
		"Movie": movie,
	})
}

func (h *CatalogHandler) HandleTag(ctx *gin.Context) {
	tag, movies, err := h.app.MovieService.ListByTag(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	h.renderList(ctx, "Tag: "+tag.Name, "", movies)
}

func (h *CatalogHandler) HandleGenre(ctx *gin.Context) {
	genre, movies, err := h.app.MovieService.ListByGenre(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	h.renderList(ctx, "Genre: "+genre.Name, "", movies)
}

func (h *CatalogHandler) HandleDirector(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		h.HandleNotFound(ctx)
		return
	}

	director, movies, err := h.app.MovieService.ListByDirector(ctx.Request.Context(), id)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	h.renderList(ctx, "Director: "+director.Name, directorBio(director), movies)
}

func (h *CatalogHandler) HandleActor(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		h.HandleNotFound(ctx)
		return
	}

	actor, movies, err := h.app.MovieService.ListByActor(ctx.Request.Context(), id)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	h.renderList(ctx, "Actor: "+actor.Name, actorBio(actor), movies)
}

func (h *CatalogHandler) HandleNotFound(ctx *gin.Context) {
	h.render(ctx, http.StatusNotFound, notFoundTemplate, gin.H{
		"Title": "Not found",
	})
}

func (h *CatalogHandler) renderList(ctx *gin.Context, title, lead string, movies []model.Movie) {
	h.render(ctx, http.StatusOK, listTemplate, gin.H{
		"Title":  title,
		"Lead":   lead,
		"Movies": movies,
	})
}

func (h *CatalogHandler) renderError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.HandleNotFound(ctx)
		return
	}

	h.app.Logger.Error("failed to serve page",
		zap.String("path", ctx.Request.URL.Path),
		zap.Error(err),
	)
	h.writeServerError(ctx)
}

// render executes the page into a buffer first, so a failing sidebar
// helper still ends in the error page instead of a cut-off 200.
func (h *CatalogHandler) render(ctx *gin.Context, status int, name string, data gin.H) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		_ = ctx.Error(err)
		h.renderError(ctx, err)
		return
	}
	ctx.Data(status, htmlContentType, buf.Bytes())
}

// writeServerError renders 500.html, which calls no sidebar helpers.
func (h *CatalogHandler) writeServerError(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, errorTemplate, gin.H{"Title": "Server error"}); err != nil {
		ctx.String(http.StatusInternalServerError, "Server error")
		return
	}
	ctx.Data(http.StatusInternalServerError, htmlContentType, buf.Bytes())
}

// parseID reads the :id path parameter. Anything but a positive integer
// is treated as a missing page.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func directorBio(d *model.Director) string {
	if d.Profile == nil {
		return ""
	}
	return d.Profile.Bio
}

func actorBio(a *model.Actor) string {
	if a.Profile == nil {
		return ""
	}
	return a.Profile.Bio
}
