package server

import (
	"github.com/gin-gonic/gin"

	"github.com/qs-lzh/movie-catalog/internal/app"
	"github.com/qs-lzh/movie-catalog/internal/handler"
)

func NewRouter(app *app.App) (*gin.Engine, error) {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(app.Logger.Named("http")), Recovery(app.Logger))

	tmpl, err := handler.ParseTemplates(app.SidebarService, app.Storage)
	if err != nil {
		return nil, err
	}
	// uploaded posters
	r.Static(app.Config.MediaURL, app.Config.MediaRoot)

	catalogHandler := handler.NewCatalogHandler(app, tmpl)

	r.GET("/", catalogHandler.HandleIndex)
	r.GET("/movie/:id/", catalogHandler.HandleMovieDetail)
	r.GET("/tag/:slug/", catalogHandler.HandleTag)
	r.GET("/genre/:slug/", catalogHandler.HandleGenre)
	r.GET("/director/:id/", catalogHandler.HandleDirector)
	r.GET("/actor/:id/", catalogHandler.HandleActor)

	r.NoRoute(catalogHandler.HandleNotFound)

	return r, nil
}
