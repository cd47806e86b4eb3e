package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkroompro/devcalc/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/dataset", handler.DatasetStats)
		api.POST("/dataset/reload", handler.ReloadDataset)

		api.GET("/films", handler.ListFilms)
		api.GET("/films/:film", handler.GetFilm)
		api.GET("/films/:film/developers", handler.ListFilmDevelopers)
		api.GET("/developers/:developer", handler.GetDeveloper)

		api.POST("/calculations", handler.Calculate)
		api.GET("/calculations/history", handler.CalculationHistory)

		api.POST("/exports", handler.CreateExport)
		api.GET("/exports/*key", handler.GetExport)

		api.GET("/preferences/:profile", handler.GetPreferences)
		api.PUT("/preferences/:profile", handler.SavePreferences)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
