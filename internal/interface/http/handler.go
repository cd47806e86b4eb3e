package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	"github.com/darkroompro/devcalc/internal/domain/export"
	"github.com/darkroompro/devcalc/internal/domain/history"
	"github.com/darkroompro/devcalc/internal/domain/preferences"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
)

// DatasetSource re-reads the reference dataset for a reload.
type DatasetSource interface {
	Load(ctx context.Context) (*darkroom.Dataset, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	calculator  darkroom.Service
	source      DatasetSource
	history     history.Service
	exports     export.Service
	preferences preferences.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	calculator darkroom.Service,
	source DatasetSource,
	historySvc history.Service,
	exportSvc export.Service,
	prefsSvc preferences.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		calculator:  calculator,
		source:      source,
		history:     historySvc,
		exports:     exportSvc,
		preferences: prefsSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness and whether a dataset is installed.
func (h *Handler) Health(c *gin.Context) {
	_, err := h.calculator.Stats()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dataset_loaded": err == nil})
}

// DatasetStats returns counts and version of the installed dataset.
func (h *Handler) DatasetStats(c *gin.Context) {
	stats, err := h.calculator.Stats()
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReloadDataset re-reads the configured source and installs it. A failed
// load keeps the current dataset.
func (h *Handler) ReloadDataset(c *gin.Context) {
	ds, err := h.source.Load(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "dataset_load_failed", errMessage(err), err))
		return
	}
	h.calculator.Install(ds)
	c.JSON(http.StatusOK, ds.Stats())
}

// ListFilms returns every film in key order.
func (h *Handler) ListFilms(c *gin.Context) {
	films, err := h.calculator.Films()
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"films": films})
}

// GetFilm returns one film record.
func (h *Handler) GetFilm(c *gin.Context) {
	film, err := h.calculator.Film(c.Param("film"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, film)
}

// ListFilmDevelopers returns the developer identifiers a film has data for.
func (h *Handler) ListFilmDevelopers(c *gin.Context) {
	key := c.Param("film")
	developers, err := h.calculator.DevelopersForFilm(key)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"film": key, "developers": developers})
}

// GetDeveloper returns one developer record.
func (h *Handler) GetDeveloper(c *gin.Context) {
	developer, err := h.calculator.Developer(c.Param("developer"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, developer)
}

// Calculate runs one development calculation and records it in history.
func (h *Handler) Calculate(c *gin.Context) {
	var req darkroom.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.calculator.Calculate(req)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}

	if _, err := h.history.Record(c.Request.Context(), req, result); err != nil {
		h.logger.Warn("history record failed", "film", req.FilmKey, "developer", req.DeveloperKey, "error", err)
	}
	c.JSON(http.StatusOK, result)
}

// CalculationHistory lists recent calculations, newest first.
func (h *Handler) CalculationHistory(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateExport stores a calculation export and returns its artifact.
func (h *Handler) CreateExport(c *gin.Context) {
	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	artifact, err := h.exports.Export(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

// GetExport streams a previously stored export back.
func (h *Handler) GetExport(c *gin.Context) {
	download, err := h.exports.Fetch(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.Data(http.StatusOK, download.MimeType, download.Data)
}

// GetPreferences returns a profile's defaults.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.preferences.Get(c.Request.Context(), c.Param("profile"))
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// SavePreferences replaces a profile's defaults.
func (h *Handler) SavePreferences(c *gin.Context) {
	var prefs preferences.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	prefs.Profile = c.Param("profile")
	saved, err := h.preferences.Save(c.Request.Context(), prefs)
	if err != nil {
		abortWithError(c, toHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, saved)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
