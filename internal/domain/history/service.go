package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
	"github.com/darkroompro/devcalc/pkg/util"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Service appends and lists calculation history.
type Service interface {
	Record(ctx context.Context, req darkroom.Request, res darkroom.Result) (Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the history service.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = maxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "history.service"),
		now:    util.NowUTC,
		newID:  uuid.NewString,
	}
}

func (s *service) Record(ctx context.Context, req darkroom.Request, res darkroom.Result) (Entry, error) {
	entry := Entry{
		ID:              s.newID(),
		FilmKey:         req.FilmKey,
		DeveloperKey:    req.DeveloperKey,
		Temperature:     req.Temperature,
		PushPull:        req.PushPull,
		Volume:          req.Volume,
		FilmName:        res.FilmName,
		DeveloperName:   res.DeveloperName,
		TimeMinutes:     res.TimeMinutes,
		TimeFormatted:   res.TimeFormatted,
		Dilution:        res.Dilution,
		DeveloperAmount: res.DeveloperAmount,
		WaterAmount:     res.WaterAmount,
		CreatedAt:       s.now(),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return Entry{}, apperrors.Wrap("storage_error", "failed to record calculation", err)
	}
	s.logger.Debug("calculation recorded", "id", entry.ID, "film", entry.FilmKey, "developer", entry.DeveloperKey)
	return entry, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = s.cfg.DefaultLimit
	case limit > s.cfg.MaxLimit:
		limit = s.cfg.MaxLimit
	}
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error("history lookup failed", "error", err)
		return nil, apperrors.Wrap("storage_error", "failed to load history", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
