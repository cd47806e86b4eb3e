package preferences

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	apperrors "github.com/darkroompro/devcalc/pkg/errors"
	"github.com/darkroompro/devcalc/pkg/util"
)

const maxProfileLength = 64

// DefaultVolume is used when a profile has never set one.
const DefaultVolume = 500

// Service reads and writes per-profile calculator defaults.
type Service interface {
	Get(ctx context.Context, profile string) (Preferences, error)
	Save(ctx context.Context, prefs Preferences) (Preferences, error)
}

type service struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the preferences service.
func NewService(cfg Config, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "preferences.service"),
		now:    util.NowUTC,
	}
}

// Defaults returns the built-in preferences for a profile.
func Defaults(profile string) Preferences {
	return Preferences{
		Profile:     profile,
		Temperature: darkroom.StandardTemperature,
		Volume:      DefaultVolume,
	}
}

func (s *service) Get(ctx context.Context, profile string) (Preferences, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return Preferences{}, err
	}
	prefs, ok, err := s.store.Get(ctx, profile)
	if err != nil {
		s.logger.Error("preferences lookup failed", "profile", profile, "error", err)
		return Preferences{}, apperrors.Wrap("storage_error", "failed to load preferences", err)
	}
	if !ok {
		return Defaults(profile), nil
	}
	return prefs, nil
}

func (s *service) Save(ctx context.Context, prefs Preferences) (Preferences, error) {
	profile, err := normalizeProfile(prefs.Profile)
	if err != nil {
		return Preferences{}, err
	}
	prefs.Profile = profile
	prefs.DefaultFilm = strings.TrimSpace(prefs.DefaultFilm)
	prefs.DefaultDeveloper = strings.TrimSpace(prefs.DefaultDeveloper)
	if prefs.Temperature.IsZero() {
		prefs.Temperature = darkroom.StandardTemperature
	}
	if prefs.Volume == 0 {
		prefs.Volume = DefaultVolume
	}

	// Stored defaults obey the same bounds as a calculation request.
	check := darkroom.Request{
		Temperature: prefs.Temperature,
		PushPull:    prefs.PushPull,
		Volume:      prefs.Volume,
	}
	if err := check.Validate(); err != nil {
		return Preferences{}, err
	}

	prefs.UpdatedAt = s.now()
	if err := s.store.Save(ctx, prefs, s.cfg.TTL); err != nil {
		s.logger.Error("preferences save failed", "profile", profile, "error", err)
		return Preferences{}, apperrors.Wrap("storage_error", "failed to save preferences", err)
	}
	s.logger.Info("preferences saved", "profile", profile)
	return prefs, nil
}

func normalizeProfile(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return "", apperrors.Wrap("invalid_input", "profile is required", nil)
	}
	if len(profile) > maxProfileLength {
		return "", apperrors.Wrap("invalid_input", "profile is too long", nil)
	}
	return profile, nil
}
