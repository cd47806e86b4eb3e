package darkroom

import (
	"log/slog"
	"sync/atomic"
)

// Service computes development parameters against the installed dataset
// and exposes read-only browsing of it. Browsing returns deep copies, so
// callers cannot reach the installed snapshot. All methods are safe for
// concurrent use; Install swaps the dataset atomically.
type Service interface {
	Install(dataset *Dataset)
	Stats() (Stats, error)
	Calculate(req Request) (Result, error)
	Films() ([]FilmRecord, error)
	DevelopersForFilm(filmKey string) ([]string, error)
	Film(filmKey string) (FilmRecord, error)
	Developer(developerKey string) (DeveloperRecord, error)
}

type service struct {
	dataset atomic.Pointer[Dataset]
	logger  *slog.Logger
}

// NewService wires up the calculation engine with no dataset installed.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "darkroom.service")}
}

func (s *service) Install(dataset *Dataset) {
	if dataset == nil {
		return
	}
	s.dataset.Store(dataset)
	stats := dataset.Stats()
	s.logger.Info("dataset installed",
		"version", stats.Version,
		"films", stats.FilmCount,
		"developers", stats.DeveloperCount,
		"combinations", stats.TotalCombinations,
	)
}

func (s *service) current() (*Dataset, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrDatasetNotLoaded
	}
	return ds, nil
}

func (s *service) Stats() (Stats, error) {
	ds, err := s.current()
	if err != nil {
		return Stats{}, err
	}
	return ds.Stats(), nil
}

func (s *service) Calculate(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		s.logger.Debug("calculation rejected", "error", err)
		return Result{}, err
	}
	// One snapshot for the whole calculation so a concurrent reload is
	// never observed halfway.
	ds, err := s.current()
	if err != nil {
		return Result{}, err
	}

	film, err := ds.film(req.FilmKey)
	if err != nil {
		return Result{}, err
	}
	developer, err := ds.developer(req.DeveloperKey)
	if err != nil {
		return Result{}, err
	}
	data, err := ds.processData(film, req.DeveloperKey)
	if err != nil {
		return Result{}, err
	}

	minutes := developmentTime(film.Family, data, req.PushPull).
		Mul(ds.Compensation.Factor(req.Temperature))
	dilution := computeDilution(film.Family, data.Dilution, req.Volume)

	return Result{
		TimeMinutes:     minutes,
		TimeFormatted:   FormatMinutes(minutes),
		Dilution:        dilution.Notation,
		DeveloperAmount: dilution.DeveloperAmount,
		WaterAmount:     dilution.WaterAmount,
		Temperature:     req.Temperature,
		PushPull:        req.PushPull,
		FilmType:        film.Family,
		FilmName:        film.Name,
		DeveloperName:   developer.Name,
		Notes:           buildNotes(film, developer, req.Temperature, req.PushPull),
	}, nil
}

func (s *service) Films() ([]FilmRecord, error) {
	ds, err := s.current()
	if err != nil {
		return nil, err
	}
	films := ds.sortedFilms()
	for i := range films {
		films[i] = films[i].Clone()
	}
	return films, nil
}

func (s *service) DevelopersForFilm(filmKey string) ([]string, error) {
	ds, err := s.current()
	if err != nil {
		return nil, err
	}
	film, err := ds.film(filmKey)
	if err != nil {
		return nil, err
	}
	return sortedKeys(film.Developers), nil
}

func (s *service) Film(filmKey string) (FilmRecord, error) {
	ds, err := s.current()
	if err != nil {
		return FilmRecord{}, err
	}
	film, err := ds.film(filmKey)
	if err != nil {
		return FilmRecord{}, err
	}
	return film.Clone(), nil
}

func (s *service) Developer(developerKey string) (DeveloperRecord, error) {
	ds, err := s.current()
	if err != nil {
		return DeveloperRecord{}, err
	}
	developer, err := ds.developer(developerKey)
	if err != nil {
		return DeveloperRecord{}, err
	}
	return developer.Clone(), nil
}
