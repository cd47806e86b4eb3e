package darkroom

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes exposed through ErrorCode so the transport can map failures
// without string matching.
const (
	CodeDatasetNotLoaded        = "dataset_not_loaded"
	CodeFilmNotFound            = "film_not_found"
	CodeDeveloperNotFound       = "developer_not_found"
	CodeCombinationNotSupported = "combination_not_supported"
	CodeInvalidTemperature      = "invalid_temperature"
	CodeInvalidPushPull         = "invalid_push_pull"
	CodeInvalidVolume           = "invalid_volume"
)

// ErrDatasetNotLoaded is returned by every operation until a dataset has
// been installed.
var ErrDatasetNotLoaded error = datasetNotLoadedError{}

type datasetNotLoadedError struct{}

func (datasetNotLoadedError) Error() string     { return "dataset not loaded" }
func (datasetNotLoadedError) ErrorCode() string { return CodeDatasetNotLoaded }

// FilmNotFoundError reports an unknown film identifier.
type FilmNotFoundError struct {
	FilmKey string
}

func (e *FilmNotFoundError) Error() string     { return fmt.Sprintf("film not found: %s", e.FilmKey) }
func (e *FilmNotFoundError) ErrorCode() string { return CodeFilmNotFound }

// DeveloperNotFoundError reports a developer identifier that no fallback
// tier could resolve. DeveloperKey is the identifier as requested.
type DeveloperNotFoundError struct {
	DeveloperKey string
}

func (e *DeveloperNotFoundError) Error() string {
	return fmt.Sprintf("developer not found: %s", e.DeveloperKey)
}
func (e *DeveloperNotFoundError) ErrorCode() string { return CodeDeveloperNotFound }

// CombinationNotSupportedError reports a film with no process data for the
// requested developer.
type CombinationNotSupportedError struct {
	FilmName     string
	DeveloperKey string
}

func (e *CombinationNotSupportedError) Error() string {
	return fmt.Sprintf("film/developer combination not supported: %s with %s", e.FilmName, e.DeveloperKey)
}
func (e *CombinationNotSupportedError) ErrorCode() string { return CodeCombinationNotSupported }

// InvalidTemperatureError reports a temperature outside 15-30°C.
type InvalidTemperatureError struct {
	Temperature decimal.Decimal
}

func (e *InvalidTemperatureError) Error() string {
	return fmt.Sprintf("invalid temperature: %s°C (must be between %s-%s°C)", e.Temperature, MinTemperature, MaxTemperature)
}
func (e *InvalidTemperatureError) ErrorCode() string { return CodeInvalidTemperature }

// InvalidPushPullError reports a push/pull outside -2..+3 stops.
type InvalidPushPullError struct {
	PushPull int
}

func (e *InvalidPushPullError) Error() string {
	return fmt.Sprintf("invalid push/pull value: %d (must be between %d and +%d)", e.PushPull, MinPushPull, MaxPushPull)
}
func (e *InvalidPushPullError) ErrorCode() string { return CodeInvalidPushPull }

// InvalidVolumeError reports a volume outside 100-2000ml.
type InvalidVolumeError struct {
	Volume int
}

func (e *InvalidVolumeError) Error() string {
	return fmt.Sprintf("invalid volume: %dml (must be between %d-%dml)", e.Volume, MinVolume, MaxVolume)
}
func (e *InvalidVolumeError) ErrorCode() string { return CodeInvalidVolume }
