package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
)

//go:embed default_dataset.json
var defaultDataset []byte

var (
	// ErrFileNotFound is returned when the configured dataset path does not exist.
	ErrFileNotFound = errors.New("dataset file not found")
	// ErrInvalidStructure wraps every structural validation failure.
	ErrInvalidStructure = errors.New("invalid dataset structure")
)

// Format is the serialization of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Source loads a fully validated dataset.
type Source interface {
	Load(ctx context.Context) (*darkroom.Dataset, error)
}

// FileSource reads the dataset from Path, or from the embedded default
// dataset when Path is empty.
type FileSource struct {
	Path   string
	logger *slog.Logger
}

// NewFileSource constructs a file backed source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{Path: strings.TrimSpace(path), logger: logger.With("component", "dataset.loader")}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*darkroom.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		s.logger.Info("loading embedded default dataset")
		return Default()
	}
	ds, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("dataset file loaded", "path", s.Path, "films", len(ds.Films), "developers", len(ds.Developers))
	return ds, nil
}

// Default parses the dataset bundled into the binary.
func Default() (*darkroom.Dataset, error) {
	return Parse(defaultDataset, FormatJSON)
}

// LoadFile reads and validates a dataset file. The format follows the
// extension; anything other than .yaml/.yml is treated as JSON.
func LoadFile(path string) (*darkroom.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return Parse(data, formatFor(path))
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes, validates and converts a dataset document.
func Parse(data []byte, format Format) (*darkroom.Dataset, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var doc fileDataset
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return convert(doc), nil
}

// yamlToJSON lets YAML documents share the JSON decoding path, so decimal
// fields are handled identically for both formats.
func yamlToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse dataset yaml: %w", err)
	}
	normalized, err := normalizeYAML(generic)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("convert dataset yaml: %w", err)
	}
	return out, nil
}

// normalizeYAML stringifies map keys so numeric temperature keys survive
// the trip to JSON.
func normalizeYAML(v any) (any, error) {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

func validate(doc fileDataset) error {
	if len(doc.Films) == 0 {
		return fmt.Errorf("%w: no films found in dataset", ErrInvalidStructure)
	}
	if len(doc.Developers) == 0 {
		return fmt.Errorf("%w: no developers found in dataset", ErrInvalidStructure)
	}
	if len(doc.TemperatureCompensation) == 0 {
		return fmt.Errorf("%w: no temperature compensation data found", ErrInvalidStructure)
	}

	keys := make([]string, 0, len(doc.Films))
	for key := range doc.Films {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		film := doc.Films[key]
		if len(film.Developers) == 0 {
			return fmt.Errorf("%w: film '%s' has no developer data", ErrInvalidStructure, key)
		}
		if !darkroom.Family(film.Type).Valid() {
			return fmt.Errorf("%w: film '%s' has unknown type %q", ErrInvalidStructure, key, film.Type)
		}
	}

	for key := range doc.TemperatureCompensation {
		if _, ok := darkroom.CanonicalTemperatureKey(key); !ok {
			return fmt.Errorf("%w: temperature key %q is not a number", ErrInvalidStructure, key)
		}
	}
	return nil
}

func convert(doc fileDataset) *darkroom.Dataset {
	films := make(map[string]darkroom.FilmRecord, len(doc.Films))
	for key, f := range doc.Films {
		family := darkroom.Family(f.Type)
		combos := make(map[string]darkroom.ProcessData, len(f.Developers))
		for devKey, data := range f.Developers {
			combos[devKey] = data.toProcessData(family)
		}
		films[key] = darkroom.FilmRecord{
			Key:               key,
			Name:              f.Name,
			Manufacturer:      f.Manufacturer,
			ISO:               f.ISO,
			Family:            family,
			Process:           f.Process,
			YearReleased:      f.YearReleased,
			CurrentProduction: f.CurrentProduction,
			Price35mmUSD:      f.Price35mmUSD,
			AlternativeNames:  f.AlternativeNames,
			Description:       f.Description,
			Grain:             f.Grain,
			Contrast:          f.Contrast,
			BestUses:          f.BestUses,
			Developers:        combos,
		}
	}

	developers := make(map[string]darkroom.DeveloperRecord, len(doc.Developers))
	for key, d := range doc.Developers {
		record := darkroom.DeveloperRecord{
			Key:                   key,
			Name:                  d.Name,
			Manufacturer:          d.Manufacturer,
			Type:                  d.Type,
			YearIntroduced:        d.YearIntroduced,
			PricePerLiterUSD:      d.PricePerLiterUSD,
			CapacityRollsPerLiter: d.CapacityRollsPerLiter,
			Description:           d.Description,
			Characteristics:       d.Characteristics,
			Dilutions:             d.Dilutions,
			StockLifeMonths:       d.StockLifeMonths,
			WorkingLifeHours:      d.WorkingLifeHours,
		}
		if d.SafetyNotes != nil {
			record.SafetyNotes = *d.SafetyNotes
		}
		developers[key] = record
	}

	return &darkroom.Dataset{
		Films:        films,
		Developers:   developers,
		Compensation: darkroom.NewTemperatureTable(doc.TemperatureCompensation),
		Metadata:     doc.Metadata,
	}
}
