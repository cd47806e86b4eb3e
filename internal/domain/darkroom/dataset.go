package darkroom

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Dataset is an immutable snapshot of the reference data. A loaded dataset
// is never mutated; reloading builds a new one and installs it whole.
type Dataset struct {
	Films        map[string]FilmRecord
	Developers   map[string]DeveloperRecord
	Compensation TemperatureTable
	Metadata     Metadata
}

// Stats summarises the dataset, counting combinations from the film records.
func (d *Dataset) Stats() Stats {
	total := 0
	for _, film := range d.Films {
		total += len(film.Developers)
	}
	return Stats{
		FilmCount:         len(d.Films),
		DeveloperCount:    len(d.Developers),
		TotalCombinations: total,
		Version:           d.Metadata.Version,
		LastUpdated:       d.Metadata.LastUpdated,
	}
}

// film looks up a film by exact identifier.
func (d *Dataset) film(key string) (FilmRecord, error) {
	film, ok := d.Films[key]
	if !ok {
		return FilmRecord{}, &FilmNotFoundError{FilmKey: key}
	}
	return film, nil
}

// developer resolves a developer identifier through three tiers: exact,
// with "_stock"/"_kit" removed, then the first two underscore segments.
func (d *Dataset) developer(key string) (DeveloperRecord, error) {
	if dev, ok := d.Developers[key]; ok {
		return dev, nil
	}

	base := strings.ReplaceAll(key, "_stock", "")
	base = strings.ReplaceAll(base, "_kit", "")
	if dev, ok := d.Developers[base]; ok {
		return dev, nil
	}

	parts := strings.Split(key, "_")
	if len(parts) >= 2 {
		if dev, ok := d.Developers[parts[0]+"_"+parts[1]]; ok {
			return dev, nil
		}
	}

	return DeveloperRecord{}, &DeveloperNotFoundError{DeveloperKey: key}
}

// processData resolves the film's combination entry for a developer
// identifier, retrying once without "_stock".
func (d *Dataset) processData(film FilmRecord, developerKey string) (ProcessData, error) {
	if data, ok := film.Developers[developerKey]; ok {
		return data, nil
	}
	if data, ok := film.Developers[strings.ReplaceAll(developerKey, "_stock", "")]; ok {
		return data, nil
	}
	return ProcessData{}, &CombinationNotSupportedError{FilmName: film.Name, DeveloperKey: developerKey}
}

func (d *Dataset) sortedFilms() []FilmRecord {
	films := make([]FilmRecord, 0, len(d.Films))
	for _, film := range d.Films {
		films = append(films, film)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].Key < films[j].Key })
	return films
}

func sortedKeys(m map[string]ProcessData) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TemperatureTable maps canonical temperature keys ("20", "20.5") to
// multiplicative compensation factors. It may be sparse.
type TemperatureTable map[string]decimal.Decimal

// NewTemperatureTable canonicalises keys so "20.0" and "20" are the same
// entry. Keys that are not decimal numbers are dropped.
func NewTemperatureTable(raw map[string]decimal.Decimal) TemperatureTable {
	table := make(TemperatureTable, len(raw))
	for key, factor := range raw {
		canonical, ok := CanonicalTemperatureKey(key)
		if !ok {
			continue
		}
		table[canonical] = factor
	}
	return table
}

// CanonicalTemperatureKey normalises a temperature key string.
func CanonicalTemperatureKey(key string) (string, bool) {
	value, err := decimal.NewFromString(strings.TrimSpace(key))
	if err != nil {
		return "", false
	}
	return value.String(), true
}

var (
	two = decimal.NewFromInt(2)
	one = decimal.NewFromInt(1)
)

// Factor returns the compensation factor for a temperature. The temperature
// is rounded to the nearest half degree, then resolved by exact key, by
// interpolating between the bracketing whole degrees, by the whole degree
// below, and finally defaults to 1.
func (t TemperatureTable) Factor(temperature decimal.Decimal) decimal.Decimal {
	rounded := temperature.Mul(two).RoundBank(0).Div(two)
	if factor, ok := t[rounded.String()]; ok {
		return factor
	}

	lower := rounded.Floor()
	upper := lower.Add(one)
	lowerFactor, hasLower := t[lower.String()]
	upperFactor, hasUpper := t[upper.String()]
	if hasLower && hasUpper {
		weight := rounded.Sub(lower)
		return lowerFactor.Add(upperFactor.Sub(lowerFactor).Mul(weight))
	}
	if hasLower {
		return lowerFactor
	}
	return one
}
