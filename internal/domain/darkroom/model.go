package darkroom

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Family identifies the chemistry a film is processed in.
type Family string

const (
	FamilyMonochrome    Family = "black_white"
	FamilyColorNegative Family = "color_negative"
	FamilyReversal      Family = "slide"
)

// Valid reports whether f is one of the three supported process families.
func (f Family) Valid() bool {
	switch f {
	case FamilyMonochrome, FamilyColorNegative, FamilyReversal:
		return true
	default:
		return false
	}
}

// FilmRecord describes a film stock and every developer combination the
// dataset has process data for, keyed by developer identifier.
type FilmRecord struct {
	Key               string                 `json:"key"`
	Name              string                 `json:"name"`
	Manufacturer      string                 `json:"manufacturer"`
	ISO               int                    `json:"iso"`
	Family            Family                 `json:"type"`
	Process           string                 `json:"process"`
	YearReleased      *int                   `json:"year_released,omitempty"`
	CurrentProduction bool                   `json:"current_production"`
	Price35mmUSD      *decimal.Decimal       `json:"price_35mm_usd,omitempty"`
	AlternativeNames  []string               `json:"alternative_names"`
	Description       string                 `json:"description"`
	Grain             string                 `json:"grain"`
	Contrast          string                 `json:"contrast"`
	BestUses          []string               `json:"best_uses"`
	Developers        map[string]ProcessData `json:"developers"`
}

// Clone returns a copy that shares no maps, slices or pointers with f.
func (f FilmRecord) Clone() FilmRecord {
	f.YearReleased = clonePtr(f.YearReleased)
	f.Price35mmUSD = clonePtr(f.Price35mmUSD)
	f.AlternativeNames = slices.Clone(f.AlternativeNames)
	f.BestUses = slices.Clone(f.BestUses)
	if f.Developers != nil {
		developers := make(map[string]ProcessData, len(f.Developers))
		for key, data := range f.Developers {
			developers[key] = data.clone()
		}
		f.Developers = developers
	}
	return f
}

// DeveloperRecord describes a developer independent of any film.
type DeveloperRecord struct {
	Key                   string           `json:"key"`
	Name                  string           `json:"name"`
	Manufacturer          string           `json:"manufacturer"`
	Type                  string           `json:"type"`
	YearIntroduced        *int             `json:"year_introduced,omitempty"`
	PricePerLiterUSD      *decimal.Decimal `json:"price_per_liter_usd,omitempty"`
	CapacityRollsPerLiter *int             `json:"capacity_rolls_per_liter,omitempty"`
	Description           string           `json:"description"`
	Characteristics       string           `json:"characteristics"`
	Dilutions             []string         `json:"dilutions"`
	StockLifeMonths       *int             `json:"stock_life_months,omitempty"`
	WorkingLifeHours      *int             `json:"working_life_hours,omitempty"`
	SafetyNotes           string           `json:"safety_notes,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with d.
func (d DeveloperRecord) Clone() DeveloperRecord {
	d.YearIntroduced = clonePtr(d.YearIntroduced)
	d.PricePerLiterUSD = clonePtr(d.PricePerLiterUSD)
	d.CapacityRollsPerLiter = clonePtr(d.CapacityRollsPerLiter)
	d.Dilutions = slices.Clone(d.Dilutions)
	d.StockLifeMonths = clonePtr(d.StockLifeMonths)
	d.WorkingLifeHours = clonePtr(d.WorkingLifeHours)
	return d
}

// ProcessData holds the parameters for one film/developer combination.
// Timing carries the family specific time fields.
type ProcessData struct {
	Dilution      string          `json:"dilution"`
	DilutionRatio string          `json:"dilution_ratio,omitempty"`
	TemperatureC  decimal.Decimal `json:"temperature_c"`
	Agitation     Agitation       `json:"agitation"`
	Timing        Timing          `json:"timing"`
}

func (d ProcessData) clone() ProcessData {
	if d.Timing != nil {
		d.Timing = d.Timing.clone()
	}
	return d
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Agitation is carried for display only; the engine does not read it.
type Agitation struct {
	InitialSeconds   int `json:"initial_seconds"`
	IntervalSeconds  int `json:"interval_seconds"`
	FrequencyMinutes int `json:"frequency_minutes"`
}

// Metadata is descriptive information shipped with a dataset.
type Metadata struct {
	Version           string `json:"version" yaml:"version"`
	LastUpdated       string `json:"last_updated" yaml:"last_updated"`
	FilmCount         int    `json:"film_count" yaml:"film_count"`
	DeveloperCount    int    `json:"developer_count" yaml:"developer_count"`
	TotalCombinations int    `json:"total_combinations" yaml:"total_combinations"`
}

// Stats summarises an installed dataset.
type Stats struct {
	FilmCount         int    `json:"film_count"`
	DeveloperCount    int    `json:"developer_count"`
	TotalCombinations int    `json:"total_combinations"`
	Version           string `json:"version"`
	LastUpdated       string `json:"last_updated"`
}

// Request is the input of a single development calculation.
type Request struct {
	FilmKey      string          `json:"film_key" binding:"required"`
	DeveloperKey string          `json:"developer_key" binding:"required"`
	Temperature  decimal.Decimal `json:"temperature"`
	PushPull     int             `json:"push_pull"`
	Volume       int             `json:"volume"`
}

// Result is the fully resolved outcome of a calculation.
type Result struct {
	TimeMinutes     decimal.Decimal `json:"time_minutes"`
	TimeFormatted   string          `json:"time_formatted"`
	Dilution        string          `json:"dilution"`
	DeveloperAmount int             `json:"developer_amount"`
	WaterAmount     int             `json:"water_amount"`
	Temperature     decimal.Decimal `json:"temperature"`
	PushPull        int             `json:"push_pull"`
	FilmType        Family          `json:"film_type"`
	FilmName        string          `json:"film_name"`
	DeveloperName   string          `json:"developer_name"`
	Notes           []string        `json:"notes"`
}
