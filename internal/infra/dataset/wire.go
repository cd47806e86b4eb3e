package dataset

import (
	"github.com/shopspring/decimal"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
)

// fileDataset mirrors the on-disk dataset document.
type fileDataset struct {
	Films                   map[string]fileFilm        `json:"films"`
	Developers              map[string]fileDeveloper   `json:"developers"`
	TemperatureCompensation map[string]decimal.Decimal `json:"temperature_compensation"`
	Metadata                darkroom.Metadata          `json:"metadata"`
}

type fileFilm struct {
	Name              string                       `json:"name"`
	Manufacturer      string                       `json:"manufacturer"`
	ISO               int                          `json:"iso"`
	Type              string                       `json:"type"`
	Process           string                       `json:"process"`
	YearReleased      *int                         `json:"year_released"`
	CurrentProduction bool                         `json:"current_production"`
	Price35mmUSD      *decimal.Decimal             `json:"price_35mm_usd"`
	AlternativeNames  []string                     `json:"alternative_names"`
	Description       string                       `json:"description"`
	Grain             string                       `json:"grain"`
	Contrast          string                       `json:"contrast"`
	BestUses          []string                     `json:"best_uses"`
	Developers        map[string]fileDeveloperData `json:"developers"`
}

type fileDeveloper struct {
	Name                  string           `json:"name"`
	Manufacturer          string           `json:"manufacturer"`
	Type                  string           `json:"type"`
	YearIntroduced        *int             `json:"year_introduced"`
	PricePerLiterUSD      *decimal.Decimal `json:"price_per_liter_usd"`
	CapacityRollsPerLiter *int             `json:"capacity_rolls_per_liter"`
	Description           string           `json:"description"`
	Characteristics       string           `json:"characteristics"`
	Dilutions             []string         `json:"dilutions"`
	StockLifeMonths       *int             `json:"stock_life_months"`
	WorkingLifeHours      *int             `json:"working_life_hours"`
	SafetyNotes           *string          `json:"safety_notes"`
}

// fileDeveloperData is the flat per-combination record; only the fields of
// the film's family are carried into the domain timing.
type fileDeveloperData struct {
	Dilution                  string           `json:"dilution"`
	DilutionRatio             *string          `json:"dilution_ratio"`
	TimeMinutes               *decimal.Decimal `json:"time_minutes"`
	Time                      *decimal.Decimal `json:"time"`
	TemperatureC              *decimal.Decimal `json:"temperature_c"`
	AgitationInitialSeconds   int              `json:"agitation_initial_seconds"`
	AgitationIntervalSeconds  int              `json:"agitation_interval_seconds"`
	AgitationFrequencyMinutes int              `json:"agitation_frequency_minutes"`
	Push1StopMinutes          *decimal.Decimal `json:"push_1_stop_minutes"`
	Push2StopMinutes          *decimal.Decimal `json:"push_2_stop_minutes"`
	Push3StopMinutes          *decimal.Decimal `json:"push_3_stop_minutes"`
	Pull1StopMinutes          *decimal.Decimal `json:"pull_1_stop_minutes"`
	Pull2StopMinutes          *decimal.Decimal `json:"pull_2_stop_minutes"`
	DeveloperTimeMinutes      *decimal.Decimal `json:"developer_time_minutes"`
	Push1StopDevTime          *decimal.Decimal `json:"push_1_stop_dev_time"`
	Push2StopDevTime          *decimal.Decimal `json:"push_2_stop_dev_time"`
	Pull1StopDevTime          *decimal.Decimal `json:"pull_1_stop_dev_time"`
	FirstDevTimeMinutes       *decimal.Decimal `json:"first_dev_time_minutes"`
	Push1StopFirstDevTime     *decimal.Decimal `json:"push_1_stop_first_dev_time"`
	Push2StopFirstDevTime     *decimal.Decimal `json:"push_2_stop_first_dev_time"`
	Pull1StopFirstDevTime     *decimal.Decimal `json:"pull_1_stop_first_dev_time"`
}

var standardTemperature = decimal.NewFromInt(20)

func (d fileDeveloperData) toProcessData(family darkroom.Family) darkroom.ProcessData {
	data := darkroom.ProcessData{
		Dilution:     d.Dilution,
		TemperatureC: standardTemperature,
		Agitation: darkroom.Agitation{
			InitialSeconds:   d.AgitationInitialSeconds,
			IntervalSeconds:  d.AgitationIntervalSeconds,
			FrequencyMinutes: d.AgitationFrequencyMinutes,
		},
	}
	if d.TemperatureC != nil {
		data.TemperatureC = *d.TemperatureC
	}
	if d.DilutionRatio != nil {
		data.DilutionRatio = *d.DilutionRatio
	}

	switch family {
	case darkroom.FamilyColorNegative:
		data.Timing = darkroom.ColorNegativeTiming{
			DeveloperTimeMinutes: d.DeveloperTimeMinutes,
			Push1StopDevTime:     d.Push1StopDevTime,
			Push2StopDevTime:     d.Push2StopDevTime,
			Pull1StopDevTime:     d.Pull1StopDevTime,
		}
	case darkroom.FamilyReversal:
		data.Timing = darkroom.ReversalTiming{
			FirstDevTimeMinutes:   d.FirstDevTimeMinutes,
			Push1StopFirstDevTime: d.Push1StopFirstDevTime,
			Push2StopFirstDevTime: d.Push2StopFirstDevTime,
			Pull1StopFirstDevTime: d.Pull1StopFirstDevTime,
		}
	default:
		data.Timing = darkroom.MonochromeTiming{
			TimeMinutes:      d.TimeMinutes,
			Time:             d.Time,
			Push1StopMinutes: d.Push1StopMinutes,
			Push2StopMinutes: d.Push2StopMinutes,
			Push3StopMinutes: d.Push3StopMinutes,
			Pull1StopMinutes: d.Pull1StopMinutes,
			Pull2StopMinutes: d.Pull2StopMinutes,
		}
	}
	return data
}
