package darkroom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTemperatureTableFactor(t *testing.T) {
	table := testDataset().Compensation

	cases := []struct {
		temp string
		want string
	}{
		{temp: "20", want: "1.0"},
		{temp: "20.0", want: "1.0"},
		{temp: "20.5", want: "1.05"},
		{temp: "20.25", want: "1.0"},  // 40.5 half-steps round to even
		{temp: "20.75", want: "1.1"},  // 41.5 half-steps round to even
		{temp: "18.6", want: "1.225"}, // rounds to 18.5, between 18 and 19
		{temp: "22.5", want: "0.75"},  // exact half-degree key
		{temp: "22.4", want: "0.75"},  // rounds to 22.5
		{temp: "24", want: "0.65"},    // "24.0" key canonicalised
		{temp: "24.5", want: "0.65"},  // no 25 entry, whole degree below
		{temp: "26.5", want: "1"},     // nothing known
		{temp: "15", want: "1"},
	}
	for _, tc := range cases {
		t.Run(tc.temp, func(t *testing.T) {
			requireDecimal(t, tc.want, table.Factor(dec(tc.temp)))
		})
	}
}

func TestNewTemperatureTableCanonicalKeys(t *testing.T) {
	table := NewTemperatureTable(map[string]decimal.Decimal{
		"20.0":  dec("1"),
		"20.50": dec("0.95"),
		" 21 ":  dec("0.9"),
		"warm":  dec("0.5"),
	})
	require.Len(t, table, 3)
	require.Contains(t, table, "20")
	require.Contains(t, table, "20.5")
	require.Contains(t, table, "21")
}

func TestComputeDilution(t *testing.T) {
	cases := []struct {
		name     string
		family   Family
		notation string
		volume   int
		want     Dilution
	}{
		{name: "one to one", family: FamilyMonochrome, notation: "1:1", volume: 500, want: Dilution{Notation: "1:1", DeveloperAmount: 250, WaterAmount: 250}},
		{name: "truncating", family: FamilyMonochrome, notation: "1:31", volume: 500, want: Dilution{Notation: "1:31", DeveloperAmount: 15, WaterAmount: 485}},
		{name: "stock literal", family: FamilyMonochrome, notation: "stock", volume: 500, want: Dilution{Notation: "Stock", DeveloperAmount: 500}},
		{name: "one to zero", family: FamilyMonochrome, notation: "1:0", volume: 750, want: Dilution{Notation: "Stock", DeveloperAmount: 750}},
		{name: "no colon keeps notation", family: FamilyMonochrome, notation: "Dilution B", volume: 300, want: Dilution{Notation: "Dilution B", DeveloperAmount: 300}},
		{name: "bad developer side", family: FamilyMonochrome, notation: "x:3", volume: 400, want: Dilution{Notation: "x:3", DeveloperAmount: 100, WaterAmount: 300}},
		{name: "bad water side", family: FamilyMonochrome, notation: "2:y", volume: 400, want: Dilution{Notation: "2:y", DeveloperAmount: 400}},
		{name: "zero parts", family: FamilyMonochrome, notation: "0:0", volume: 400, want: Dilution{Notation: "0:0", DeveloperAmount: 400}},
		{name: "colour negative", family: FamilyColorNegative, notation: "1:4", volume: 500, want: Dilution{Notation: "Ready to use", DeveloperAmount: 500}},
		{name: "reversal", family: FamilyReversal, notation: "stock", volume: 500, want: Dilution{Notation: "Ready to use", DeveloperAmount: 500}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, computeDilution(tc.family, tc.notation, tc.volume))
		})
	}
}

func TestComputeDilutionSumsToVolume(t *testing.T) {
	for volume := MinVolume; volume <= MaxVolume; volume += 37 {
		for a := 0; a <= 9; a++ {
			for b := 0; b <= 63; b += 7 {
				if a+b == 0 {
					continue
				}
				notation := decimal.NewFromInt(int64(a)).String() + ":" + decimal.NewFromInt(int64(b)).String()
				got := computeDilution(FamilyMonochrome, notation, volume)
				require.Equal(t, volume, got.DeveloperAmount+got.WaterAmount, notation)
				require.GreaterOrEqual(t, got.WaterAmount, 0)
			}
		}
	}
}

func TestParseRatio(t *testing.T) {
	require.Equal(t, Ratio{Developer: 1, Water: 31}, ParseRatio("1:31"))
	require.Equal(t, Ratio{Developer: 1, Water: 0}, ParseRatio("1:2:3"))
	require.Equal(t, Ratio{Developer: 1, Water: 0}, ParseRatio(""))
	require.Equal(t, Ratio{Developer: 1, Water: 9}, ParseRatio("-1:9"))
}

func TestFormatMinutes(t *testing.T) {
	cases := map[string]string{
		"7.5":    "7:30",
		"8.0167": "8:01",
		"9":      "9:00",
		"12.6":   "12:36",
		"0.5":    "0:30",
		"125.25": "125:15",
		"3.9999": "4:00",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatMinutes(dec(in)), in)
	}
}

func TestBuildNotesPluralisation(t *testing.T) {
	film := FilmRecord{Family: FamilyMonochrome}
	dev := DeveloperRecord{}
	std := StandardTemperature

	require.Empty(t, buildNotes(film, dev, std, 0))
	require.Equal(t, []string{"Push 1 stop"}, buildNotes(film, dev, std, 1))
	require.Equal(t, []string{"Push 3 stops"}, buildNotes(film, dev, std, 3))
	require.Equal(t, []string{"Pull 1 stop"}, buildNotes(film, dev, std, -1))
	require.Equal(t, []string{"Temperature adjusted for 21.5°C"}, buildNotes(film, dev, dec("21.5"), 0))
}

func TestBuildNotesKeepsTemperatureScale(t *testing.T) {
	film := FilmRecord{Family: FamilyMonochrome}
	dev := DeveloperRecord{}

	cases := map[string]string{
		"21.50": "Temperature adjusted for 21.50°C",
		"24.0":  "Temperature adjusted for 24.0°C",
		"18":    "Temperature adjusted for 18°C",
		"2.2e1": "Temperature adjusted for 22°C",
	}
	for in, want := range cases {
		require.Equal(t, []string{want}, buildNotes(film, dev, dec(in), 0), in)
	}
	require.Empty(t, buildNotes(film, dev, dec("20.00"), 0))
}

func TestDevelopmentTimeIgnoresMismatchedTiming(t *testing.T) {
	data := ProcessData{Timing: ReversalTiming{FirstDevTimeMinutes: decPtr("7")}}
	requireDecimal(t, "8", developmentTime(FamilyMonochrome, data, 0))
	requireDecimal(t, "7", developmentTime(FamilyReversal, data, 0))
}
