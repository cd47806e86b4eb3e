package darkroom

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s got %s", want, got)
}

func testDataset() *Dataset {
	return &Dataset{
		Films: map[string]FilmRecord{
			"tri-x-400": {
				Key:    "tri-x-400",
				Name:   "Kodak Tri-X 400",
				ISO:    400,
				Family: FamilyMonochrome,
				Developers: map[string]ProcessData{
					"d76": {
						Dilution: "1:1",
						Timing:   MonochromeTiming{TimeMinutes: decPtr("9.0")},
					},
					"hc110": {
						Dilution: "1:31",
						Timing: MonochromeTiming{
							TimeMinutes:      decPtr("6.5"),
							Push1StopMinutes: decPtr("9"),
						},
					},
					"xtol": {
						Dilution: "stock",
						Timing:   MonochromeTiming{Time: decPtr("7")},
					},
					"rodinal": {
						Dilution: "1:50",
					},
				},
			},
			"portra-400": {
				Key:    "portra-400",
				Name:   "Kodak Portra 400",
				ISO:    400,
				Family: FamilyColorNegative,
				Developers: map[string]ProcessData{
					"tetenal_colortec_c41_v2": {
						Dilution: "1:4",
						Timing:   ColorNegativeTiming{},
					},
				},
			},
			"ektachrome-e100": {
				Key:    "ektachrome-e100",
				Name:   "Kodak Ektachrome E100",
				ISO:    100,
				Family: FamilyReversal,
				Developers: map[string]ProcessData{
					"e6_kit": {
						Dilution: "1:5",
						Timing: ReversalTiming{
							FirstDevTimeMinutes:   decPtr("6.5"),
							Push2StopFirstDevTime: decPtr("11"),
						},
					},
				},
			},
		},
		Developers: map[string]DeveloperRecord{
			"d76":              {Key: "d76", Name: "Kodak D-76"},
			"hc110":            {Key: "hc110", Name: "Kodak HC-110", SafetyNotes: "Corrosive concentrate, wear gloves"},
			"xtol":             {Key: "xtol", Name: "Kodak Xtol"},
			"rodinal":          {Key: "rodinal", Name: "Agfa Rodinal"},
			"tetenal_colortec": {Key: "tetenal_colortec", Name: "Tetenal Colortec C-41"},
			"e6":               {Key: "e6", Name: "Tetenal E-6 Kit"},
		},
		Compensation: NewTemperatureTable(map[string]decimal.Decimal{
			"18":   dec("1.3"),
			"19":   dec("1.15"),
			"20":   dec("1.0"),
			"21":   dec("1.1"),
			"22.5": dec("0.75"),
			"24.0": dec("0.65"),
		}),
		Metadata: Metadata{Version: "test-1", LastUpdated: "2026-10-01"},
	}
}

func newLoadedService(t *testing.T) Service {
	t.Helper()
	svc := NewService(newTestLogger())
	svc.Install(testDataset())
	return svc
}

func baseRequest() Request {
	return Request{
		FilmKey:      "tri-x-400",
		DeveloperKey: "d76",
		Temperature:  dec("20"),
		PushPull:     0,
		Volume:       500,
	}
}
