package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
)

const yamlDataset = `
films:
  fp4-125:
    name: Ilford FP4 Plus 125
    manufacturer: Ilford
    iso: 125
    type: black_white
    process: B&W
    developers:
      id11_stock:
        dilution: stock
        time_minutes: 8.5
        push_1_stop_minutes: 11
  velvia-50:
    name: Fujichrome Velvia 50
    manufacturer: Fujifilm
    iso: 50
    type: slide
    process: E-6
    developers:
      e6_kit:
        dilution: ready
        first_dev_time_minutes: 7
developers:
  id11:
    name: Ilford ID-11
    manufacturer: Ilford
    type: Powder
    dilutions: [stock, "1:1"]
  e6:
    name: Tetenal E-6
    manufacturer: Tetenal
    type: Kit
    safety_notes: Wear gloves.
temperature_compensation:
  20: 1.0
  21.0: 0.9
  19.5: 1.07
metadata:
  version: "2.1"
  last_updated: "2026-10-01"
`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultDatasetIsValid(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	stats := ds.Stats()
	require.Equal(t, len(ds.Films), stats.FilmCount)
	require.Equal(t, len(ds.Developers), stats.DeveloperCount)
	require.NotEmpty(t, stats.Version)
	require.Contains(t, ds.Films, "tri-x-400")
	require.Contains(t, ds.Compensation, "20")

	svc := darkroom.NewService(newTestLogger())
	svc.Install(ds)
	res, err := svc.Calculate(darkroom.Request{
		FilmKey:      "tri-x-400",
		DeveloperKey: "d76",
		Temperature:  decimal.NewFromInt(20),
		Volume:       500,
	})
	require.NoError(t, err)
	require.Equal(t, "9:00", res.TimeFormatted)
	require.Equal(t, 250, res.DeveloperAmount)
	require.Equal(t, 250, res.WaterAmount)
}

func TestDefaultDatasetKitFallback(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	svc := darkroom.NewService(newTestLogger())
	svc.Install(ds)
	res, err := svc.Calculate(darkroom.Request{
		FilmKey:      "portra-400",
		DeveloperKey: "c41_kit",
		Temperature:  decimal.NewFromInt(20),
		Volume:       600,
	})
	require.NoError(t, err)
	require.Equal(t, "3:15", res.TimeFormatted)
	require.Equal(t, "Ready to use", res.Dilution)
	require.Equal(t, 600, res.DeveloperAmount)
	require.Equal(t, darkroom.FamilyColorNegative, res.FilmType)
}

func TestParseYAML(t *testing.T) {
	ds, err := Parse([]byte(yamlDataset), FormatYAML)
	require.NoError(t, err)

	require.Len(t, ds.Films, 2)
	require.Len(t, ds.Developers, 2)
	require.Equal(t, "2.1", ds.Metadata.Version)
	require.Equal(t, "Wear gloves.", ds.Developers["e6"].SafetyNotes)
	require.Equal(t, "e6", ds.Developers["e6"].Key)

	require.Len(t, ds.Compensation, 3)
	require.Contains(t, ds.Compensation, "20")
	require.Contains(t, ds.Compensation, "21")
	require.Contains(t, ds.Compensation, "19.5")

	fp4 := ds.Films["fp4-125"]
	require.Equal(t, darkroom.FamilyMonochrome, fp4.Family)
	data := fp4.Developers["id11_stock"]
	require.True(t, decimal.NewFromInt(20).Equal(data.TemperatureC))
	timing, ok := data.Timing.(darkroom.MonochromeTiming)
	require.True(t, ok)
	require.NotNil(t, timing.TimeMinutes)
	require.Equal(t, "8.5", timing.TimeMinutes.String())

	velvia := ds.Films["velvia-50"]
	_, ok = velvia.Developers["e6_kit"].Timing.(darkroom.ReversalTiming)
	require.True(t, ok)
}

func TestParseYAMLStockSuffixCombination(t *testing.T) {
	ds, err := Parse([]byte(yamlDataset), FormatYAML)
	require.NoError(t, err)

	svc := darkroom.NewService(newTestLogger())
	svc.Install(ds)
	res, err := svc.Calculate(darkroom.Request{
		FilmKey:      "fp4-125",
		DeveloperKey: "id11_stock",
		Temperature:  decimal.NewFromInt(20),
		PushPull:     1,
		Volume:       400,
	})
	require.NoError(t, err)
	require.Equal(t, "11:00", res.TimeFormatted)
	require.Equal(t, "Stock", res.Dilution)
	require.Equal(t, 400, res.DeveloperAmount)
	require.Equal(t, "Ilford ID-11", res.DeveloperName)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFileByExtension(t *testing.T) {
	path := writeFile(t, "films.yml", yamlDataset)
	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Films, 2)
}

func TestParseRejectsInvalidStructure(t *testing.T) {
	const (
		oneFilm      = `{"a":{"name":"A","type":"black_white","developers":{"d76":{"dilution":"1:1"}}}}`
		oneDeveloper = `{"d76":{"name":"D-76"}}`
		oneEntry     = `{"20":1}`
	)
	doc := func(films, developers, compensation string) string {
		return `{"films":` + films + `,"developers":` + developers + `,"temperature_compensation":` + compensation + `}`
	}

	cases := []struct {
		name string
		doc  string
	}{
		{name: "no films", doc: doc(`{}`, oneDeveloper, oneEntry)},
		{name: "no developers", doc: doc(oneFilm, `{}`, oneEntry)},
		{name: "no compensation", doc: doc(oneFilm, oneDeveloper, `{}`)},
		{name: "film without developers", doc: doc(`{"a":{"name":"A","type":"black_white","developers":{}}}`, oneDeveloper, oneEntry)},
		{name: "unknown family", doc: doc(`{"a":{"name":"A","type":"instant","developers":{"d76":{}}}}`, oneDeveloper, oneEntry)},
		{name: "non numeric temperature", doc: doc(oneFilm, oneDeveloper, `{"warm":1}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), FormatJSON)
			require.ErrorIs(t, err, ErrInvalidStructure)
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"films":`), FormatJSON)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidStructure)
}

func TestFileSourceLoad(t *testing.T) {
	src := NewFileSource("  ", newTestLogger())
	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, ds.Films)

	src = NewFileSource(writeFile(t, "films.yaml", yamlDataset), newTestLogger())
	ds, err = src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Films, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
