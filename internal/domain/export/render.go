package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkroompro/devcalc/pkg/errors"
)

const (
	mimeJSON = "application/json"
	mimeCSV  = "text/csv"
)

// ParseFormat resolves a format name, case-insensitively. An empty name
// means JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return "", apperrors.Wrap("invalid_input", "pdf export is not supported", nil)
	default:
		return "", apperrors.Wrap("invalid_input", fmt.Sprintf("unknown export format %q", name), nil)
	}
}

// Render serialises the record in its format and returns the body with
// its MIME type.
func Render(record Record) ([]byte, string, error) {
	switch record.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return data, mimeJSON, nil
	case FormatCSV:
		data, err := renderCSV(record)
		if err != nil {
			return nil, "", err
		}
		return data, mimeCSV, nil
	default:
		return nil, "", apperrors.Wrap("invalid_input", fmt.Sprintf("unsupported export format %q", record.Format), nil)
	}
}

func renderCSV(record Record) ([]byte, error) {
	calc := record.Calculation
	rows := [][]string{
		{"field", "value"},
		{"film_name", calc.FilmName},
		{"film_type", string(calc.FilmType)},
		{"developer_name", calc.DeveloperName},
		{"time_minutes", calc.TimeMinutes.String()},
		{"time_formatted", calc.TimeFormatted},
		{"dilution", calc.Dilution},
		{"developer_amount_ml", strconv.Itoa(calc.DeveloperAmount)},
		{"water_amount_ml", strconv.Itoa(calc.WaterAmount)},
		{"temperature_c", calc.Temperature.String()},
		{"push_pull", strconv.Itoa(calc.PushPull)},
		{"notes", strings.Join(calc.Notes, "; ")},
		{"timestamp", record.Timestamp.UTC().Format(time.RFC3339)},
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mimeFor(key string) string {
	switch {
	case strings.HasSuffix(key, "."+string(FormatCSV)):
		return mimeCSV
	case strings.HasSuffix(key, "."+string(FormatJSON)):
		return mimeJSON
	default:
		return "application/octet-stream"
	}
}
