package history

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Entry records one successful calculation.
type Entry struct {
	ID              string          `json:"id"`
	FilmKey         string          `json:"film_key"`
	DeveloperKey    string          `json:"developer_key"`
	Temperature     decimal.Decimal `json:"temperature"`
	PushPull        int             `json:"push_pull"`
	Volume          int             `json:"volume"`
	FilmName        string          `json:"film_name"`
	DeveloperName   string          `json:"developer_name"`
	TimeMinutes     decimal.Decimal `json:"time_minutes"`
	TimeFormatted   string          `json:"time_formatted"`
	Dilution        string          `json:"dilution"`
	DeveloperAmount int             `json:"developer_amount"`
	WaterAmount     int             `json:"water_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Config bounds history listings.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Repository persists history entries.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	// Recent returns at most limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
