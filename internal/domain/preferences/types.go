package preferences

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Preferences are the calculator defaults remembered for one profile.
type Preferences struct {
	Profile          string          `json:"profile"`
	DefaultFilm      string          `json:"default_film,omitempty"`
	DefaultDeveloper string          `json:"default_developer,omitempty"`
	Temperature      decimal.Decimal `json:"temperature"`
	PushPull         int             `json:"push_pull"`
	Volume           int             `json:"volume"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
}

// Config controls how long stored preferences live.
type Config struct {
	TTL time.Duration
}

// Store defines the persistence contract for preferences.
type Store interface {
	Get(ctx context.Context, profile string) (Preferences, bool, error)
	Save(ctx context.Context, prefs Preferences, ttl time.Duration) error
}
