package darkroom

import "github.com/shopspring/decimal"

// Request bounds, inclusive.
var (
	MinTemperature = decimal.NewFromInt(15)
	MaxTemperature = decimal.NewFromInt(30)
)

const (
	MinPushPull = -2
	MaxPushPull = 3
	MinVolume   = 100
	MaxVolume   = 2000
)

// StandardTemperature is the reference processing temperature.
var StandardTemperature = decimal.NewFromInt(20)

// Validate checks the request bounds. It does not consult any dataset.
func (r Request) Validate() error {
	if r.Temperature.LessThan(MinTemperature) || r.Temperature.GreaterThan(MaxTemperature) {
		return &InvalidTemperatureError{Temperature: r.Temperature}
	}
	if r.PushPull < MinPushPull || r.PushPull > MaxPushPull {
		return &InvalidPushPullError{PushPull: r.PushPull}
	}
	if r.Volume < MinVolume || r.Volume > MaxVolume {
		return &InvalidVolumeError{Volume: r.Volume}
	}
	return nil
}
