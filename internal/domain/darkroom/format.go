package darkroom

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// FormatMinutes renders fractional minutes as M:SS after rounding to the
// nearest whole second.
func FormatMinutes(minutes decimal.Decimal) string {
	total := minutes.Mul(sixty).RoundBank(0).IntPart()
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

// literal renders d with the scale it was written with, so 21.50 stays
// "21.50".
func literal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func buildNotes(film FilmRecord, developer DeveloperRecord, temperature decimal.Decimal, pushPull int) []string {
	notes := make([]string, 0, 4)

	switch film.Family {
	case FamilyColorNegative:
		notes = append(notes, "C-41 Developer")
	case FamilyReversal:
		notes = append(notes, "E-6 First Developer")
	}

	if !temperature.Equal(StandardTemperature) {
		notes = append(notes, fmt.Sprintf("Temperature adjusted for %s°C", literal(temperature)))
	}

	if pushPull != 0 {
		direction := "Push"
		if pushPull < 0 {
			direction = "Pull"
		}
		stops := pushPull
		if stops < 0 {
			stops = -stops
		}
		unit := "stops"
		if stops == 1 {
			unit = "stop"
		}
		notes = append(notes, fmt.Sprintf("%s %d %s", direction, stops, unit))
	}

	if safety := strings.TrimSpace(developer.SafetyNotes); safety != "" {
		notes = append(notes, "Safety: "+safety)
	}

	return notes
}
