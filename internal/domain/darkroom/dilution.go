package darkroom

import (
	"strconv"
	"strings"
)

const (
	dilutionStock      = "Stock"
	dilutionReadyToUse = "Ready to use"
)

// Dilution is the resolved mixing instruction for a target volume.
type Dilution struct {
	Notation        string
	DeveloperAmount int
	WaterAmount     int
}

// Ratio is a parsed developer:water notation.
type Ratio struct {
	Developer uint64
	Water     uint64
}

// computeDilution splits volume into developer concentrate and water.
// Colour chemistry is always ready to use.
func computeDilution(family Family, notation string, volume int) Dilution {
	if family != FamilyMonochrome {
		return Dilution{Notation: dilutionReadyToUse, DeveloperAmount: volume}
	}
	if notation == "stock" || notation == "1:0" {
		return Dilution{Notation: dilutionStock, DeveloperAmount: volume}
	}

	ratio := ParseRatio(notation)
	total := ratio.Developer + ratio.Water
	if total == 0 {
		return Dilution{Notation: notation, DeveloperAmount: volume}
	}
	developer := int(uint64(volume) * ratio.Developer / total)
	return Dilution{
		Notation:        notation,
		DeveloperAmount: developer,
		WaterAmount:     volume - developer,
	}
}

// ParseRatio parses "a:b". Anything without exactly one colon is stock
// (1:0); an unparseable side defaults to 1 for developer and 0 for water.
func ParseRatio(notation string) Ratio {
	parts := strings.Split(notation, ":")
	if len(parts) != 2 {
		return Ratio{Developer: 1, Water: 0}
	}
	developer, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		developer = 1
	}
	water, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		water = 0
	}
	return Ratio{Developer: developer, Water: water}
}
