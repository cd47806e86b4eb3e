package darkroom

import "github.com/shopspring/decimal"

// Timing is the closed set of per-family time parameters. Only the three
// types in this file implement it.
type Timing interface {
	Family() Family
	baseTime() decimal.Decimal
	adjust(base decimal.Decimal, pushPull int) decimal.Decimal
	clone() Timing
}

var (
	fallbackMonochromeMinutes    = decimal.NewFromInt(8)
	fallbackColorNegativeMinutes = decimal.New(325, -2)
	fallbackReversalMinutes      = decimal.NewFromInt(6)

	monochromePush1Factor = decimal.New(14, -1)
	monochromePush2Factor = decimal.NewFromInt(2)
	monochromePush3Factor = decimal.New(28, -1)
	monochromePull1Factor = decimal.New(7, -1)
	monochromePull2Factor = decimal.New(5, -1)

	colorNegativePush1Minutes = decimal.New(45, -1)
	colorNegativePush2Minutes = decimal.New(65, -1)
	colorNegativePull1Minutes = decimal.New(25, -1)

	reversalPush1Minutes = decimal.NewFromInt(8)
	reversalPush2Minutes = decimal.NewFromInt(10)
	reversalPull1Minutes = decimal.New(45, -1)
)

// MonochromeTiming holds black and white development times in minutes.
type MonochromeTiming struct {
	TimeMinutes      *decimal.Decimal `json:"time_minutes,omitempty"`
	Time             *decimal.Decimal `json:"time,omitempty"`
	Push1StopMinutes *decimal.Decimal `json:"push_1_stop_minutes,omitempty"`
	Push2StopMinutes *decimal.Decimal `json:"push_2_stop_minutes,omitempty"`
	Push3StopMinutes *decimal.Decimal `json:"push_3_stop_minutes,omitempty"`
	Pull1StopMinutes *decimal.Decimal `json:"pull_1_stop_minutes,omitempty"`
	Pull2StopMinutes *decimal.Decimal `json:"pull_2_stop_minutes,omitempty"`
}

func (MonochromeTiming) Family() Family { return FamilyMonochrome }

func (t MonochromeTiming) baseTime() decimal.Decimal {
	if t.TimeMinutes != nil {
		return *t.TimeMinutes
	}
	return valueOr(t.Time, fallbackMonochromeMinutes)
}

func (t MonochromeTiming) adjust(base decimal.Decimal, pushPull int) decimal.Decimal {
	switch pushPull {
	case 1:
		return valueOr(t.Push1StopMinutes, base.Mul(monochromePush1Factor))
	case 2:
		return valueOr(t.Push2StopMinutes, base.Mul(monochromePush2Factor))
	case 3:
		return valueOr(t.Push3StopMinutes, base.Mul(monochromePush3Factor))
	case -1:
		return valueOr(t.Pull1StopMinutes, base.Mul(monochromePull1Factor))
	case -2:
		return valueOr(t.Pull2StopMinutes, base.Mul(monochromePull2Factor))
	default:
		return base
	}
}

func (t MonochromeTiming) clone() Timing {
	return MonochromeTiming{
		TimeMinutes:      clonePtr(t.TimeMinutes),
		Time:             clonePtr(t.Time),
		Push1StopMinutes: clonePtr(t.Push1StopMinutes),
		Push2StopMinutes: clonePtr(t.Push2StopMinutes),
		Push3StopMinutes: clonePtr(t.Push3StopMinutes),
		Pull1StopMinutes: clonePtr(t.Pull1StopMinutes),
		Pull2StopMinutes: clonePtr(t.Pull2StopMinutes),
	}
}

// ColorNegativeTiming holds C-41 developer stage times in minutes.
type ColorNegativeTiming struct {
	DeveloperTimeMinutes *decimal.Decimal `json:"developer_time_minutes,omitempty"`
	Push1StopDevTime     *decimal.Decimal `json:"push_1_stop_dev_time,omitempty"`
	Push2StopDevTime     *decimal.Decimal `json:"push_2_stop_dev_time,omitempty"`
	Pull1StopDevTime     *decimal.Decimal `json:"pull_1_stop_dev_time,omitempty"`
}

func (ColorNegativeTiming) Family() Family { return FamilyColorNegative }

func (t ColorNegativeTiming) baseTime() decimal.Decimal {
	return valueOr(t.DeveloperTimeMinutes, fallbackColorNegativeMinutes)
}

// Stops outside +1, +2 and -1 leave the base time untouched.
func (t ColorNegativeTiming) adjust(base decimal.Decimal, pushPull int) decimal.Decimal {
	switch pushPull {
	case 1:
		return valueOr(t.Push1StopDevTime, colorNegativePush1Minutes)
	case 2:
		return valueOr(t.Push2StopDevTime, colorNegativePush2Minutes)
	case -1:
		return valueOr(t.Pull1StopDevTime, colorNegativePull1Minutes)
	default:
		return base
	}
}

func (t ColorNegativeTiming) clone() Timing {
	return ColorNegativeTiming{
		DeveloperTimeMinutes: clonePtr(t.DeveloperTimeMinutes),
		Push1StopDevTime:     clonePtr(t.Push1StopDevTime),
		Push2StopDevTime:     clonePtr(t.Push2StopDevTime),
		Pull1StopDevTime:     clonePtr(t.Pull1StopDevTime),
	}
}

// ReversalTiming holds E-6 first developer times in minutes.
type ReversalTiming struct {
	FirstDevTimeMinutes   *decimal.Decimal `json:"first_dev_time_minutes,omitempty"`
	Push1StopFirstDevTime *decimal.Decimal `json:"push_1_stop_first_dev_time,omitempty"`
	Push2StopFirstDevTime *decimal.Decimal `json:"push_2_stop_first_dev_time,omitempty"`
	Pull1StopFirstDevTime *decimal.Decimal `json:"pull_1_stop_first_dev_time,omitempty"`
}

func (ReversalTiming) Family() Family { return FamilyReversal }

func (t ReversalTiming) baseTime() decimal.Decimal {
	return valueOr(t.FirstDevTimeMinutes, fallbackReversalMinutes)
}

// Stops outside +1, +2 and -1 leave the base time untouched.
func (t ReversalTiming) adjust(base decimal.Decimal, pushPull int) decimal.Decimal {
	switch pushPull {
	case 1:
		return valueOr(t.Push1StopFirstDevTime, reversalPush1Minutes)
	case 2:
		return valueOr(t.Push2StopFirstDevTime, reversalPush2Minutes)
	case -1:
		return valueOr(t.Pull1StopFirstDevTime, reversalPull1Minutes)
	default:
		return base
	}
}

func (t ReversalTiming) clone() Timing {
	return ReversalTiming{
		FirstDevTimeMinutes:   clonePtr(t.FirstDevTimeMinutes),
		Push1StopFirstDevTime: clonePtr(t.Push1StopFirstDevTime),
		Push2StopFirstDevTime: clonePtr(t.Push2StopFirstDevTime),
		Pull1StopFirstDevTime: clonePtr(t.Pull1StopFirstDevTime),
	}
}

// EmptyTiming returns the zero timing for a family, which resolves every
// lookup to the family fallback constants.
func EmptyTiming(f Family) Timing {
	switch f {
	case FamilyColorNegative:
		return ColorNegativeTiming{}
	case FamilyReversal:
		return ReversalTiming{}
	default:
		return MonochromeTiming{}
	}
}

// developmentTime selects the base time for the film's family and applies
// the push/pull replacement table.
func developmentTime(family Family, data ProcessData, pushPull int) decimal.Decimal {
	timing := data.Timing
	if timing == nil || timing.Family() != family {
		timing = EmptyTiming(family)
	}
	base := timing.baseTime()
	if pushPull == 0 {
		return base
	}
	return timing.adjust(base, pushPull)
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
