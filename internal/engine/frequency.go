package engine

import "github.com/tartampluch/go-tidyhome/internal/config"

// Frequency is the named recurrence class governing a task's interval.
type Frequency string

const (
	FreqDaily    Frequency = "daily"
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
	FreqCustom   Frequency = "custom"
)

// Frequencies lists the recognized values in display order.
var Frequencies = []Frequency{FreqDaily, FreqWeekly, FreqBiweekly, FreqMonthly, FreqCustom}

// IntervalDays maps a frequency to its interval in days. For FreqCustom an
// unset customN (zero) is substituted with the default of 3 and the result is
// clamped to at least 1 day. Unrecognized frequency values fall back silently
// to the weekly interval; persisted documents from older versions may carry
// values this build does not know.
func IntervalDays(f Frequency, customN int) int {
	switch f {
	case FreqDaily:
		return config.IntervalDaily
	case FreqWeekly:
		return config.IntervalWeekly
	case FreqBiweekly:
		return config.IntervalBiweekly
	case FreqMonthly:
		return config.IntervalMonthly
	case FreqCustom:
		if customN == 0 {
			customN = config.DefaultCustomDays
		}
		if customN < 1 {
			return 1
		}
		return customN
	default:
		return config.FallbackIntervalDays
	}
}
