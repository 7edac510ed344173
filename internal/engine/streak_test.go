package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-tidyhome/internal/engine"
)

func TestStreak_FirstCompletionStartsAtOne(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-01")

	assert.Equal(t, 1, s.Days)
	assert.Equal(t, engine.Day("2024-01-01"), s.LastDay)
}

func TestStreak_ConsecutiveDaysExtend(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-01")
	s.Record("2024-01-02")
	s.Record("2024-01-03")

	assert.Equal(t, 3, s.Days)
	assert.Equal(t, engine.Day("2024-01-03"), s.LastDay)
}

func TestStreak_SameDayDoesNotDoubleCount(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-01")
	s.Record("2024-01-01")
	s.Record("2024-01-01")

	assert.Equal(t, 1, s.Days)
}

func TestStreak_GapResetsToOne(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-01")
	s.Record("2024-01-02")
	s.Record("2024-01-07")

	assert.Equal(t, 1, s.Days, "a multi-day gap starts a new streak")
	assert.Equal(t, engine.Day("2024-01-07"), s.LastDay)
}

func TestStreak_MonthBoundary(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-31")
	s.Record("2024-02-01")

	assert.Equal(t, 2, s.Days, "Jan 31 to Feb 1 is consecutive")
}

// The gap is measured as an absolute value, so a host clock that moved one
// day backward still extends the streak rather than resetting it.
func TestStreak_BackwardClockOneDayExtends(t *testing.T) {
	var s engine.Streak
	s.Record("2024-01-05")
	s.Record("2024-01-04")

	assert.Equal(t, 2, s.Days)
	assert.Equal(t, engine.Day("2024-01-04"), s.LastDay)
}
