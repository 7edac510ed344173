package remind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"standard evening", "19:30", "30 19 * * *", false},
		{"midnight", "00:00", "0 0 * * *", false},
		{"end of day", "23:59", "59 23 * * *", false},
		{"single digit hour", "9:05", "5 9 * * *", false},
		{"hour out of range", "24:00", "", true},
		{"minute out of range", "12:60", "", true},
		{"negative hour", "-1:30", "", true},
		{"missing colon", "1930", "", true},
		{"too many fields", "19:30:00", "", true},
		{"not numeric", "seven:thirty", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := buildDailySpec(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, spec)
			}
		})
	}
}

// TestReschedule_ReplacesNotStacks verifies the core scheduler contract:
// there is never more than one pending reminder job.
func TestReschedule_ReplacesNotStacks(t *testing.T) {
	s := New(time.UTC)
	job := func() {}

	require.NoError(t, s.Reschedule("08:00", job))
	assert.Equal(t, 1, s.Pending())

	require.NoError(t, s.Reschedule("09:30", job))
	assert.Equal(t, 1, s.Pending(), "rescheduling must replace the previous entry")

	require.NoError(t, s.Reschedule("21:00", job))
	assert.Equal(t, 1, s.Pending())
}

func TestReschedule_EmptyClears(t *testing.T) {
	s := New(time.UTC)

	require.NoError(t, s.Reschedule("08:00", func() {}))
	require.Equal(t, 1, s.Pending())

	require.NoError(t, s.Reschedule("", nil))
	assert.Equal(t, 0, s.Pending())
}

func TestReschedule_InvalidTimeKeepsNothingArmed(t *testing.T) {
	s := New(time.UTC)

	assert.Error(t, s.Reschedule("25:00", func() {}))
	assert.Equal(t, 0, s.Pending())
}

func TestReschedule_InvalidTimeDropsPreviousEntry(t *testing.T) {
	// The replace happens before validation, so a bad new time clears the old
	// reminder instead of leaving a stale one firing at the previous hour.
	s := New(time.UTC)
	require.NoError(t, s.Reschedule("08:00", func() {}))

	assert.Error(t, s.Reschedule("nonsense", func() {}))
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_DailyActivationTimes(t *testing.T) {
	s := New(time.UTC)

	// Waiting for a real activation would take up to a day, so inspect the
	// computed schedule instead.
	require.NoError(t, s.Reschedule("12:00", func() {}))
	s.Start()
	defer s.Stop()

	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	next := entries[0].Schedule.Next(time.Date(2024, 1, 10, 11, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), next,
		"the job must activate daily at the configured wall-clock time")
	next = entries[0].Schedule.Next(next)
	assert.Equal(t, time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), next,
		"the following activation is exactly one day later")
}
