package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-tidyhome/internal/config"
	"github.com/tartampluch/go-tidyhome/internal/engine"
)

func TestBuildFeed_RendersOneEventPerTask(t *testing.T) {
	today := engine.Day("2024-01-10")
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	tasks := []engine.Task{
		{ID: "id-1", Title: "Vacuum", Room: "Hallway", Frequency: engine.FreqWeekly, LastDone: "2024-01-08"},
		{ID: "id-2", Title: "Dishes", Frequency: engine.FreqDaily, LastDone: "2024-01-09"},
	}

	data, err := engine.BuildFeed(tasks, today, now, nil)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Contains(t, ics, "X-WR-CALNAME:"+config.ICalCalName)

	// One event per task, identified by a stable UID.
	assert.Contains(t, ics, "UID:id-1@"+config.ICalDomain)
	assert.Contains(t, ics, "UID:id-2@"+config.ICalDomain)

	// Fallback summaries mention the room when set.
	assert.Contains(t, ics, "SUMMARY:Chore: Vacuum (Hallway)")
	assert.Contains(t, ics, "SUMMARY:Chore: Dishes")

	// All-day events on the next due date.
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240115", "weekly task done Jan 8 is due Jan 15")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240110", "daily task done Jan 9 is due Jan 10")
}

func TestBuildFeed_UsesInjectedSummarizer(t *testing.T) {
	today := engine.Day("2024-01-10")
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	tasks := []engine.Task{{ID: "id-1", Title: "Vacuum", Frequency: engine.FreqWeekly}}

	data, err := engine.BuildFeed(tasks, today, now, func(t engine.Task) string {
		return "Corvée : " + t.Title
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Corvée : Vacuum")
}

// An empty household still serves a valid VCALENDAR so subscribed calendar
// apps do not flag the feed as broken.
func TestBuildFeed_EmptyListServesStub(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	data, err := engine.BuildFeed(nil, "2024-01-10", now, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestBuildFeed_SkipsTasksWithMalformedDates(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	tasks := []engine.Task{
		{ID: "bad", Title: "Broken", Frequency: engine.FreqWeekly, LastDone: "not-a-date"},
	}

	// The malformed lastDone propagates into an unparseable due date; the
	// task is skipped and the stub is served instead of failing.
	data, err := engine.BuildFeed(tasks, "2024-01-10", now, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}
