package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-tidyhome/internal/engine"
)

func task(freq engine.Frequency, everyN int, start, lastDone engine.Day) engine.Task {
	return engine.Task{
		ID:         "t1",
		Title:      "Vacuum",
		Frequency:  freq,
		EveryNDays: everyN,
		Start:      start,
		LastDone:   lastDone,
	}
}

// TestNextDue verifies the due-date derivation: last completion wins as the
// base, then the start date, then today; a never-done task with a start date
// today or later is due exactly on its start date.
func TestNextDue(t *testing.T) {
	today := engine.Day("2024-01-10")

	tests := []struct {
		name     string
		task     engine.Task
		expected engine.Day
		desc     string
	}{
		{
			name:     "completed task advances one interval from lastDone",
			task:     task(engine.FreqWeekly, 0, "2023-12-01", "2024-01-01"),
			expected: "2024-01-08",
			desc:     "lastDone 2024-01-01 + 7 days, regardless of today",
		},
		{
			name:     "never done with past start advances from start",
			task:     task(engine.FreqWeekly, 0, "2024-01-05", ""),
			expected: "2024-01-12",
			desc:     "start is in the past, so the interval applies",
		},
		{
			name:     "never done with start today is due on start",
			task:     task(engine.FreqDaily, 0, "2024-01-10", ""),
			expected: "2024-01-10",
			desc:     "a fresh task starting today is due immediately, not tomorrow",
		},
		{
			name:     "never done with future start is due on start",
			task:     task(engine.FreqMonthly, 0, "2024-02-01", ""),
			expected: "2024-02-01",
			desc:     "a future-dated task is not pushed out a full interval",
		},
		{
			name:     "no dates at all bases on today",
			task:     task(engine.FreqWeekly, 0, "", ""),
			expected: "2024-01-17",
			desc:     "today + 7 days",
		},
		{
			name:     "custom interval",
			task:     task(engine.FreqCustom, 4, "", "2024-01-08"),
			expected: "2024-01-12",
		},
		{
			name:     "custom unset uses the three day default",
			task:     task(engine.FreqCustom, 0, "", "2024-01-08"),
			expected: "2024-01-11",
		},
		{
			name:     "completion overrides a future start",
			task:     task(engine.FreqWeekly, 0, "2024-02-01", "2024-01-09"),
			expected: "2024-01-16",
			desc:     "once done, the start-date override no longer applies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.NextDue(tt.task, today), tt.desc)
		})
	}
}

// NextDue must be pure: the same inputs always produce the same day and the
// task is never mutated.
func TestNextDue_IsPure(t *testing.T) {
	today := engine.Day("2024-01-10")
	tk := task(engine.FreqWeekly, 0, "2024-01-01", "2024-01-03")
	before := tk

	first := engine.NextDue(tk, today)
	second := engine.NextDue(tk, today)

	assert.Equal(t, first, second)
	assert.Equal(t, before, tk, "NextDue must not mutate the task")
}

func TestClassify(t *testing.T) {
	today := engine.Day("2024-01-03")

	tests := []struct {
		name         string
		due          engine.Day
		expectStatus engine.Status
		expectDays   int
	}{
		{"two days overdue", "2024-01-01", engine.StatusOverdue, 2},
		{"one day overdue", "2024-01-02", engine.StatusOverdue, 1},
		{"due today", "2024-01-03", engine.StatusDueToday, 0},
		{"tomorrow", "2024-01-04", engine.StatusUpcoming, 1},
		{"next week", "2024-01-10", engine.StatusUpcoming, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, days := engine.Classify(tt.due, today)
			assert.Equal(t, tt.expectStatus, status)
			assert.Equal(t, tt.expectDays, days)
		})
	}
}

func TestDueToday_IncludesOverdue(t *testing.T) {
	today := engine.Day("2024-01-10")
	tasks := []engine.Task{
		{ID: "overdue", Due: "2024-01-01"},
		{ID: "today", Due: "2024-01-10"},
		{ID: "future", Due: "2024-01-11"},
	}

	bucket := engine.DueToday(tasks, today)

	assert.Len(t, bucket, 2)
	assert.Equal(t, "overdue", bucket[0].ID)
	assert.Equal(t, "today", bucket[1].ID)
}

func TestUpcoming_SortedAndCapped(t *testing.T) {
	today := engine.Day("2024-01-10")

	// 12 future tasks inserted out of order, plus one due today that must
	// not appear in the upcoming bucket.
	var tasks []engine.Task
	tasks = append(tasks, engine.Task{ID: "due-now", Due: "2024-01-10"})
	days := []string{"25", "13", "19", "11", "22", "15", "27", "12", "17", "21", "14", "29"}
	for i, d := range days {
		tasks = append(tasks, engine.Task{ID: string(rune('a' + i)), Due: engine.Day("2024-01-" + d)})
	}

	bucket := engine.Upcoming(tasks, today)

	assert.Len(t, bucket, 10, "upcoming bucket is capped")
	for i := 1; i < len(bucket); i++ {
		assert.LessOrEqual(t, string(bucket[i-1].Due), string(bucket[i].Due), "bucket must be sorted ascending")
	}
	assert.Equal(t, engine.Day("2024-01-11"), bucket[0].Due, "nearest task first")
	for _, tk := range bucket {
		assert.NotEqual(t, "due-now", tk.ID, "tasks due today belong to the today bucket only")
	}
}

func TestSortByDue_CopiesInput(t *testing.T) {
	tasks := []engine.Task{
		{ID: "b", Due: "2024-02-01"},
		{ID: "a", Due: "2024-01-01"},
	}

	sorted := engine.SortByDue(tasks)

	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", tasks[0].ID, "input slice must stay untouched")
}
