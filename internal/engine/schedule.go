package engine

import (
	"sort"

	"github.com/tartampluch/go-tidyhome/internal/config"
)

// Status buckets a task relative to today.
type Status int

const (
	StatusOverdue Status = iota
	StatusDueToday
	StatusUpcoming
)

// NextDue computes the task's next due date. The base is the last completion
// day, falling back to the start date, falling back to today; the candidate
// is one interval after the base. A task that has never been completed and
// whose explicit start date is today or later is due exactly on its start
// date, so a freshly created future-dated task is not pushed out a full
// interval.
//
// The function is pure: it never mutates the task and the same inputs always
// yield the same day.
func NextDue(t Task, today Day) Day {
	interval := IntervalDays(t.Frequency, t.EveryNDays)

	base := t.LastDone
	if base.IsZero() {
		base = t.Start
	}
	if base.IsZero() {
		base = today
	}

	due := AddDays(base, interval)
	if t.LastDone.IsZero() && !t.Start.IsZero() && DiffDays(t.Start, today) >= 0 {
		due = t.Start
	}
	return due
}

// Classify buckets a due date against today. The magnitude is the day count
// of the overdue or upcoming delta and is 0 for StatusDueToday.
func Classify(due, today Day) (Status, int) {
	switch {
	case due < today:
		return StatusOverdue, DiffDays(today, due)
	case due == today:
		return StatusDueToday, 0
	default:
		return StatusUpcoming, DiffDays(due, today)
	}
}

// DueToday returns the tasks whose cached due date is today or earlier.
// This is the "today" bucket contract: overdue tasks surface there too.
func DueToday(tasks []Task, today Day) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Due <= today {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns the tasks strictly later than today, sorted ascending by
// due date, capped at config.UpcomingLimit.
func Upcoming(tasks []Task, today Day) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Due > today {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Due < out[j].Due })
	if len(out) > config.UpcomingLimit {
		out = out[:config.UpcomingLimit]
	}
	return out
}

// SortByDue returns a copy of the tasks sorted ascending by due date.
func SortByDue(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Due < out[j].Due })
	return out
}
