package engine

import "github.com/google/uuid"

// Task is a recurring chore. Room and Person reference Room/Person entries
// by name; the empty string means unassigned and no referential integrity is
// enforced beyond the deletion cascade in the tracker.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Room   string `json:"room"`
	Person string `json:"person"`

	Frequency Frequency `json:"frequency"`
	// EveryNDays is meaningful only for FreqCustom; zero means unset.
	EveryNDays int `json:"everyNDays"`

	// Start is the earliest possible first due date; optional.
	Start Day `json:"start"`
	// LastDone is the calendar day of the most recent completion, or "" if
	// the task has never been completed.
	LastDone Day `json:"lastDone"`

	// Due is a cached, derived field: always recomputable from the policy
	// fields above via NextDue. It is refreshed on every render pass and is
	// never authoritative.
	Due Day `json:"due"`
}

// NewTask creates a task with a random unique identifier.
func NewTask(title, room, person string, f Frequency, everyNDays int, start Day) Task {
	return Task{
		ID:         uuid.NewString(),
		Title:      title,
		Room:       room,
		Person:     person,
		Frequency:  f,
		EveryNDays: everyNDays,
		Start:      start,
	}
}
