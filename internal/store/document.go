package store

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-tidyhome/internal/engine"
)

// Settings holds user preferences that travel with the document.
type Settings struct {
	// RemindAt is the daily reminder time as "HH:MM", or "" when disabled.
	RemindAt string `json:"remindAt"`
}

// Document is the single serializable unit of persisted state. Everything
// the tracker mutates lives here; save always writes the whole document.
type Document struct {
	Rooms    []string      `json:"rooms"`
	People   []string      `json:"people"`
	Tasks    []engine.Task `json:"tasks"`
	Settings Settings      `json:"settings"`
	Streak   engine.Streak `json:"streak"`
	Points   int           `json:"points"`
}

// DefaultDocument returns the documented empty-default document that
// substitutes a missing or corrupt persisted file.
func DefaultDocument() *Document {
	return &Document{
		Rooms:  []string{},
		People: []string{},
		Tasks:  []engine.Task{},
	}
}

// Normalize replaces nil collections with empty ones so the document always
// serializes the same shape regardless of how it was produced.
func (d *Document) Normalize() {
	if d.Rooms == nil {
		d.Rooms = []string{}
	}
	if d.People == nil {
		d.People = []string{}
	}
	if d.Tasks == nil {
		d.Tasks = []engine.Task{}
	}
}

// Validate checks the structural invariants an imported document must hold.
// Field-level oddities (unknown frequencies, unset everyNDays) are normalized
// by the engine instead of rejected here.
func (d *Document) Validate() error {
	if d.Points < 0 {
		return errors.New("points must be non-negative")
	}
	if d.Streak.Days < 0 {
		return errors.New("streak days must be non-negative")
	}
	if d.Streak.LastDay.IsZero() != (d.Streak.Days == 0) {
		return errors.New("streak day count and last-day must be set together")
	}
	for i, t := range d.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task %d has no id", i)
		}
		if t.Title == "" {
			return fmt.Errorf("task %q has no title", t.ID)
		}
	}
	return nil
}
