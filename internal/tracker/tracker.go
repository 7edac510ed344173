package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-tidyhome/internal/config"
	"github.com/tartampluch/go-tidyhome/internal/engine"
	"github.com/tartampluch/go-tidyhome/internal/store"
)

// Notifier shows a titled message to the user. Implementations are
// best-effort: they never block and never return an error, silently doing
// nothing when the host lacks the capability.
type Notifier interface {
	Notify(title, body string)
}

// Saver persists the whole document. Invoked fire-and-forget after every
// mutation; failures are logged, not surfaced.
type Saver interface {
	Save(doc *store.Document) error
}

// Tracker owns the application state. Every mutation goes through one of its
// operations; nothing else writes to the document. The mutex exists because
// UI callbacks and the reminder timer run on different goroutines, not
// because any operation blocks.
type Tracker struct {
	mu       sync.Mutex
	doc      *store.Document
	clock    engine.Clock
	saver    Saver
	notifier Notifier

	// FormatCompleted builds the localized completion notification.
	// The config fallback strings are used when nil.
	FormatCompleted func(title string) (string, string)
}

// New wires a tracker over an already-loaded document.
func New(doc *store.Document, clock engine.Clock, saver Saver, notifier Notifier) *Tracker {
	doc.Normalize()
	return &Tracker{
		doc:      doc,
		clock:    clock,
		saver:    saver,
		notifier: notifier,
	}
}

// persist saves the document. Must be called with the lock held.
func (tr *Tracker) persist() {
	if tr.saver == nil {
		return
	}
	if err := tr.saver.Save(tr.doc); err != nil {
		slog.Error(config.MsgDocSaveFail,
			config.LogKeyComponent, config.CompTracker,
			config.LogKeyError, err)
	}
}

// refreshDue recomputes every cached due date. Must hold the lock.
func (tr *Tracker) refreshDue(today engine.Day) {
	for i := range tr.doc.Tasks {
		tr.doc.Tasks[i].Due = engine.NextDue(tr.doc.Tasks[i], today)
	}
}

// Refresh recomputes all cached due dates against the current day and
// persists the result. The UI calls it on every render pass.
func (tr *Tracker) Refresh() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.refreshDue(engine.Today(tr.clock))
	tr.persist()
	slog.Debug(config.MsgDueRefreshed,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyCount, len(tr.doc.Tasks))
}

// Buckets returns the display buckets: tasks due today or earlier, the
// upcoming tasks sorted by due date, and all tasks sorted by due date.
// Cached due dates are refreshed first so the buckets never go stale.
func (tr *Tracker) Buckets() (today, upcoming, all []engine.Task) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	day := engine.Today(tr.clock)
	tr.refreshDue(day)
	tasks := make([]engine.Task, len(tr.doc.Tasks))
	copy(tasks, tr.doc.Tasks)
	return engine.DueToday(tasks, day), engine.Upcoming(tasks, day), engine.SortByDue(tasks)
}

// DueCount returns how many tasks are due today or overdue.
func (tr *Tracker) DueCount() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	day := engine.Today(tr.clock)
	tr.refreshDue(day)
	return len(engine.DueToday(tr.doc.Tasks, day))
}

// -----------------------------------------------------------------------------
// Rooms & People
// -----------------------------------------------------------------------------

// AddRoom inserts a room name, enforcing set semantics. Returns false for
// blank or duplicate names.
func (tr *Tracker) AddRoom(name string) bool {
	return tr.addName(&tr.doc.Rooms, name)
}

// AddPerson inserts a person name, enforcing set semantics.
func (tr *Tracker) AddPerson(name string) bool {
	return tr.addName(&tr.doc.People, name)
}

func (tr *Tracker) addName(set *[]string, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, existing := range *set {
		if existing == name {
			return false
		}
	}
	*set = append(*set, name)
	tr.persist()
	return true
}

// DeleteRoom removes a room and, in the same update, blanks the room
// reference on every task that pointed at it. The tasks themselves survive.
func (tr *Tracker) DeleteRoom(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.Rooms = removeName(tr.doc.Rooms, name)
	for i := range tr.doc.Tasks {
		if tr.doc.Tasks[i].Room == name {
			tr.doc.Tasks[i].Room = ""
		}
	}
	tr.persist()
	slog.Info(config.MsgRoomDeleted,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyRoom, name)
}

// DeletePerson removes a person and blanks the assignment on affected tasks.
func (tr *Tracker) DeletePerson(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.People = removeName(tr.doc.People, name)
	for i := range tr.doc.Tasks {
		if tr.doc.Tasks[i].Person == name {
			tr.doc.Tasks[i].Person = ""
		}
	}
	tr.persist()
	slog.Info(config.MsgPersonDeleted,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyPerson, name)
}

func removeName(set []string, name string) []string {
	out := set[:0]
	for _, existing := range set {
		if existing != name {
			out = append(out, existing)
		}
	}
	return out
}

// Rooms returns a copy of the room names.
func (tr *Tracker) Rooms() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.doc.Rooms...)
}

// People returns a copy of the person names.
func (tr *Tracker) People() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.doc.People...)
}

// MergePeople adds any names not already present, preserving set semantics.
// Returns the number of names actually added. Used by the vCard import.
func (tr *Tracker) MergePeople(names []string) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	existing := make(map[string]struct{}, len(tr.doc.People))
	for _, p := range tr.doc.People {
		existing[p] = struct{}{}
	}
	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := existing[name]; ok {
			continue
		}
		tr.doc.People = append(tr.doc.People, name)
		existing[name] = struct{}{}
		added++
	}
	if added > 0 {
		tr.persist()
	}
	return added
}

// -----------------------------------------------------------------------------
// Tasks
// -----------------------------------------------------------------------------

// AddTask creates a recurring chore. The start date defaults to today when
// unset, matching how a freshly created task should be due immediately on
// its first interval.
func (tr *Tracker) AddTask(title, room, person string, f engine.Frequency, everyNDays int, start engine.Day) (engine.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return engine.Task{}, errors.New(config.ErrTitleRequired)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	today := engine.Today(tr.clock)
	if start.IsZero() {
		start = today
	}
	t := engine.NewTask(title, room, person, f, everyNDays, start)
	t.Due = engine.NextDue(t, today)
	tr.doc.Tasks = append(tr.doc.Tasks, t)
	tr.persist()

	slog.Info(config.MsgTaskAdded,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyTaskID, t.ID,
		config.LogKeyTitle, t.Title,
		config.LogKeyDue, string(t.Due))
	return t, nil
}

// UpdateTask edits a task's policy fields in place. The identifier and
// completion history are untouched; the cached due date is recomputed.
func (tr *Tracker) UpdateTask(id, title, room, person string, f engine.Frequency, everyNDays int, start engine.Day) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New(config.ErrTitleRequired)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	t := tr.find(id)
	if t == nil {
		return errors.New(config.ErrTaskNotFound)
	}
	t.Title = title
	t.Room = room
	t.Person = person
	t.Frequency = f
	t.EveryNDays = everyNDays
	t.Start = start
	t.Due = engine.NextDue(*t, engine.Today(tr.clock))
	tr.persist()
	return nil
}

// DeleteTask removes a task unconditionally. Unknown ids are a no-op.
func (tr *Tracker) DeleteTask(id string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := tr.doc.Tasks[:0]
	for _, t := range tr.doc.Tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	tr.doc.Tasks = out
	tr.persist()
	slog.Info(config.MsgTaskDeleted,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyTaskID, id)
}

// Complete records a completion event as one logical transaction: the task's
// lastDone becomes today, its due date is recomputed, points increment by
// one, the streak updates, the document is saved, and finally the user is
// notified. The same "today" value feeds every step.
func (tr *Tracker) Complete(id string) error {
	tr.mu.Lock()

	t := tr.find(id)
	if t == nil {
		tr.mu.Unlock()
		return errors.New(config.ErrTaskNotFound)
	}

	today := engine.Today(tr.clock)
	t.LastDone = today
	t.Due = engine.NextDue(*t, today)
	tr.doc.Points++
	tr.doc.Streak.Record(today)
	tr.persist()

	title := t.Title
	slog.Info(config.MsgTaskCompleted,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyTaskID, id,
		config.LogKeyTitle, title,
		config.LogKeyDue, string(t.Due),
		config.LogKeyPoints, tr.doc.Points,
		config.LogKeyStreak, tr.doc.Streak.Days)
	tr.mu.Unlock()

	// Notification happens outside the lock; the notifier may call back in.
	if tr.notifier != nil {
		notifTitle, notifBody := config.FallbackCompletedTitle, fmt.Sprintf(config.FormatCompletedBody, title)
		if tr.FormatCompleted != nil {
			notifTitle, notifBody = tr.FormatCompleted(title)
		}
		tr.notifier.Notify(notifTitle, notifBody)
	}
	return nil
}

// find returns a pointer into the task slice. Must hold the lock.
func (tr *Tracker) find(id string) *engine.Task {
	for i := range tr.doc.Tasks {
		if tr.doc.Tasks[i].ID == id {
			return &tr.doc.Tasks[i]
		}
	}
	return nil
}

// seedTasks are the starter chores offered for an empty household.
var seedTasks = []struct {
	title string
	room  string
	freq  engine.Frequency
}{
	{"Quick tidy – living room", "Living Room", engine.FreqDaily},
	{"Wipe kitchen counters", "Kitchen", engine.FreqDaily},
	{"Vacuum main floor", "Hallway", engine.FreqWeekly},
	{"Bathrooms – sinks & mirrors", "Bathroom", engine.FreqWeekly},
	{"Change bed sheets", "Bedroom", engine.FreqBiweekly},
	{"Deep clean fridge", "Kitchen", engine.FreqMonthly},
}

// SeedExamples appends a handful of starter tasks, all starting today.
func (tr *Tracker) SeedExamples() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	today := engine.Today(tr.clock)
	for _, seed := range seedTasks {
		t := engine.NewTask(seed.title, seed.room, "", seed.freq, 0, today)
		t.Due = engine.NextDue(t, today)
		tr.doc.Tasks = append(tr.doc.Tasks, t)
	}
	tr.persist()
}

// -----------------------------------------------------------------------------
// Settings, streak & points
// -----------------------------------------------------------------------------

// RemindAt returns the configured daily reminder time, "" when disabled.
func (tr *Tracker) RemindAt() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.doc.Settings.RemindAt
}

// SetRemindAt stores the reminder time. Empty clears the reminder; anything
// else must parse as HH:MM.
func (tr *Tracker) SetRemindAt(at string) error {
	if at != "" {
		if _, err := time.Parse(config.TimeFormatHHMM, at); err != nil {
			return errors.New(config.ErrTimeFormat)
		}
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc.Settings.RemindAt = at
	tr.persist()
	return nil
}

// Points returns the completion counter.
func (tr *Tracker) Points() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.doc.Points
}

// Streak returns the current streak record.
func (tr *Tracker) Streak() engine.Streak {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.doc.Streak
}

// -----------------------------------------------------------------------------
// Export / Import
// -----------------------------------------------------------------------------

// Export serializes the current document.
func (tr *Tracker) Export() ([]byte, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return store.Export(tr.doc)
}

// Import parses a payload and, only on success, wholesale-replaces the
// current document. On failure the in-memory state is untouched and the
// error is returned for the UI to surface.
func (tr *Tracker) Import(data []byte) error {
	doc, err := store.Import(data)
	if err != nil {
		slog.Warn(config.MsgImportRejected,
			config.LogKeyComponent, config.CompTracker,
			config.LogKeyError, err)
		return err
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.doc = doc
	tr.refreshDue(engine.Today(tr.clock))
	tr.persist()
	slog.Info(config.MsgImportReplaced,
		config.LogKeyComponent, config.CompTracker,
		config.LogKeyCount, len(doc.Tasks))
	return nil
}
