package remind

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-tidyhome/internal/config"
)

// Scheduler arms the daily reminder as a cron job in the host's location.
// There is at most one pending reminder: rescheduling removes the previous
// entry before adding the new one, so changing the time can never leave two
// jobs racing. The cron runner fires at-or-after the wall-clock target; no
// compensation is attempted for clock changes or process suspension.
type Scheduler struct {
	cron *cron.Cron

	mu    sync.Mutex
	entry cron.EntryID
	armed bool
}

// New creates a scheduler in the given location.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// Start launches the cron runner. Jobs fire on its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the runner and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Reschedule replaces the pending daily reminder. An empty time clears it;
// anything else must be "HH:MM" and arms a job firing daily at that time.
func (s *Scheduler) Reschedule(at string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		s.cron.Remove(s.entry)
		s.armed = false
	}

	log := slog.With(config.LogKeyComponent, config.CompRemind)
	if at == "" {
		log.Info(config.MsgReminderCleared)
		return nil
	}

	spec, err := buildDailySpec(at)
	if err != nil {
		return err
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return err
	}
	s.entry = id
	s.armed = true

	log.Info(config.MsgReminderArmed, config.LogKeyRemindAt, at)
	return nil
}

// Pending reports how many jobs are currently registered. Only used by tests
// to assert the replace-not-stack behavior.
func (s *Scheduler) Pending() int {
	return len(s.cron.Entries())
}

// buildDailySpec converts an "HH:MM" string to a standard 5-field cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("%s: %q", config.ErrTimeFormat, timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("%s: %q", config.ErrTimeFormat, timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%s: %q", config.ErrTimeFormat, timeStr)
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
