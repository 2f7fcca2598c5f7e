// Package reminder finds today's reminder events and announces them on a
// cron schedule.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
	"github.com/balkashynov/jess/internal/store"
)

// DefaultSpec checks every 15 minutes
const DefaultSpec = "*/15 * * * *"

// Source lists stored events; *store.EventStore satisfies it
type Source interface {
	List(f store.Filter) ([]models.CalendarEvent, error)
}

// Due returns the reminder events dated today, all-day events first and
// the rest by time
func Due(events []models.CalendarEvent, today time.Time) []models.CalendarEvent {
	date := today.Format(models.DateLayout)

	var due []models.CalendarEvent
	for _, ev := range events {
		if ev.Reminder && ev.Date == date && ev.Type != models.EventCompleted {
			due = append(due, ev)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if (due[i].Time == "") != (due[j].Time == "") {
			return due[i].Time == ""
		}
		return parser.ParseClockTime(due[i].Time) < parser.ParseClockTime(due[j].Time)
	})
	return due
}

// Scheduler announces each due reminder once per process
type Scheduler struct {
	src    Source
	notify func([]models.CalendarEvent)
	now    func() time.Time
	cron   *cron.Cron

	mu   sync.Mutex
	seen map[string]bool
}

// NewScheduler validates spec (standard five-field cron) and registers the
// check. Call Start or Run to begin.
func NewScheduler(src Source, spec string, notify func([]models.CalendarEvent)) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	s := &Scheduler{
		src:    src,
		notify: notify,
		now:    time.Now,
		cron:   cron.New(),
		seen:   make(map[string]bool),
	}
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Check(); err != nil {
			appLog.Error("reminder check failed", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule reminders: %w", err)
	}
	return s, nil
}

// Check announces reminders due today that were not announced before and
// returns them
func (s *Scheduler) Check() ([]models.CalendarEvent, error) {
	today := s.now()
	events, err := s.src.List(store.Filter{Date: today.Format(models.DateLayout)})
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	s.mu.Lock()
	var fresh []models.CalendarEvent
	for _, ev := range Due(events, today) {
		if !s.seen[ev.ID] {
			s.seen[ev.ID] = true
			fresh = append(fresh, ev)
		}
	}
	s.mu.Unlock()

	appLog.Debug("reminder check", "date", today.Format(models.DateLayout), "due", len(fresh))
	if len(fresh) > 0 && s.notify != nil {
		s.notify(fresh)
	}
	return fresh, nil
}

// Start runs the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule; the returned context is done once a running
// check finishes
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Run checks once immediately, then on schedule until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.Check(); err != nil {
		return err
	}
	s.Start()
	<-ctx.Done()
	<-s.Stop().Done()
	return nil
}
