package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/balkashynov/jess/internal/models"
)

// EventStore manages calendar events under KeyEvents
type EventStore struct {
	mu sync.Mutex
	kv Persistence
}

func NewEventStore(kv Persistence) *EventStore {
	return &EventStore{kv: kv}
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Type     models.EventType
	Search   string // case-insensitive substring of the title
	Date     string
	Category models.Category
	From     string // inclusive ISO date bounds
	To       string
}

// EventPatch holds the fields an update may change; nil means unchanged
type EventPatch struct {
	Title       *string
	Date        *string
	Time        *string
	Description *string
	Category    *models.Category
	Type        *models.EventType
	IsRecurring *bool
	Reminder    *bool
}

// Empty reports whether the patch changes nothing
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Time == nil && p.Description == nil &&
		p.Category == nil && p.Type == nil && p.IsRecurring == nil && p.Reminder == nil
}

func (p EventPatch) apply(ev *models.CalendarEvent) {
	if p.Title != nil {
		ev.Title = strings.TrimSpace(*p.Title)
	}
	if p.Date != nil {
		ev.Date = *p.Date
	}
	if p.Time != nil {
		ev.Time = strings.TrimSpace(*p.Time)
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.Category != nil {
		ev.Category = *p.Category
	}
	if p.Type != nil {
		ev.Type = *p.Type
	}
	if p.IsRecurring != nil {
		ev.IsRecurring = *p.IsRecurring
	}
	if p.Reminder != nil {
		ev.Reminder = *p.Reminder
	}
}

// Create validates and stores a new event, filling id and defaults
func (s *EventStore) Create(ev models.CalendarEvent) (models.CalendarEvent, error) {
	created, err := s.CreateMany([]models.CalendarEvent{ev})
	if err != nil {
		return models.CalendarEvent{}, err
	}
	return created[0], nil
}

// CreateMany stores a batch with a single write. If any event is invalid
// nothing is written.
func (s *EventStore) CreateMany(evs []models.CalendarEvent) ([]models.CalendarEvent, error) {
	prepared := make([]models.CalendarEvent, len(evs))
	for i, ev := range evs {
		ev.Normalize()
		if err := ev.Validate(); err != nil {
			return nil, err
		}
		prepared[i] = ev
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	if err != nil {
		return nil, err
	}
	events = append(events, prepared...)
	if err := save(s.kv, KeyEvents, events); err != nil {
		return nil, err
	}
	return prepared, nil
}

// Update applies patch to the event with id. An unknown id is a no-op.
func (s *EventStore) Update(id string, patch EventPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	if err != nil {
		return false, err
	}

	i := indexOfEvent(events, id)
	if i < 0 {
		return false, nil
	}

	updated := events[i]
	patch.apply(&updated)
	if err := updated.Validate(); err != nil {
		return false, err
	}
	events[i] = updated

	if err := save(s.kv, KeyEvents, events); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the event with id. Occurrences pointing at it stay.
func (s *EventStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	if err != nil {
		return false, err
	}

	i := indexOfEvent(events, id)
	if i < 0 {
		return false, nil
	}
	events = append(events[:i], events[i+1:]...)

	if err := save(s.kv, KeyEvents, events); err != nil {
		return false, err
	}
	return true, nil
}

// Move changes only the date of an event, keeping its time. Moving to the
// same date or an unknown id is a no-op.
func (s *EventStore) Move(id, newDate string) (bool, error) {
	if !models.IsDate(newDate) {
		return false, &models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD, got '" + newDate + "'"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	if err != nil {
		return false, err
	}

	i := indexOfEvent(events, id)
	if i < 0 || events[i].Date == newDate {
		return false, nil
	}
	events[i].Date = newDate

	if err := save(s.kv, KeyEvents, events); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the event with id
func (s *EventStore) Get(id string) (models.CalendarEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	if err != nil {
		return models.CalendarEvent{}, false, err
	}
	if i := indexOfEvent(events, id); i >= 0 {
		return events[i], true, nil
	}
	return models.CalendarEvent{}, false, nil
}

// List returns the events matching f ordered by date. Events on the same
// date keep their insertion order.
func (s *EventStore) List(f Filter) ([]models.CalendarEvent, error) {
	s.mu.Lock()
	events, err := load[models.CalendarEvent](s.kv, KeyEvents)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if f.Type != "" && ev.Type != f.Type {
			continue
		}
		if f.Date != "" && ev.Date != f.Date {
			continue
		}
		if f.Category != "" && ev.Category != f.Category {
			continue
		}
		// ISO dates order lexically
		if f.From != "" && ev.Date < f.From {
			continue
		}
		if f.To != "" && ev.Date > f.To {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ev.Title), search) {
			continue
		}
		matched = append(matched, ev)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date < matched[j].Date
	})
	return matched, nil
}

func indexOfEvent(events []models.CalendarEvent, id string) int {
	for i, ev := range events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
