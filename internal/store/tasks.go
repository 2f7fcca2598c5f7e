package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/balkashynov/jess/internal/models"
)

// TaskStore manages daily planner tasks for one user under KeyTasks.
// Tasks of other users share the key and are never touched.
type TaskStore struct {
	mu     sync.Mutex
	kv     Persistence
	userID string
}

func NewTaskStore(kv Persistence, userID string) *TaskStore {
	if userID == "" {
		userID = models.DefaultUserID
	}
	return &TaskStore{kv: kv, userID: userID}
}

// Add appends a task to date with the next priority for that day
func (s *TaskStore) Add(date, title string) (models.Task, error) {
	task := models.Task{
		ID:     models.NewID(),
		UserID: s.userID,
		Date:   date,
		Title:  strings.TrimSpace(title),
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := load[models.Task](s.kv, KeyTasks)
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if s.owns(t, date) {
			task.Priority++
		}
	}
	tasks = append(tasks, task)

	if err := save(s.kv, KeyTasks, tasks); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Toggle flips the completed flag of a task
func (s *TaskStore) Toggle(id string) (bool, error) {
	return s.mutate(id, func(tasks []models.Task, i int) []models.Task {
		tasks[i].Completed = !tasks[i].Completed
		return tasks
	})
}

// Remove deletes a task. Remaining priorities keep their gaps; ForDate
// orders by them regardless.
func (s *TaskStore) Remove(id string) (bool, error) {
	return s.mutate(id, func(tasks []models.Task, i int) []models.Task {
		return append(tasks[:i], tasks[i+1:]...)
	})
}

func (s *TaskStore) mutate(id string, fn func([]models.Task, int) []models.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := load[models.Task](s.kv, KeyTasks)
	if err != nil {
		return false, err
	}

	for i, t := range tasks {
		if t.ID == id && t.UserID == s.userID {
			tasks = fn(tasks, i)
			if err := save(s.kv, KeyTasks, tasks); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ForDate returns the user's tasks for date ordered by priority
func (s *TaskStore) ForDate(date string) ([]models.Task, error) {
	s.mu.Lock()
	all, err := load[models.Task](s.kv, KeyTasks)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0)
	for _, t := range all {
		if s.owns(t, date) {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority < tasks[j].Priority
	})
	return tasks, nil
}

// Reorder rewrites priorities for date so ids come first in the given
// order; tasks of that date not listed follow in their current order.
func (s *TaskStore) Reorder(date string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := load[models.Task](s.kv, KeyTasks)
	if err != nil {
		return err
	}

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	var day []int
	for i, t := range tasks {
		if s.owns(t, date) {
			day = append(day, i)
		}
	}
	for _, id := range ids {
		found := false
		for _, i := range day {
			if tasks[i].ID == id {
				found = true
				break
			}
		}
		if !found {
			return &models.ValidationError{Field: "id", Message: fmt.Sprintf("task '%s' is not planned for %s", id, date)}
		}
	}

	sort.SliceStable(day, func(a, b int) bool {
		ra, okA := rank[tasks[day[a]].ID]
		rb, okB := rank[tasks[day[b]].ID]
		switch {
		case okA && okB:
			return ra < rb
		case okA != okB:
			return okA
		default:
			return tasks[day[a]].Priority < tasks[day[b]].Priority
		}
	})
	for priority, i := range day {
		tasks[i].Priority = priority
	}

	return save(s.kv, KeyTasks, tasks)
}

func (s *TaskStore) owns(t models.Task, date string) bool {
	return t.UserID == s.userID && t.Date == date
}

// AssignmentStore keeps saved assignment analyses under KeyAssignments
type AssignmentStore struct {
	mu sync.Mutex
	kv Persistence
}

func NewAssignmentStore(kv Persistence) *AssignmentStore {
	return &AssignmentStore{kv: kv}
}

// Save appends an analysis, filling id, user and timestamp when absent
func (s *AssignmentStore) Save(a models.Assignment) (models.Assignment, error) {
	if a.ID == "" {
		a.ID = models.NewID()
	}
	if a.UserID == "" {
		a.UserID = models.DefaultUserID
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := load[models.Assignment](s.kv, KeyAssignments)
	if err != nil {
		return models.Assignment{}, err
	}
	saved = append(saved, a)
	if err := save(s.kv, KeyAssignments, saved); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// List returns saved analyses, oldest first
func (s *AssignmentStore) List() ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[models.Assignment](s.kv, KeyAssignments)
}
