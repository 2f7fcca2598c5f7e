package store

import (
	"strings"
	"sync"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

// ClassStore manages the weekly timetable under KeyTimetable
type ClassStore struct {
	mu sync.Mutex
	kv Persistence
}

func NewClassStore(kv Persistence) *ClassStore {
	return &ClassStore{kv: kv}
}

// ClassFields lists the names SetField accepts
var ClassFields = []string{"courseCode", "courseName", "day", "timeStart", "timeEnd", "location", "type", "instructor"}

// Replace swaps the whole timetable, e.g. after an import
func (s *ClassStore) Replace(classes []models.ClassSession) ([]models.ClassSession, error) {
	prepared := make([]models.ClassSession, len(classes))
	for i, c := range classes {
		c.Normalize()
		prepared[i] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := save(s.kv, KeyTimetable, prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}

// Add appends a class
func (s *ClassStore) Add(c models.ClassSession) (models.ClassSession, error) {
	c.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := load[models.ClassSession](s.kv, KeyTimetable)
	if err != nil {
		return models.ClassSession{}, err
	}
	classes = append(classes, c)
	if err := save(s.kv, KeyTimetable, classes); err != nil {
		return models.ClassSession{}, err
	}
	return c, nil
}

// AddBlank puts a placeholder class at the top of the timetable
func (s *ClassStore) AddBlank() (models.ClassSession, error) {
	blank := models.NewBlankClass()

	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := load[models.ClassSession](s.kv, KeyTimetable)
	if err != nil {
		return models.ClassSession{}, err
	}
	classes = append([]models.ClassSession{blank}, classes...)
	if err := save(s.kv, KeyTimetable, classes); err != nil {
		return models.ClassSession{}, err
	}
	return blank, nil
}

// SetField edits one field of a class in place. An unknown id is a no-op;
// an unknown field name is a validation error.
func (s *ClassStore) SetField(id, field, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := load[models.ClassSession](s.kv, KeyTimetable)
	if err != nil {
		return false, err
	}

	i := indexOfClass(classes, id)
	if i < 0 {
		return false, nil
	}
	if err := setClassField(&classes[i], field, value); err != nil {
		return false, err
	}

	if err := save(s.kv, KeyTimetable, classes); err != nil {
		return false, err
	}
	return true, nil
}

func setClassField(c *models.ClassSession, field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case "courseCode":
		c.CourseCode = value
	case "courseName":
		c.CourseName = value
	case "day":
		c.Day = parser.NormalizeDayName(value)
	case "timeStart":
		c.TimeStart = value
	case "timeEnd":
		c.TimeEnd = value
	case "location":
		c.Location = value
	case "type":
		c.Type = value
	case "instructor":
		c.Instructor = value
	default:
		return &models.ValidationError{Field: field, Message: "unknown class field '" + field + "'. Use one of: " + strings.Join(ClassFields, ", ")}
	}
	return nil
}

// Remove deletes the class with id
func (s *ClassStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := load[models.ClassSession](s.kv, KeyTimetable)
	if err != nil {
		return false, err
	}

	i := indexOfClass(classes, id)
	if i < 0 {
		return false, nil
	}
	classes = append(classes[:i], classes[i+1:]...)

	if err := save(s.kv, KeyTimetable, classes); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the class with id
func (s *ClassStore) Get(id string) (models.ClassSession, bool, error) {
	classes, err := s.List()
	if err != nil {
		return models.ClassSession{}, false, err
	}
	if i := indexOfClass(classes, id); i >= 0 {
		return classes[i], true, nil
	}
	return models.ClassSession{}, false, nil
}

// List returns the timetable in insertion order
func (s *ClassStore) List() ([]models.ClassSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[models.ClassSession](s.kv, KeyTimetable)
}

func indexOfClass(classes []models.ClassSession, id string) int {
	for i, c := range classes {
		if c.ID == id {
			return i
		}
	}
	return -1
}
