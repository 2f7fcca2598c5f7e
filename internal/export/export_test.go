package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
)

func sampleClasses() []models.ClassSession {
	return []models.ClassSession{
		{ID: "c1", CourseCode: "CS101", CourseName: "Intro to CS", Day: "Monday", TimeStart: "09:00", TimeEnd: "11:00", Location: "Hall A", Type: "Lecture", Instructor: "Dr. Lim"},
		{ID: "c2", CourseCode: "MA201", CourseName: "Calculus II", Day: "Wednesday", TimeStart: "14:00", TimeEnd: "15:00", Location: "Room 3", Type: "Tutorial", Instructor: "Ms. Tan"},
	}
}

func TestCSV(t *testing.T) {
	want := "Course Code,Course Name,Day,Start,End,Location,Type,Instructor\n" +
		"CS101,Intro to CS,Monday,09:00,11:00,Hall A,Lecture,Dr. Lim\n" +
		"MA201,Calculus II,Wednesday,14:00,15:00,Room 3,Tutorial,Ms. Tan"
	if got := CSV(sampleClasses()); got != want {
		t.Errorf("CSV =\n%s\nwant\n%s", got, want)
	}

	if got := CSV(nil); got != "Course Code,Course Name,Day,Start,End,Location,Type,Instructor\n" {
		t.Errorf("empty CSV = %q", got)
	}

	// fields are not quoted
	withComma := []models.ClassSession{{CourseName: "Art, History"}}
	if got := CSV(withComma); !strings.HasSuffix(got, "\n,Art, History,,,,,,") {
		t.Errorf("CSV with comma = %q", got)
	}
}

func TestJSON(t *testing.T) {
	events := []models.CalendarEvent{{ID: "a", Title: "Q&A <live>", Date: "2024-03-01"}}
	data, err := JSON(events)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "[\n  {\n    \"id\": \"a\"") {
		t.Errorf("JSON indent = %q", s)
	}
	if !strings.Contains(s, "Q&A <live>") || strings.HasSuffix(s, "\n") {
		t.Errorf("JSON = %q", s)
	}
	var back []models.CalendarEvent
	if err := json.Unmarshal(data, &back); err != nil || back[0].Title != "Q&A <live>" {
		t.Errorf("decode: %v %+v", err, back)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := YAML(sampleClasses())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "course_code: CS101") {
		t.Errorf("yaml = %s", data)
	}

	back, err := ReadYAML(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0] != sampleClasses()[0] || back[1] != sampleClasses()[1] {
		t.Errorf("round trip = %+v", back)
	}

	hand := "classes:\n  - course_code: PH100\n    day: Friday\n"
	parsed, err := ReadYAML(strings.NewReader(hand))
	if err != nil {
		t.Fatal(err)
	}
	if parsed[0].ID == "" || parsed[0].Type != models.ClassLecture {
		t.Errorf("hand-written class not normalised: %+v", parsed[0])
	}

	if empty, err := ReadYAML(strings.NewReader("")); err != nil || len(empty) != 0 {
		t.Errorf("empty = %v, %v", empty, err)
	}
	if _, err := ReadYAML(strings.NewReader("classes: [")); err == nil {
		t.Error("expected error for broken yaml")
	}
}

func TestICS(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{ID: "e1", Title: "Quiz", Date: "2024-03-01", Time: "14:30", Category: models.CategoryStudy, Reminder: true, CreatedAt: created},
		{ID: "e2", Title: "Holiday", Date: "2024-03-02", Description: "no classes", ParentID: "e1", CreatedAt: created},
	}

	out, err := ICS(events, time.UTC)
	if err != nil {
		t.Fatal(err)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	parsed := cal.Events()
	if len(parsed) != 2 {
		t.Fatalf("events = %d", len(parsed))
	}

	if got := parsed[0].GetProperty(ical.ComponentPropertySummary).Value; got != "Quiz" {
		t.Errorf("summary = %q", got)
	}
	start, err := parsed[0].GetStartAt()
	if err != nil || !start.Equal(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("start = %v, %v", start, err)
	}
	if len(parsed[0].Alarms()) != 1 {
		t.Error("reminder event should carry an alarm")
	}

	allDay, err := parsed[1].GetAllDayStartAt()
	if err != nil || allDay.Format(models.DateLayout) != "2024-03-02" {
		t.Errorf("all-day start = %v, %v", allDay, err)
	}
	if p := parsed[1].GetProperty(ical.ComponentPropertyRelatedTo); p == nil || p.Value != "e1@jess" {
		t.Errorf("related-to = %+v", p)
	}

	if _, err := ICS([]models.CalendarEvent{{ID: "bad", Date: "soon"}}, time.UTC); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestTimetableICS(t *testing.T) {
	wed := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	out, err := TimetableICS(sampleClasses(), wed, 15, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "RRULE:FREQ=WEEKLY;COUNT=15") {
		t.Errorf("missing weekly rule:\n%s", out)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	evs := cal.Events()
	if len(evs) != 2 {
		t.Fatalf("events = %d", len(evs))
	}
	start, _ := evs[0].GetStartAt()
	if !start.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("monday class start = %v", start)
	}
	start, _ = evs[1].GetStartAt()
	if !start.Equal(time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("wednesday class start = %v", start)
	}
	if got := evs[0].GetProperty(ical.ComponentPropertyLocation).Value; got != "Hall A" {
		t.Errorf("location = %q", got)
	}
}

func TestPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), TimetablePDFName)
	if err := PDF(path, "", sampleClasses(), layout.DefaultWindow()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}

	empty := filepath.Join(t.TempDir(), "empty.pdf")
	if err := PDF(empty, "Week", nil, layout.DefaultWindow()); err != nil {
		t.Fatalf("empty timetable: %v", err)
	}
}

func TestEventsJSONName(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	if got := EventsJSONName(now); got != "jess_events_export_2024-03-05.json" {
		t.Errorf("EventsJSONName = %s", got)
	}
}
