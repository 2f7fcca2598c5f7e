package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/config"
	"github.com/balkashynov/jess/internal/export"
	"github.com/balkashynov/jess/internal/layout"
	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
	"github.com/balkashynov/jess/internal/recurrence"
	"github.com/balkashynov/jess/internal/store"
	"github.com/balkashynov/jess/internal/timetable"
	"github.com/balkashynov/jess/internal/tui"
)

func timetableCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timetable",
		Aliases: []string{"tt"},
		Short:   "Import, view and export your class timetable",
	}
	cmd.AddCommand(timetableImportCmd(o))
	cmd.AddCommand(timetableListCmd(o))
	cmd.AddCommand(timetableShowCmd(o))
	cmd.AddCommand(timetableAddCmd(o))
	cmd.AddCommand(timetableEditCmd(o))
	cmd.AddCommand(timetableRemoveCmd(o))
	cmd.AddCommand(timetableExportCmd(o))
	cmd.AddCommand(timetableSyncCmd(o))
	return cmd
}

func timetableImportCmd(o *options) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "import [file|url]",
		Short: "Extract a timetable from schedule text with AI",
		Long: `Import replaces the stored timetable.

Sources:
  file.txt / file.html   Schedule text, HTML is reduced to its visible text
  https://...            A web page with your schedule
  file.yml               A timetable exported with 'jess timetable export --format yaml' (no AI)
  --text "..."           Pasted schedule text`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			ctx := cmd.Context()

			var classes []models.ClassSession
			switch {
			case len(args) == 1 && isYAMLFile(args[0]):
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				classes, err = export.ReadYAML(f)
				if err != nil {
					return err
				}

			default:
				if len(args) == 1 {
					var err error
					text, err = timetable.ReadSource(ctx, args[0])
					if err != nil {
						return err
					}
				}
				importer := timetable.NewImporter(app.AI)
				var err error
				classes, err = askClasses(app, cmd, importer, text)
				if err != nil {
					return err
				}
			}

			if err := timetable.RequireClasses(classes); err != nil {
				return err
			}
			stored, err := app.Classes.Replace(classes)
			if err != nil {
				return err
			}

			appLog.Info("timetable imported", "classes", len(stored))
			app.printf("✅ Imported %d classes\n", len(stored))
			if app.interactive() {
				return tui.RunTimetable(stored, app.Config.Palette(), app.Config.Window(), app.Config.Timetable.View == config.ViewVertical)
			}
			printClassList(app, stored, layout.Window{ShowWeekends: true, StartHour: 0, EndHour: 23})
			return nil
		}),
	}

	cmd.Flags().StringVar(&text, "text", "", "schedule text to import")
	return cmd
}

func askClasses(app *App, cmd *cobra.Command, importer *timetable.Importer, text string) ([]models.ClassSession, error) {
	var classes []models.ClassSession
	_, err := app.ask(cmd.Context(), "Reading your timetable", func(ctx context.Context) (string, error) {
		var err error
		classes, err = importer.Extract(ctx, text)
		return "", err
	})
	return classes, err
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// windowFlags holds the view flags shared by ls and show
type windowFlags struct {
	weekends bool
	hours    string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.weekends, "weekends", "w", false, "include Saturday and Sunday")
	cmd.Flags().StringVar(&f.hours, "hours", "", "hour range START-END, e.g. 7-22")
}

// window applies the flags over the configured window
func (f *windowFlags) window(cfg *config.Config) (layout.Window, error) {
	w := cfg.Window()
	if f.weekends {
		w.ShowWeekends = true
	}
	if f.hours == "" {
		return w, nil
	}
	start, end, ok := strings.Cut(f.hours, "-")
	s, err1 := strconv.Atoi(strings.TrimSpace(start))
	e, err2 := strconv.Atoi(strings.TrimSpace(end))
	if !ok || err1 != nil || err2 != nil {
		return layout.Window{}, &models.ValidationError{Field: "hours", Message: fmt.Sprintf("invalid hour range '%s'. Use START-END, e.g. 8-20", f.hours)}
	}
	return layout.NewWindow(w.ShowWeekends, s, e)
}

func timetableListCmd(o *options) *cobra.Command {
	var wf windowFlags

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List classes by day",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			classes, err := app.Classes.List()
			if err != nil {
				return err
			}
			if len(classes) == 0 {
				app.printf("No classes yet. Use 'jess timetable import' or 'jess timetable add' to create your timetable.\n")
				return nil
			}
			w, err := wf.window(app.Config)
			if err != nil {
				return err
			}
			w.StartHour, w.EndHour = 0, 23
			printClassList(app, classes, w)
			return nil
		}),
	}

	wf.register(cmd)
	return cmd
}

func printClassList(app *App, classes []models.ClassSession, w layout.Window) {
	for _, group := range layout.Vertical(classes, w) {
		app.printf("%s\n", group.Day)
		for _, c := range group.Classes {
			app.printf("  %-8s %s-%s  %-8s %-30s %-9s %s\n",
				shortID(c.ID), c.TimeStart, c.TimeEnd, c.CourseCode, truncate(c.CourseName, 30), c.Type, c.Location)
		}
	}
}

func timetableShowCmd(o *options) *cobra.Command {
	var (
		wf       windowFlags
		vertical bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weekly timetable grid",
		Long: `Show the weekly timetable. Interactive keys:
  ↑/↓     select a class      enter  details
  v       grid / list view    w      weekends
  r       cycle hour ranges   q      quit`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			classes, err := app.Classes.List()
			if err != nil {
				return err
			}
			if err := timetable.RequireClasses(classes); err != nil {
				return err
			}
			w, err := wf.window(app.Config)
			if err != nil {
				return err
			}
			vertical = vertical || app.Config.Timetable.View == config.ViewVertical

			if app.interactive() {
				return tui.RunTimetable(classes, app.Config.Palette(), w, vertical)
			}
			if vertical {
				printClassList(app, classes, w)
				return nil
			}
			printGrid(app, layout.Horizontal(classes, w))
			return nil
		}),
	}

	wf.register(cmd)
	cmd.Flags().BoolVar(&vertical, "vertical", false, "list view instead of the grid")
	return cmd
}

// printGrid renders the horizontal layout as a plain text table
func printGrid(app *App, grid layout.Grid) {
	const col = 12
	app.printf("%-6s", "")
	for _, day := range grid.Days {
		app.printf("%-*s", col, day[:3])
	}
	app.printf("\n")

	for _, row := range grid.Rows {
		app.printf("%-6s", row.Label)
		for _, cell := range row.Cells {
			label := "·"
			if len(cell.Blocks) > 0 {
				label = cell.Blocks[0].Class.CourseCode
				if len(cell.Blocks) > 1 {
					label += fmt.Sprintf("+%d", len(cell.Blocks)-1)
				}
			}
			app.printf("%-*s", col, truncate(label, col-1))
		}
		app.printf("\n")
	}
}

// classFlags are the editable class fields
type classFlags struct {
	code, name, day, start, end, location, kind, instructor string
}

func (f *classFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "course code, e.g. CS101")
	cmd.Flags().StringVar(&f.name, "name", "", "course name")
	cmd.Flags().StringVar(&f.day, "day", "", "day of week")
	cmd.Flags().StringVar(&f.start, "start", "", "start time, e.g. 09:00 or 9am")
	cmd.Flags().StringVar(&f.end, "end", "", "end time")
	cmd.Flags().StringVar(&f.location, "location", "", "room or building")
	cmd.Flags().StringVar(&f.kind, "type", "", "Lecture, Tutorial or Lab")
	cmd.Flags().StringVar(&f.instructor, "instructor", "", "instructor name")
}

// changed reports whether any class flag was given
func (f *classFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"code", "name", "day", "start", "end", "location", "type", "instructor"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// class builds a manually entered class, normalising every field
func (f *classFlags) class() (models.ClassSession, error) {
	code, err := parser.NormalizeCourseCode(f.code)
	if err != nil {
		return models.ClassSession{}, &models.ValidationError{Field: "courseCode", Message: err.Error()}
	}
	if strings.TrimSpace(f.day) == "" {
		return models.ClassSession{}, &models.ValidationError{Field: "day", Message: "day is required"}
	}
	day := parser.NormalizeDayName(f.day)

	c := models.ClassSession{
		CourseCode: code,
		CourseName: strings.TrimSpace(f.name),
		Day:        day,
		Location:   strings.TrimSpace(f.location),
		Type:       strings.TrimSpace(f.kind),
		Instructor: strings.TrimSpace(f.instructor),
	}
	if c.TimeStart, err = parser.NormalizeClockTime(f.start); err != nil {
		return models.ClassSession{}, &models.ValidationError{Field: "timeStart", Message: err.Error()}
	}
	if c.TimeEnd, err = parser.NormalizeClockTime(f.end); err != nil {
		return models.ClassSession{}, &models.ValidationError{Field: "timeEnd", Message: err.Error()}
	}
	if err := c.ValidateTimes(); err != nil {
		return models.ClassSession{}, err
	}
	c.Normalize()
	return c, nil
}

func timetableAddCmd(o *options) *cobra.Command {
	var cf classFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a class",
		Long: `Add a class from flags. With no flags a placeholder "New Class" row is
added on Monday 08:00-09:00 for you to edit.

Example:
  jess timetable add --code CS101 --name "Intro to CS" --day mon --start 9am --end 10:30 --location "Hall A"`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			if !cf.changed(cmd) {
				c, err := app.Classes.AddBlank()
				if err != nil {
					return err
				}
				app.printf("✅ Added placeholder class %s. Edit it with 'jess timetable edit %s <field> <value>'\n", shortID(c.ID), shortID(c.ID))
				return nil
			}

			c, err := cf.class()
			if err != nil {
				return err
			}
			c, err = app.Classes.Add(c)
			if err != nil {
				return err
			}
			app.printf("✅ Added %s %s on %s %s-%s (%s)\n", c.CourseCode, c.CourseName, c.Day, c.TimeStart, c.TimeEnd, shortID(c.ID))
			return nil
		}),
	}

	cf.register(cmd)
	return cmd
}

func classID(app *App, prefix string) (string, error) {
	classes, err := app.Classes.List()
	if err != nil {
		return "", err
	}
	ids := make([]string, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
	}
	return resolveID("class", prefix, ids)
}

func timetableEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <field> <value>",
		Short: "Change one field of a class",
		Long: "Fields: " + strings.Join(store.ClassFields, ", ") + `

Example:
  jess timetable edit 3f2a9c1b location "Room 204"`,
		Args: cobra.ExactArgs(3),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := classID(app, args[0])
			if err != nil {
				return err
			}
			value := args[2]
			switch args[1] {
			case "timeStart", "timeEnd":
				if value, err = parser.NormalizeClockTime(value); err != nil {
					return &models.ValidationError{Field: args[1], Message: err.Error()}
				}
			case "courseCode":
				if value, err = parser.NormalizeCourseCode(value); err != nil {
					return &models.ValidationError{Field: args[1], Message: err.Error()}
				}
			}
			if _, err := app.Classes.SetField(id, args[1], value); err != nil {
				return err
			}
			app.printf("✅ Updated %s of class %s\n", args[1], shortID(id))
			return nil
		}),
	}
}

func timetableRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a class",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := classID(app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Classes.Remove(id); err != nil {
				return err
			}
			app.printf("🗑️  Removed class %s\n", shortID(id))
			return nil
		}),
	}
}

func timetableExportCmd(o *options) *cobra.Command {
	var (
		format string
		out    string
		weeks  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timetable as CSV, YAML, PDF or iCalendar",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			classes, err := app.Classes.List()
			if err != nil {
				return err
			}
			if err := timetable.RequireClasses(classes); err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "csv":
				out = orDefault(out, export.TimetableCSVName)
				data = []byte(export.CSV(classes))
			case "yaml", "yml":
				out = orDefault(out, export.TimetableYAMLName)
				if data, err = export.YAML(classes); err != nil {
					return err
				}
			case "ics", "ical":
				out = orDefault(out, export.TimetableICSName)
				if weeks <= 0 {
					weeks = app.Config.Timetable.SemesterWeeks
				}
				ics, err := export.TimetableICS(classes, now(), weeks, nil)
				if err != nil {
					return err
				}
				data = []byte(ics)
			case "pdf":
				out = orDefault(out, export.TimetablePDFName)
				w := app.Config.Window()
				w.ShowWeekends = true
				if err := export.PDF(out, "Timetable", classes, w); err != nil {
					return err
				}
				app.printf("✅ Exported %d classes to %s\n", len(classes), out)
				return nil
			default:
				return &models.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format '%s'. Use: csv, yaml, pdf, ics", format)}
			}

			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			app.printf("✅ Exported %d classes to %s\n", len(classes), out)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, yaml, pdf or ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default jess_timetable.<ext>)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "weeks of recurrence for ics (default timetable.semester_weeks)")
	return cmd
}

func timetableSyncCmd(o *options) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy every class into the event calendar for the semester",
		Long: `Sync creates one study event per class per week, starting from each
class's next occurrence. Running it twice creates duplicates.`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			classes, err := app.Classes.List()
			if err != nil {
				return err
			}
			if err := timetable.RequireClasses(classes); err != nil {
				return err
			}
			if weeks <= 0 {
				weeks = app.Config.Timetable.SemesterWeeks
			}

			events, err := recurrence.Semester(classes, now(), weeks, models.NewID)
			if err != nil {
				return err
			}
			created, err := app.Events.CreateMany(events)
			if err != nil {
				return err
			}

			appLog.Info("timetable synced", "classes", len(classes), "weeks", weeks, "events", len(created))
			app.printf("✅ Added %d events (%d classes × %d weeks) to your calendar\n", len(created), len(classes), weeks)
			return nil
		}),
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "weeks to generate (default timetable.semester_weeks)")
	return cmd
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
