package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/export"
	"github.com/balkashynov/jess/internal/layout"
	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
	"github.com/balkashynov/jess/internal/recurrence"
	"github.com/balkashynov/jess/internal/store"
	"github.com/balkashynov/jess/internal/tui"
)

func eventCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"ev"},
		Short:   "Plan future events, deadlines and reminders",
	}
	cmd.AddCommand(eventAddCmd(o))
	cmd.AddCommand(eventListCmd(o))
	cmd.AddCommand(eventSearchCmd(o))
	cmd.AddCommand(eventEditCmd(o))
	cmd.AddCommand(eventMoveCmd(o))
	cmd.AddCommand(eventRemoveCmd(o))
	cmd.AddCommand(eventDoneCmd(o, true))
	cmd.AddCommand(eventDoneCmd(o, false))
	cmd.AddCommand(eventExportCmd(o))
	cmd.AddCommand(eventCalendarCmd(o))
	return cmd
}

// eventFlags are the fields settable from the command line
type eventFlags struct {
	date, clock, category, description string
	recurring, reminder                 bool
	weeks                               int
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, 3 days")
	cmd.Flags().StringVarP(&f.clock, "time", "t", "", "time: 14:00, 2pm")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "study, work, personal or other")
	cmd.Flags().StringVar(&f.description, "desc", "", "description")
	cmd.Flags().BoolVar(&f.recurring, "recurring", false, "repeat weekly")
	cmd.Flags().BoolVar(&f.reminder, "reminder", false, "remind me on the day")
}

func eventAddCmd(o *options) *cobra.Command {
	var (
		ef          eventFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add [event description]",
		Short: "Add an event",
		Long: `Add an event to your calendar.

Modes:
  Interactive: jess event add -i (or just 'jess event add' with no arguments)
  Quick: jess event add "Quiz prep" --date tomorrow --time 2pm
  Smart parsing: jess event add "Quiz prep #study at:14:00 on:tomorrow +weekly !remind"

Smart parsing syntax:
  #category     study, work, personal or other
  at:TIME       14:00, 2pm, 9:30am
  on:DATE       yyyy-mm-dd, dd/mm/yyyy, today, tomorrow
  in:N days     relative date (in:3days, in:2w)
  +weekly       repeat weekly for events.recurring_weeks more weeks
  !remind       show in 'jess remind' on the day`,
		Args: cobra.ArbitraryArgs,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			if len(args) == 0 && app.interactive() {
				interactive = true
			}

			quick := parser.ParseQuickEvent(strings.Join(args, " "), now())
			ev, err := ef.apply(cmd, quick)

			// Fall back to the form when parsing found problems
			if interactive || len(quick.Errors) > 0 || err != nil {
				if !app.interactive() {
					if len(quick.Errors) > 0 {
						return &models.ValidationError{Field: "event", Message: strings.Join(quick.Errors, ", ")}
					}
					if err != nil {
						return err
					}
					return errors.New("interactive mode needs a terminal; pass the event as arguments instead")
				}
				if len(args) > 0 && len(quick.Errors) > 0 {
					app.printf("⚠️  Found issues with parsing: %s\n", strings.Join(quick.Errors, ", "))
					app.printf("Opening interactive mode for confirmation...\n")
				}
				_, _, err := tui.RunEventForm(ev, false, func(ev models.CalendarEvent) (models.CalendarEvent, error) {
					return saveNewEvent(app, ev, ef.weeks)
				})
				return err
			}

			_, err = saveNewEvent(app, ev, ef.weeks)
			return err
		}),
	}

	ef.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive mode with TUI")
	cmd.Flags().IntVar(&ef.weeks, "weeks", -1, "extra weekly copies for recurring events (default events.recurring_weeks)")
	return cmd
}

// apply merges the parsed quick syntax with explicit flags; flags win.
// The returned event is filled even when err is set, so the form can
// show it.
func (f *eventFlags) apply(cmd *cobra.Command, q parser.QuickEvent) (models.CalendarEvent, error) {
	ev := models.NewCalendarEvent(q.Title, q.Date)
	ev.Time = q.Time
	if q.Category != "" {
		ev.Category = models.Category(q.Category)
	}
	ev.IsRecurring = q.Recurring
	ev.Reminder = q.Reminder

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if cmd.Flags().Changed("date") {
		if d, err := parser.ParseDate(f.date, now()); err != nil {
			keep(&models.ValidationError{Field: "date", Message: err.Error()})
		} else {
			ev.Date = d
		}
	}
	if cmd.Flags().Changed("time") {
		if f.clock == "" {
			ev.Time = ""
		} else if t, err := parser.NormalizeClockTime(f.clock); err != nil {
			keep(&models.ValidationError{Field: "time", Message: err.Error()})
		} else {
			ev.Time = t
		}
	}
	if cmd.Flags().Changed("category") {
		c := models.Category(strings.ToLower(strings.TrimSpace(f.category)))
		if !c.Valid() {
			keep(&models.ValidationError{Field: "category", Message: fmt.Sprintf("invalid category '%s'. Use: study, work, personal, other", f.category)})
		} else {
			ev.Category = c
		}
	}
	if cmd.Flags().Changed("desc") {
		ev.Description = f.description
	}
	if cmd.Flags().Changed("recurring") {
		ev.IsRecurring = f.recurring
	}
	if cmd.Flags().Changed("reminder") {
		ev.Reminder = f.reminder
	}
	if firstErr == nil {
		firstErr = ev.Validate()
	}
	return ev, firstErr
}

// saveNewEvent stores ev, expanding a recurring event into weekly copies
func saveNewEvent(app *App, ev models.CalendarEvent, weeks int) (models.CalendarEvent, error) {
	if err := ev.Validate(); err != nil {
		return models.CalendarEvent{}, err
	}

	batch := []models.CalendarEvent{ev}
	if ev.IsRecurring {
		if weeks < 0 {
			weeks = app.Config.Events.RecurringWeeks
		}
		var err error
		batch, err = recurrence.Weekly(ev, weeks, models.NewID)
		if err != nil {
			return models.CalendarEvent{}, err
		}
	}

	created, err := app.Events.CreateMany(batch)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	first := created[0]
	app.printf("✅ Added event %s: %s\n", shortID(first.ID), first.Title)
	app.printf("  Date: %s %s\n", first.Date, parser.FormatRelativeDate(first.Date, now()))
	if first.Time != "" {
		app.printf("  Time: %s\n", first.Time)
	}
	app.printf("  Category: %s\n", first.Category)
	if len(created) > 1 {
		app.printf("  Repeats weekly until %s (%d events)\n", created[len(created)-1].Date, len(created))
	}
	if first.Reminder {
		app.printf("  Reminder: on\n")
	}
	appLog.Debug("events created", "count", len(created), "parent", first.ID)
	return first, nil
}

// filterFlags narrow an event listing
type filterFlags struct {
	kind, category, date, from, to string
	upcoming, json                 bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "type", "", "future, assignment or completed")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "study, work, personal or other")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "only this date")
	cmd.Flags().StringVar(&f.from, "from", "", "first date")
	cmd.Flags().StringVar(&f.to, "to", "", "last date")
	cmd.Flags().BoolVar(&f.upcoming, "upcoming", false, "only today and later")
	cmd.Flags().BoolVar(&f.json, "json", false, "JSON output")
}

func (f *filterFlags) filter() (store.Filter, error) {
	out := store.Filter{
		Type:     models.EventType(strings.ToLower(f.kind)),
		Category: models.Category(strings.ToLower(f.category)),
	}
	for _, d := range []struct {
		dst  *string
		src  string
		name string
	}{{&out.Date, f.date, "date"}, {&out.From, f.from, "from"}, {&out.To, f.to, "to"}} {
		if d.src == "" {
			continue
		}
		v, err := parser.ParseDate(d.src, now())
		if err != nil {
			return store.Filter{}, &models.ValidationError{Field: d.name, Message: err.Error()}
		}
		*d.dst = v
	}
	if f.upcoming && out.From == "" {
		out.From = now().Format(models.DateLayout)
	}
	return out, nil
}

func eventListCmd(o *options) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List events by date",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			events, err := app.Events.List(f)
			if err != nil {
				return err
			}
			if ff.json {
				return printJSON(app, events)
			}
			if len(events) == 0 {
				app.printf("No events found. Use 'jess event add \"Quiz prep on:tomorrow\"' to create one.\n")
				return nil
			}
			printEventTable(app, events)
			return nil
		}),
	}

	ff.register(cmd)
	return cmd
}

func printJSON(app *App, v any) error {
	data, err := export.JSON(v)
	if err != nil {
		return err
	}
	app.printf("%s\n", data)
	return nil
}

func printEventTable(app *App, events []models.CalendarEvent) {
	app.printf("%-8s %-10s %-5s %-9s %-10s %s\n", "ID", "DATE", "TIME", "CATEGORY", "TYPE", "TITLE")
	app.printf("%s\n", strings.Repeat("-", 80))
	for _, ev := range events {
		clock := ev.Time
		if clock == "" {
			clock = "-"
		}
		flags := ""
		if ev.IsRecurring || ev.ParentID != "" {
			flags += " ↻"
		}
		if ev.Reminder {
			flags += " 🔔"
		}
		app.printf("%-8s %-10s %-5s %-9s %-10s %s%s\n",
			shortID(ev.ID), ev.Date, clock, ev.Category, ev.Type, truncate(ev.Title, 40), flags)
	}
}

// searchRank orders matches: exact title, then prefix, then suffix, then
// any substring of the title or description
func searchRank(ev models.CalendarEvent, query string) int {
	title := strings.ToLower(ev.Title)
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 1
	case strings.HasSuffix(title, query):
		return 2
	case strings.Contains(title, query):
		return 3
	case strings.Contains(strings.ToLower(ev.Description), query):
		return 4
	}
	return -1
}

func eventSearchCmd(o *options) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search events by title and description",
		Long: `Search events with ranked matching:
- Exact title match (highest priority)
- Title prefix
- Title suffix
- Title or description contains the query (lowest priority)

Search is case insensitive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			query := strings.ToLower(strings.TrimSpace(strings.Join(args, " ")))
			f, err := ff.filter()
			if err != nil {
				return err
			}
			events, err := app.Events.List(f)
			if err != nil {
				return err
			}

			type ranked struct {
				ev   models.CalendarEvent
				rank int
			}
			var hits []ranked
			for _, ev := range events {
				if r := searchRank(ev, query); r >= 0 {
					hits = append(hits, ranked{ev, r})
				}
			}
			sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

			results := make([]models.CalendarEvent, len(hits))
			for i, h := range hits {
				results[i] = h.ev
			}
			if ff.json {
				return printJSON(app, results)
			}

			app.printf("Search results for '%s' (%d found):\n", strings.Join(args, " "), len(results))
			if len(results) == 0 {
				app.printf("No events found matching your search.\n")
				return nil
			}
			app.printf("\n")
			printEventTable(app, results)
			return nil
		}),
	}

	ff.register(cmd)
	return cmd
}

func eventID(app *App, prefix string) (string, error) {
	events, err := app.Events.List(store.Filter{})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	return resolveID("event", prefix, ids)
}

func eventEditCmd(o *options) *cobra.Command {
	var (
		ef    eventFlags
		title string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an event",
		Long: `Edit an event. Without flags the interactive form opens with the
current values filled in.

Example:
  jess event edit 3f2a9c1b --time 15:00 --reminder`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := eventID(app, args[0])
			if err != nil {
				return err
			}
			ev, _, err := app.Events.Get(id)
			if err != nil {
				return err
			}

			var patch store.EventPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("date") {
				d, err := parser.ParseDate(ef.date, now())
				if err != nil {
					return &models.ValidationError{Field: "date", Message: err.Error()}
				}
				patch.Date = &d
			}
			if cmd.Flags().Changed("time") {
				t := ""
				if ef.clock != "" {
					if t, err = parser.NormalizeClockTime(ef.clock); err != nil {
						return &models.ValidationError{Field: "time", Message: err.Error()}
					}
				}
				patch.Time = &t
			}
			if cmd.Flags().Changed("category") {
				c := models.Category(strings.ToLower(ef.category))
				patch.Category = &c
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &ef.description
			}
			if cmd.Flags().Changed("recurring") {
				patch.IsRecurring = &ef.recurring
			}
			if cmd.Flags().Changed("reminder") {
				patch.Reminder = &ef.reminder
			}

			if patch.Empty() {
				if !app.interactive() {
					return &models.ValidationError{Field: "event", Message: "nothing to change. Pass --title, --date, --time, --category, --desc, --recurring or --reminder"}
				}
				_, _, err := tui.RunEventForm(ev, true, func(edited models.CalendarEvent) (models.CalendarEvent, error) {
					full := store.EventPatch{
						Title:       &edited.Title,
						Date:        &edited.Date,
						Time:        &edited.Time,
						Description: &edited.Description,
						Category:    &edited.Category,
						IsRecurring: &edited.IsRecurring,
						Reminder:    &edited.Reminder,
					}
					if _, err := app.Events.Update(id, full); err != nil {
						return models.CalendarEvent{}, err
					}
					app.printf("✅ Updated event %s: %s\n", shortID(id), edited.Title)
					return edited, nil
				})
				return err
			}

			if _, err := app.Events.Update(id, patch); err != nil {
				return err
			}
			updated, _, err := app.Events.Get(id)
			if err != nil {
				return err
			}
			app.printf("✅ Updated event %s: %s on %s\n", shortID(id), updated.Title, updated.Date)
			return nil
		}),
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "new title")
	return cmd
}

func eventMoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <date>",
		Short: "Move an event to another date",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := eventID(app, args[0])
			if err != nil {
				return err
			}
			date, err := parser.ParseDate(args[1], now())
			if err != nil {
				return &models.ValidationError{Field: "date", Message: err.Error()}
			}
			moved, err := app.Events.Move(id, date)
			if err != nil {
				return err
			}
			if !moved {
				app.printf("Event %s is already on %s\n", shortID(id), date)
				return nil
			}
			app.printf("📅 Moved event %s to %s %s\n", shortID(id), date, parser.FormatRelativeDate(date, now()))
			return nil
		}),
	}
}

func eventRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete an event",
		Long:    "Delete one event. Weekly copies made from it are kept.",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := eventID(app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Events.Remove(id); err != nil {
				return err
			}
			app.printf("🗑️  Deleted event %s\n", shortID(id))
			return nil
		}),
	}
}

// eventDoneCmd builds "done" (mark completed) or "undone" (back to future)
func eventDoneCmd(o *options, done bool) *cobra.Command {
	use, short := "done <id>", "Mark an event as completed"
	target := models.EventCompleted
	if !done {
		use, short = "undone <id>", "Mark a completed event as upcoming again"
		target = models.EventFuture
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := eventID(app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Events.Update(id, store.EventPatch{Type: &target}); err != nil {
				return err
			}
			ev, _, err := app.Events.Get(id)
			if err != nil {
				return err
			}
			if done {
				app.printf("✅ Marked event %s as done: %s\n", shortID(id), ev.Title)
			} else {
				app.printf("↩️  Marked event %s as upcoming: %s\n", shortID(id), ev.Title)
			}
			return nil
		}),
	}
}

func eventExportCmd(o *options) *cobra.Command {
	var (
		ff     filterFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as JSON or iCalendar",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			events, err := app.Events.List(f)
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "json":
				out = orDefault(out, export.EventsJSONName(now()))
				if data, err = export.JSON(events); err != nil {
					return err
				}
			case "ics", "ical":
				out = orDefault(out, export.EventsICSName)
				ics, err := export.ICS(events, nil)
				if err != nil {
					return err
				}
				data = []byte(ics)
			default:
				return &models.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format '%s'. Use: json, ics", format)}
			}

			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			app.printf("✅ Exported %d events to %s\n", len(events), out)
			return nil
		}),
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

func eventCalendarCmd(o *options) *cobra.Command {
	var (
		view     string
		selected string
		ff       filterFlags
	)

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show events on a month or two-week calendar",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			v := layout.View(strings.ToLower(view))
			if v != layout.ViewMonth && v != layout.ViewTwoWeek {
				return &models.ValidationError{Field: "view", Message: fmt.Sprintf("unknown view '%s'. Use: month, two-week", view)}
			}

			today := now()
			day := today
			if selected != "" {
				d, err := parser.ParseDate(selected, today)
				if err != nil {
					return &models.ValidationError{Field: "date", Message: err.Error()}
				}
				day, _ = time.ParseInLocation(models.DateLayout, d, today.Location())
			}

			f, err := ff.filter()
			if err != nil {
				return err
			}
			events, err := app.Events.List(f)
			if err != nil {
				return err
			}

			days := layout.Calendar(v, day, today, events)
			app.printf("%s", tui.RenderCalendar(days, v, day, 120))
			return nil
		}),
	}

	cmd.Flags().StringVar(&view, "view", string(layout.ViewMonth), "month or two-week")
	cmd.Flags().StringVar(&selected, "date", "", "any date inside the period to show (default today)")
	cmd.Flags().StringVar(&ff.kind, "type", "", "future, assignment or completed")
	cmd.Flags().StringVarP(&ff.category, "category", "c", "", "study, work, personal or other")
	return cmd
}
