package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/assist"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

func taskCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the daily task planner",
	}
	cmd.AddCommand(taskAddCmd(o))
	cmd.AddCommand(taskListCmd(o))
	cmd.AddCommand(taskToggleCmd(o))
	cmd.AddCommand(taskRemoveCmd(o))
	cmd.AddCommand(taskReorderCmd(o))
	cmd.AddCommand(taskPlanCmd(o))
	return cmd
}

// dayFlag parses --date, defaulting to today
func dayFlag(raw string) (string, error) {
	if raw == "" {
		return now().Format(models.DateLayout), nil
	}
	d, err := parser.ParseDate(raw, now())
	if err != nil {
		return "", &models.ValidationError{Field: "date", Message: err.Error()}
	}
	return d, nil
}

func addDateFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "date", "d", "", "planner day (default today)")
}

// taskID resolves an id prefix among the tasks of date
func taskID(app *App, date, prefix string) (string, error) {
	tasks, err := app.Tasks.ForDate(date)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return resolveID("task", prefix, ids)
}

func taskAddCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a day",
		Example: `  jess task add "Read chapter 4"
  jess task add "Lab report" --date tomorrow`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			task, err := app.Tasks.Add(date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			app.printf("✅ Added task %s for %s: %s\n", shortID(task.ID), task.Date, task.Title)
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	return cmd
}

func taskListCmd(o *options) *cobra.Command {
	var (
		day      string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the tasks of a day in priority order",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ForDate(date)
			if err != nil {
				return err
			}
			if jsonFlag {
				return printJSON(app, tasks)
			}

			app.printf("Tasks for %s %s\n", date, parser.FormatRelativeDate(date, now()))
			if len(tasks) == 0 {
				app.printf("No tasks planned. Use 'jess task add \"...\"' to add one.\n")
				return nil
			}
			done := 0
			for _, t := range tasks {
				mark := "[ ]"
				if t.Completed {
					mark = "[✓]"
					done++
				}
				app.printf("%-8s %s %s\n", shortID(t.ID), mark, t.Title)
			}
			app.printf("\n%d of %d done\n", done, len(tasks))
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "JSON output")
	return cmd
}

func taskToggleCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			id, err := taskID(app, date, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tasks.Toggle(id); err != nil {
				return err
			}

			tasks, err := app.Tasks.ForDate(date)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				if t.ID != id {
					continue
				}
				if t.Completed {
					app.printf("✅ Marked task %s as done: %s\n", shortID(id), t.Title)
				} else {
					app.printf("↩️  Marked task %s as open: %s\n", shortID(id), t.Title)
				}
			}
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	return cmd
}

func taskRemoveCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			id, err := taskID(app, date, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tasks.Remove(id); err != nil {
				return err
			}
			app.printf("🗑️  Deleted task %s\n", shortID(id))
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	return cmd
}

func taskReorderCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Move tasks to the top of the day in the given order",
		Long: `Reorder puts the listed tasks first, in the order given. Tasks of the
same day that are not listed keep their relative order after them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			ids := make([]string, len(args))
			for i, a := range args {
				if ids[i], err = taskID(app, date, a); err != nil {
					return err
				}
			}
			if err := app.Tasks.Reorder(date, ids); err != nil {
				return err
			}
			app.printf("🔀 Reordered %d tasks for %s\n", len(ids), date)
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	return cmd
}

func taskPlanCmd(o *options) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Ask AI for a time-blocked schedule of the day's tasks",
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			date, err := dayFlag(day)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ForDate(date)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				return assist.ErrNoTasks
			}

			helper := assist.New(app.AI)
			plan, err := app.ask(cmd.Context(), "Planning your day", func(ctx context.Context) (string, error) {
				return helper.PlanDay(ctx, date, tasks)
			})
			if err != nil {
				return fmt.Errorf("failed to plan %s: %w", date, err)
			}
			app.printf("%s\n", strings.TrimSpace(plan))
			return nil
		}),
	}

	addDateFlag(cmd, &day)
	return cmd
}
