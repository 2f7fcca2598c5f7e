package commands

import (
	"github.com/spf13/cobra"

	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/reminder"
	"github.com/balkashynov/jess/internal/store"
)

func remindCmd(o *options) *cobra.Command {
	var (
		watch bool
		spec  string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show today's reminders",
		Long: `Show events with a reminder that are due today.

With --watch jess keeps running and checks on a cron schedule
(reminders.cron in the config, default every 15 minutes), printing each
reminder once.`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			if !watch {
				today := now()
				events, err := app.Events.List(store.Filter{Date: today.Format(models.DateLayout)})
				if err != nil {
					return err
				}
				due := reminder.Due(events, today)
				if len(due) == 0 {
					app.printf("No reminders for today.\n")
					return nil
				}
				printReminders(app, due)
				return nil
			}

			if spec == "" {
				spec = app.Config.Reminders.Cron
			}
			sched, err := reminder.NewScheduler(app.Events, spec, func(due []models.CalendarEvent) {
				printReminders(app, due)
			})
			if err != nil {
				return err
			}

			appLog.Info("watching reminders", "schedule", spec)
			app.printf("Watching reminders (%s). Press Ctrl+C to stop.\n", spec)
			return sched.Run(cmd.Context())
		}),
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking on a schedule")
	cmd.Flags().StringVar(&spec, "cron", "", "cron schedule for --watch (default reminders.cron)")
	return cmd
}

func printReminders(app *App, due []models.CalendarEvent) {
	for _, ev := range due {
		clock := "all day"
		if ev.Time != "" {
			clock = ev.Time
		}
		app.printf("🔔 %-7s %s [%s]\n", clock, ev.Title, ev.Category)
	}
}
