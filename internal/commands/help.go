package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show comprehensive help for jess",
		Long:  `Display detailed help for all jess commands and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err != nil || target == cmd.Root() {
					return fmt.Errorf("unknown help topic %q", args)
				}
				return target.Help()
			}
			showCustomHelp(cmd.OutOrStdout())
			return nil
		},
	}
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
     ██╗███████╗███████╗███████╗
     ██║██╔════╝██╔════╝██╔════╝
     ██║█████╗  ███████╗███████╗
██   ██║██╔══╝  ╚════██║╚════██║
╚█████╔╝███████╗███████║███████║
 ╚════╝ ╚══════╝╚══════╝╚══════╝

jess - Student timetable, calendar and planner

COMMANDS:

  timetable (tt)          Class timetable
    import [file|url]     Extract classes from schedule text with AI
      --text              Pasted schedule text
    ls                    List classes
      -w, --weekends      Include Saturday and Sunday
      --hours 8-20        Hour window
    show                  Interactive grid (v: view, w: weekends, r: hours)
      --vertical          Day-by-day list instead of the grid
    add                   Add a class (blank when no flags are given)
      --code --name --day --start --end --location --type --instructor
    edit <id> <field> <value>
    rm <id>
    export                Write the timetable to a file
      --format            csv|yaml|ics|pdf
      --out               Output file
    sync                  Copy classes into the calendar for the semester
      --weeks             Weeks to generate

  event (ev)              Calendar events
    add <description>     Create an event with smart parsing
      -d, --date          yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, 3 days
      -t, --time          14:00, 2pm
      -c, --category      study|work|personal|other
      --desc              Description
      --recurring         Repeat weekly
      --reminder          Show in 'jess remind' on the day
      -i, --interactive   Open the form

    Smart syntax:
      #category     Set category
      at:TIME       Set time
      on:DATE       Set date
      in:N days     Relative date
      +weekly       Repeat weekly
      !remind       Turn the reminder on

    Example:
      jess event add "Quiz prep #study at:2pm on:tomorrow !remind"

    ls                    List events
      --type --category --date --from --to --upcoming --json
    search <query>        Ranked search over titles and descriptions
    edit <id>             Edit with flags, or the form when none are given
    mv <id> <date>        Move an event to another day
    done <id>             Mark completed
    undone <id>           Mark upcoming again
    rm <id>               Delete an event
    export                --format json|ics, --out
    cal                   Month or two-week calendar
      --view              month|two-week
      --date              Any day in the period

  task                    Daily planner (all subcommands take -d, --date)
    add <title>           Add a task
    ls                    Tasks in priority order
    done <id>             Toggle done
    rm <id>               Delete
    reorder <id>...       Put tasks first in the given order
    plan                  AI time-blocked schedule for the day

  assignment (asg)
    analyze [file|-]      AI breakdown of an assignment brief, saved
      --title --subject --urgency low|medium|high --text
    ls [id]               Saved analyses (--full, --json)

  email [key points]      Draft an email with AI
    --to --subject --tone --points

  remind                  Today's reminders
    -w, --watch           Keep checking on reminders.cron

  week                    Class hours per course and the week's agenda
    -d, --date            Any day in the week

  version                 Print version information
  help [command]          Show this help, or help for one command

GLOBAL FLAGS:
  --config <file>         Config file (default $XDG_CONFIG_HOME/jess/jess.yml)
  --ephemeral             Keep data in memory for this run only
  --plain                 Plain text output, no interactive UI

AI:
  Set GROQ_API_KEY or GEMINI_API_KEY (or ai.groq_api_key / ai.gemini_api_key
  in the config). Without a key jess answers with placeholders.

`)
}
