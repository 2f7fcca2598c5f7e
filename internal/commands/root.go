package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/ai"
	"github.com/balkashynov/jess/internal/config"
	"github.com/balkashynov/jess/internal/db"
	appLog "github.com/balkashynov/jess/internal/log"
	"github.com/balkashynov/jess/internal/store"
	"github.com/balkashynov/jess/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// swapped by tests
var (
	now          = time.Now
	newCompleter = ai.Select
)

// options are the persistent flags shared by every command
type options struct {
	configPath string
	ephemeral  bool
	plain      bool
}

// App is what a command needs for one run: configuration, the stores
// over one persistence, and the active AI provider
type App struct {
	Config      *config.Config
	Events      *store.EventStore
	Classes     *store.ClassStore
	Tasks       *store.TaskStore
	Assignments *store.AssignmentStore
	AI          ai.Completer

	plain bool
	out   io.Writer
	kv    *db.KV
}

// open loads config and storage for cmd
func (o *options) open(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	app := &App{
		Config: cfg,
		AI:     newCompleter(cfg.AIOptions()),
		plain:  o.plain || !isTerminal(os.Stdout),
		out:    cmd.OutOrStdout(),
	}

	var kv store.Persistence
	if o.ephemeral {
		kv = store.NewMemoryKV()
	} else {
		dataDir, err := cfg.ResolveDataDir()
		if err != nil {
			return nil, err
		}
		app.kv, err = db.Open(filepath.Join(dataDir, db.FileName))
		if err != nil {
			return nil, err
		}
		kv = app.kv
	}

	app.Events = store.NewEventStore(kv)
	app.Classes = store.NewClassStore(kv)
	app.Tasks = store.NewTaskStore(kv, cfg.UserID)
	app.Assignments = store.NewAssignmentStore(kv)

	appLog.Debug("app ready", "config", cfg.Path, "provider", app.AI.Name(), "ephemeral", o.ephemeral)
	return app, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.kv.Close()
}

// withApp wraps a command function to open config and storage first
func withApp(o *options, fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := o.open(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

// printf writes user-facing output
func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// interactive reports whether TUIs may be started
func (a *App) interactive() bool {
	return !a.plain
}

// ask runs an AI call, with a progress line when interactive. Without a
// configured provider a notice explains the placeholder answer.
func (a *App) ask(ctx context.Context, label string, fn tui.BusyFunc) (string, error) {
	if ai.IsMock(a.AI) {
		a.printf("ℹ️  No AI key configured (set GROQ_API_KEY or GEMINI_API_KEY); using placeholder responses.\n")
	}
	if !a.interactive() {
		return fn(ctx)
	}
	return tui.RunBusy(ctx, label, fn)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "jess",
		Short: "A student productivity CLI",
		Long: `jess keeps your class timetable, upcoming events, daily tasks and
assignments in one place, and uses AI to import schedules, plan your day
and draft emails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetHelpCommand(helpCmd())

	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jess/jess.yml)")
	rootCmd.PersistentFlags().BoolVar(&o.ephemeral, "ephemeral", false, "keep data in memory for this run only")
	rootCmd.PersistentFlags().BoolVar(&o.plain, "plain", false, "plain text output, no interactive UI")

	rootCmd.AddCommand(timetableCmd(o))
	rootCmd.AddCommand(eventCmd(o))
	rootCmd.AddCommand(taskCmd(o))
	rootCmd.AddCommand(assignmentCmd(o))
	rootCmd.AddCommand(emailCmd(o))
	rootCmd.AddCommand(remindCmd(o))
	rootCmd.AddCommand(weekCmd(o))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jess %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// resolveID finds the single id starting with prefix, so listings can
// show short ids
func resolveID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%s id '%s' is ambiguous", kind, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s '%s' not found", kind, prefix)
	}
	return match, nil
}

// shortID is the id prefix shown in listings
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
