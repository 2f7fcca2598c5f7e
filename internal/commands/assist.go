package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jess/internal/assist"
	"github.com/balkashynov/jess/internal/models"
)

// readText returns --text, or the contents of the file argument, or stdin
// when the argument is "-"
func readText(cmd *cobra.Command, args []string, text string) (string, error) {
	if text != "" || len(args) == 0 {
		return text, nil
	}
	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func assignmentCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"asg"},
		Short:   "Break an assignment brief into tasks with AI",
	}
	cmd.AddCommand(assignmentAnalyzeCmd(o))
	cmd.AddCommand(assignmentListCmd(o))
	return cmd
}

func assignmentAnalyzeCmd(o *options) *cobra.Command {
	var req assist.AssignmentRequest

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyse an assignment brief and save the breakdown",
		Example: `  jess assignment analyze brief.txt --title "Essay 2" --subject Law --urgency high
  pbpaste | jess assignment analyze -`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			var err error
			if req.RawText, err = readText(cmd, args, req.RawText); err != nil {
				return err
			}

			helper := assist.New(app.AI)
			var result models.Assignment
			_, err = app.ask(cmd.Context(), "Analysing your assignment", func(ctx context.Context) (string, error) {
				a, err := helper.AnalyzeAssignment(ctx, req)
				if err != nil {
					return "", err
				}
				result = a
				return a.Analysis, nil
			})
			if err != nil {
				return err
			}

			saved := result
			saved.UserID = app.Config.UserID
			if saved, err = app.Assignments.Save(saved); err != nil {
				return err
			}

			app.printf("📝 %s (%s, %s urgency)\n\n", saved.Title, saved.Subject, saved.Urgency)
			app.printf("%s\n\n", strings.TrimSpace(saved.Analysis))
			app.printf("Saved as %s\n", shortID(saved.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.RawText, "text", "", "assignment text")
	cmd.Flags().StringVar(&req.Title, "title", "", "assignment title")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "subject: "+strings.Join(assist.Subjects, ", "))
	cmd.Flags().StringVar(&req.Urgency, "urgency", "medium", "low, medium or high")
	return cmd
}

func assignmentListCmd(o *options) *cobra.Command {
	var (
		jsonFlag bool
		full     bool
	)

	cmd := &cobra.Command{
		Use:     "ls [id]",
		Aliases: []string{"list"},
		Short:   "List saved analyses, or show one in full",
		Args:    cobra.MaximumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			saved, err := app.Assignments.List()
			if err != nil {
				return err
			}

			mine := make([]models.Assignment, 0, len(saved))
			for _, a := range saved {
				if a.UserID == app.Config.UserID {
					mine = append(mine, a)
				}
			}

			if len(args) == 1 {
				ids := make([]string, len(mine))
				for i, a := range mine {
					ids[i] = a.ID
				}
				id, err := resolveID("assignment", args[0], ids)
				if err != nil {
					return err
				}
				for _, a := range mine {
					if a.ID == id {
						mine = []models.Assignment{a}
						break
					}
				}
				full = true
			}

			if jsonFlag {
				return printJSON(app, mine)
			}
			if len(mine) == 0 {
				app.printf("No saved assignments. Use 'jess assignment analyze <file>' to add one.\n")
				return nil
			}
			for _, a := range mine {
				app.printf("%-8s %s  %-30s %-18s %s\n",
					shortID(a.ID), a.CreatedAt.Format(models.DateLayout), truncate(a.Title, 30), truncate(a.Subject, 18), a.Urgency)
				if full {
					app.printf("\n%s\n\n", strings.TrimSpace(a.Analysis))
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "JSON output")
	cmd.Flags().BoolVar(&full, "full", false, "include the analysis text")
	return cmd
}

func emailCmd(o *options) *cobra.Command {
	var req assist.EmailRequest

	cmd := &cobra.Command{
		Use:   "email [key points]",
		Short: "Draft an email with AI",
		Example: `  jess email "ask for a 3 day extension on lab 2, I was sick" --to "Dr. Tan" --tone apologetic`,
		RunE: withApp(o, func(cmd *cobra.Command, args []string, app *App) error {
			if len(args) > 0 {
				req.KeyPoints = strings.Join(args, " ")
			}
			if strings.TrimSpace(req.KeyPoints) == "" {
				return assist.ErrNoKeyPoints
			}
			if _, err := assist.NormalizeTone(req.Tone); err != nil {
				return err
			}

			helper := assist.New(app.AI)
			draft, err := app.ask(cmd.Context(), "Drafting your email", func(ctx context.Context) (string, error) {
				return helper.DraftEmail(ctx, req)
			})
			if err != nil {
				return err
			}
			app.printf("%s\n", strings.TrimSpace(draft))
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.Recipient, "to", "", "recipient")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "email subject")
	cmd.Flags().StringVar(&req.Tone, "tone", assist.Tones[0], "tone: "+strings.Join(assist.Tones, ", "))
	cmd.Flags().StringVar(&req.KeyPoints, "points", "", "key points to cover")
	return cmd
}
