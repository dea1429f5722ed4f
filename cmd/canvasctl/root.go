// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"canvasctl/internal/canvas"
	"canvasctl/internal/config"
	"canvasctl/internal/course"
	"canvasctl/internal/issue"
	"canvasctl/internal/reconcile"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// courseFile points at a course file, bypassing the ancestor search.
	courseFile string
)

// newRootCommand builds the root command and its subcommand tree.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "canvasctl",
		Short: "Course administration for Canvas from a declarative course file",
		Long: TitleStyle.Render("canvasctl") + SubtitleStyle.Render(" - Course administration for Canvas") + `

canvasctl drives a Canvas LMS course from a YAML course file: weekly
modules, module items, file uploads, assignments, and announcements.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write a course.yaml describing your weeks
  2. Check it with: canvasctl validate
  3. Preview a week: canvasctl post 1 --dry-run
  4. Post it for real: canvasctl post 1

` + SubtitleStyle.Render("Examples:") + `
  canvasctl post 3              Create the week 3 module and its items
  canvasctl update 3            Append items to the existing week 3 module
  canvasctl modules list        List the course's modules
  canvasctl upload notes.pdf    Upload a file to the course
  canvasctl announce "Exam 1"   Post an announcement`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/canvasctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&courseFile, "course", "", "course file (default is a course.yaml ancestor search)")

	rootCmd.AddCommand(newPostCommand(app))
	rootCmd.AddCommand(newUpdateCommand(app))
	rootCmd.AddCommand(newModulesCommand(app))
	rootCmd.AddCommand(newUploadCommand(app))
	rootCmd.AddCommand(newAnnounceCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if help, ok := helpFor(err); ok {
			fmt.Fprintln(os.Stderr, help)
		}
		os.Exit(1)
	}
}

// helpFor returns rendered catalog help for known failure modes, so the user
// gets guidance beyond the one-line error.
func helpFor(err error) (string, bool) {
	id, ok := classify(err)
	if !ok {
		return "", false
	}
	iss, lookupErr := issue.Lookup(id)
	if lookupErr != nil {
		return "", false
	}
	return iss.Rendered(issue.GlamourRenderer{}), true
}

// classify maps an error chain to its issue catalog entry.
func classify(err error) (issue.ID, bool) {
	switch {
	case errors.Is(err, course.ErrNotFound):
		return issue.CourseFileNotFoundID, true
	case errors.Is(err, config.ErrTokenMissing):
		return issue.TokenMissingID, true
	case errors.Is(err, config.ErrInvalidConfigFile):
		return issue.ConfigLoadFailedID, true
	case errors.Is(err, reconcile.ErrModuleNotFound):
		return issue.ModuleNotFoundID, true
	case errors.Is(err, reconcile.ErrFileNotFound):
		return issue.RemoteFileNotFoundID, true
	case errors.Is(err, reconcile.ErrAssignmentNotFound):
		return issue.AssignmentNotFoundID, true
	case errors.Is(err, canvas.ErrUploadFailed):
		return issue.UploadFailedID, true
	}
	return 0, false
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
