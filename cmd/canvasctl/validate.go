// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `canvasctl validate` command. It loads and
// structurally checks the course file without touching the network.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the course file for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			crs, err := app.loadCourse(cfg)
			if err != nil {
				fmt.Fprintln(app.stderr, ErrorStyle.Render("invalid: ")+formatErrorForDisplay(err, verbose))
				return fmt.Errorf("course file is invalid: %w", err)
			}

			sem, err := crs.SemesterDates()
			if err != nil {
				return err
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render(crs.Course.Name)+SubtitleStyle.Render(fmt.Sprintf(" (course %d)", crs.Course.ID)))
			fmt.Fprintf(app.stdout, "semester starts %s, due time %s\n", sem.Start.Format("Monday, January 2, 2006"), sem.DueTime)
			for _, w := range crs.Weeks {
				fmt.Fprintf(app.stdout, "  week %2d: %d items\n", w.Number, len(w.Items))
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("course file is valid"))
			return nil
		},
	}
}
