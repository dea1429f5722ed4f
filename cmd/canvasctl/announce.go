// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canvasctl/internal/issue"
)

// newAnnounceCommand creates the `canvasctl announce` command.
func newAnnounceCommand(app *App) *cobra.Command {
	var (
		body     string
		bodyFile string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "announce <title>",
		Short: "Post a course announcement written in Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			title := args[0]

			markdown := body
			if bodyFile != "" {
				data, err := os.ReadFile(bodyFile)
				if err != nil {
					return fmt.Errorf("reading %s: %w", bodyFile, err)
				}
				markdown = string(data)
			}
			if markdown == "" {
				return fmt.Errorf("announcement body is empty; use --body or --body-file")
			}

			if dryRun {
				fmt.Fprintln(app.stdout, TitleStyle.Render(title))
				rendered, err := (issue.GlamourRenderer{}).Render(markdown)
				if err != nil {
					rendered = markdown
				}
				fmt.Fprintln(app.stdout, rendered)
				return nil
			}

			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}
			if err := api.PostAnnouncement(ctx, crs.Course.ID, title, markdown); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("announced"), title)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "announcement body in Markdown")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "read the body from a Markdown file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the rendered announcement without posting")
	return cmd
}
