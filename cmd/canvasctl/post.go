// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"canvasctl/internal/course"
	"canvasctl/internal/reconcile"
)

// newPostCommand creates the `canvasctl post` command. Posting creates the
// weekly module unconditionally; use `update` to append to an existing one.
func newPostCommand(app *App) *cobra.Command {
	var (
		dryRun   bool
		allWeeks bool
	)

	cmd := &cobra.Command{
		Use:   "post <week>...",
		Short: "Create weekly modules and post their items",
		Long: `Create a module named for each week's Monday ("Week of September 7")
and post the week's items into it, in course-file order.

A file or assignment item whose remote counterpart is missing is skipped
with a warning; the remaining items still post.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runWeeks(cmd.Context(), args, dryRun, allWeeks, false)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the modules without calling Canvas")
	cmd.Flags().BoolVar(&allWeeks, "all", false, "post every week in the course file")
	return cmd
}

// newUpdateCommand creates the `canvasctl update` command.
func newUpdateCommand(app *App) *cobra.Command {
	var (
		dryRun   bool
		allWeeks bool
	)

	cmd := &cobra.Command{
		Use:   "update <week>...",
		Short: "Append a week's items to its existing module",
		Long: `Append the week's items to the already-existing weekly module.
Fails when the module is not on Canvas yet; use 'post' to create it.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runWeeks(cmd.Context(), args, dryRun, allWeeks, true)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the items without calling Canvas")
	cmd.Flags().BoolVar(&allWeeks, "all", false, "update every week in the course file")
	return cmd
}

// runWeeks drives post/update for the requested week numbers. Dry runs never
// touch the network, so they need neither a token nor a reachable Canvas.
func (a *App) runWeeks(ctx context.Context, args []string, dryRun, allWeeks, update bool) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	crs, err := a.loadCourse(cfg)
	if err != nil {
		return err
	}

	var weeks []course.Week
	switch {
	case allWeeks:
		weeks = crs.Weeks
	case len(args) == 0:
		return fmt.Errorf("name at least one week number, or use --all")
	default:
		weeks, err = selectWeeks(crs, args)
		if err != nil {
			return err
		}
	}

	if dryRun {
		sem, err := crs.SemesterDates()
		if err != nil {
			return err
		}
		for _, w := range weeks {
			if err := reconcile.RenderWeek(a.stdout, w, sem); err != nil {
				return err
			}
		}
		return nil
	}

	api, err := a.api(cfg)
	if err != nil {
		return err
	}
	poster, err := a.poster(api, cfg, crs)
	if err != nil {
		return err
	}

	var itemErrs []error
	for _, w := range weeks {
		var result reconcile.WeekResult
		if update {
			result, err = poster.UpdateWeek(ctx, w)
		} else {
			result, err = poster.PostWeek(ctx, w)
		}
		if err != nil {
			return err
		}
		renderWeekResult(a.stdout, result)
		for _, item := range result.Items {
			if item.Err != nil {
				itemErrs = append(itemErrs, item.Err)
			}
		}
	}

	if len(itemErrs) > 0 {
		return fmt.Errorf("some items were not posted: %w", errors.Join(itemErrs...))
	}
	return nil
}

// selectWeeks resolves week-number arguments against the course file.
func selectWeeks(crs *course.Config, args []string) ([]course.Week, error) {
	weeks := make([]course.Week, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("week %q is not a number", arg)
		}
		w, ok := crs.WeekByNumber(n)
		if !ok {
			return nil, fmt.Errorf("week %d is not in the course file", n)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

// renderWeekResult prints one line per item with a status glyph.
func renderWeekResult(w io.Writer, res reconcile.WeekResult) {
	fmt.Fprintln(w, ModuleStyle.Render(res.ModuleName))
	for _, item := range res.Items {
		switch item.Status {
		case reconcile.StatusCreated:
			fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), item.Title)
		case reconcile.StatusSkipped:
			fmt.Fprintf(w, "  %s %s (%v)\n", WarningStyle.Render("skipped:"), item.Title, item.Err)
		case reconcile.StatusFailed:
			fmt.Fprintf(w, "  %s %s (%v)\n", ErrorStyle.Render("failed:"), item.Title, item.Err)
		}
	}
}
