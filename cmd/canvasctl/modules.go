// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"canvasctl/internal/naming"
	"canvasctl/internal/reconcile"
)

// newModulesCommand creates the `canvasctl modules` command tree.
func newModulesCommand(app *App) *cobra.Command {
	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "Inspect and create course modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	modulesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the course's modules in position order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}
			mods, err := api.ListModules(ctx, crs.Course.ID, "")
			if err != nil {
				return err
			}
			for _, m := range mods {
				fmt.Fprintf(app.stdout, "%8d  %s\n", m.ID, m.Name)
			}
			return nil
		},
	})

	modulesCmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Show the next ordinal module name without creating it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}
			n, err := reconcile.NextOrdinalNumber(ctx, api, crs.Course.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, naming.OrdinalModuleName(n, ""))
			return nil
		},
	})

	var suffix string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the next ordinal module (\"Fourth class\")",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}
			mod, err := reconcile.CreateNextOrdinalModule(ctx, api, crs.Course.ID, suffix)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("created"), ModuleStyle.Render(mod.Name))
			return nil
		},
	}
	createCmd.Flags().StringVar(&suffix, "suffix", "", "module name suffix (default \"class\")")
	modulesCmd.AddCommand(createCmd)

	var week int
	createWeeklyCmd := &cobra.Command{
		Use:   "create-weekly",
		Short: "Create the weekly module for a semester week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}
			sem, err := crs.SemesterDates()
			if err != nil {
				return err
			}
			mod, err := reconcile.CreateWeeklyModule(ctx, api, crs.Course.ID, sem.WeekStart(week))
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("created"), ModuleStyle.Render(mod.Name))
			return nil
		},
	}
	createWeeklyCmd.Flags().IntVar(&week, "week", 1, "semester week number")
	modulesCmd.AddCommand(createWeeklyCmd)

	return modulesCmd
}
