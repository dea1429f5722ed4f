// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"canvasctl/internal/canvas"
	"canvasctl/internal/reconcile"
)

// newUploadCommand creates the `canvasctl upload` command.
func newUploadCommand(app *App) *cobra.Command {
	var (
		remoteDir  string
		remoteName string
		moduleName string
		afterTitle string
	)

	cmd := &cobra.Command{
		Use:   "upload <local-path>",
		Short: "Upload a file to the course, optionally linking it into a module",
		Long: `Upload a local file to the course's file storage. An existing remote
file with the same name is overwritten.

With --module the uploaded file is also linked as a module item; --after
places it directly after the named existing item instead of at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, crs, api, err := app.courseAPI(ctx)
			if err != nil {
				return err
			}

			file, err := api.UploadFile(ctx, crs.Course.ID, args[0], remoteDir, remoteName)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s (id %d)\n", SuccessStyle.Render("uploaded"), file.DisplayName, file.ID)

			if moduleName == "" {
				return nil
			}

			mod, found, err := reconcile.FindModuleByName(ctx, api, crs.Course.ID, moduleName)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("module %q: %w", moduleName, reconcile.ErrModuleNotFound)
			}

			position := 0
			if afterTitle != "" {
				pos, err := reconcile.FindItemPosition(ctx, api, crs.Course.ID, mod.ID, afterTitle)
				if err != nil {
					return err
				}
				if pos == 0 {
					return fmt.Errorf("item %q is not in module %q", afterTitle, moduleName)
				}
				position = pos + 1
			}

			_, err = api.CreateModuleItem(ctx, crs.Course.ID, mod.ID, canvas.CreateItemParams{
				Title:     file.DisplayName,
				Type:      canvas.TypeFile,
				ContentID: file.ID,
				Position:  position,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("linked into"), ModuleStyle.Render(mod.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&remoteDir, "dir", "", "remote folder path, e.g. \"worksheets\"")
	cmd.Flags().StringVar(&remoteName, "name", "", "remote file name (default keeps the local name)")
	cmd.Flags().StringVar(&moduleName, "module", "", "also link the file into this module")
	cmd.Flags().StringVar(&afterTitle, "after", "", "place the item after this existing item (needs --module)")
	return cmd
}
