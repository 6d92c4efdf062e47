package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create an EAP from a JSON snapshot",
		Long: `Import an EAP with its items and dependencies from a JSON file. Codes are
assigned from item order; parents must precede their children. Nothing is
stored unless the whole file is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.importEAPUseCase().ImportEAP(cmd.Context(), app.Session, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported EAP %s [%s]: %d items, %d dependencies\n",
				res.EAP.Name, res.EAP.ShortID, res.ItemCount, res.DependencyCount)
			return nil
		},
	}
}
