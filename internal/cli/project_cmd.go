package cli

import (
	"fmt"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage EAPs",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectDeleteCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var shortID, name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new EAP",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.EAP{
				ShortID:     shortID,
				Name:        name,
				Description: description,
			}
			if err := app.EAPs.Create(cmd.Context(), app.Session, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created EAP %s [%s]\n", e.Name, e.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. OBRA01)")
	cmd.Flags().StringVar(&name, "name", "", "EAP name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List EAPs",
		RunE: func(cmd *cobra.Command, args []string) error {
			eaps, err := app.EAPs.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(eaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No EAPs found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEAPList(eaps))
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an EAP with all its items and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEAP(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.EAPs.Delete(cmd.Context(), e.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted EAP %s [%s]\n", e.Name, e.DisplayID())
			return nil
		},
	}
}
