package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage dependencies between items",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var eapRef, depType, lag string

	cmd := &cobra.Command{
		Use:   "add FROM TO",
		Short: "Make TO depend on FROM",
		Long: `Add a dependency from the predecessor FROM to the successor TO, given as
codes or item IDs. Types: FS (finish-to-start, default), SS, FF, SF. A lag
in days delays the successor boundary; a negative lag allows overlap.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, engine, err := loadEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			pred, err := resolveItem(engine, args[0])
			if err != nil {
				return err
			}
			succ, err := resolveItem(engine, args[1])
			if err != nil {
				return err
			}
			lagDays, err := parseLag(lag)
			if err != nil {
				return err
			}

			d := &domain.Dependency{
				EAPID:         e.ID,
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
				Type:          domain.DependencyType(strings.ToUpper(depType)),
				LagDays:       lagDays,
			}
			if err := app.WBS.AddDependency(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s -> %s (%s) [%s]\n", pred.Code, succ.Code, d.Type.Label(), d.ID[:8])
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	cmd.Flags().StringVar(&depType, "type", "FS", "Dependency type (FS|SS|FF|SF)")
	cmd.Flags().StringVar(&lag, "lag", "", "Lag in days, e.g. 2 or -1")
	return cmd
}

// resolveDependency finds a dependency by ID or unique ID prefix.
func resolveDependency(engine *wbs.Engine, ref string) (*domain.Dependency, error) {
	var matches []*domain.Dependency
	for _, d := range engine.Graph().All() {
		if d.ID == ref {
			return d, nil
		}
		if strings.HasPrefix(d.ID, ref) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("dependency %q: %w", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("dependency ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a dependency",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, engine, err := loadEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			d, err := resolveDependency(engine, args[0])
			if err != nil {
				return err
			}
			if err := app.WBS.RemoveDependency(ctx, d.ID); err != nil {
				return err
			}
			codes := codesByID(engine)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s -> %s\n", codes[d.PredecessorID], codes[d.SuccessorID])
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := loadEAP(cmd.Context(), app, eapRef)
			if err != nil {
				return err
			}
			deps := engine.Graph().All()
			if len(deps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dependencies.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDependencies(deps, codesByID(engine)))
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}
