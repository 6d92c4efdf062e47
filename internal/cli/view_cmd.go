package cli

import (
	"fmt"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/contract"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var eapRef string
	var statuses statusList
	var overdue bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the WBS tree with rolled-up progress",
		Long: `Show the WBS tree. With --status or --overdue only matching items are
shown, together with their ancestors so the hierarchy stays readable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := resolveEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			req := contract.NewTreeRequest(e.ID)
			req.Statuses = statuses
			req.Overdue = overdue
			now := app.now()
			req.Now = &now

			resp, err := app.treeUseCase().Tree(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n\n", formatter.StyleHeader.Render(e.DisplayID()), formatter.Bold(e.Name))
			if len(resp.Rows) == 0 {
				if resp.Filtered {
					fmt.Fprintln(out, "No items match.")
				} else {
					fmt.Fprintln(out, "No items yet.")
				}
				return nil
			}
			fmt.Fprint(out, formatter.FormatTree(resp.Rows))
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	cmd.Flags().Var(&statuses, "status", "Only items with these statuses (comma-separated)")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only items past their end date and not complete")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"status"},
		Short:   "Show budget, progress and schedule summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := resolveEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			req := contract.NewStatusRequest(e.ID)
			now := app.now()
			req.Now = &now

			resp, err := app.statusUseCase().Status(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}

func newGanttCmd(app *App) *cobra.Command {
	var eapRef string
	var width int

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Draw the schedule as a Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := resolveEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			resp, err := app.scheduleUseCase().Schedule(ctx, contract.ScheduleRequest{EAPID: e.ID})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatGantt(resp.Gantt, width))
			if n := len(resp.Violations); n > 0 {
				fmt.Fprintf(out, "\n%s\n", formatter.StyleRed.Render(fmt.Sprintf("%d dependency violations; run 'eap check'", n)))
			}
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	cmd.Flags().IntVar(&width, "width", 60, "Maximum chart width in columns")
	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List dependencies the current dates violate and broken codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := resolveEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			resp, err := app.scheduleUseCase().Schedule(ctx, contract.ScheduleRequest{EAPID: e.ID})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatViolations(resp.Violations))
			if len(resp.CodeIssues) > 0 {
				fmt.Fprint(out, "\n"+formatter.FormatCodeIssues(resp.CodeIssues))
			}
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}
