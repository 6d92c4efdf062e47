package cli

import (
	"fmt"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage WBS items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
		newItemInspectCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var eapRef, parentRef string
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item; its code is assigned from its position",
		Long: `Add an item under --parent (a code such as 1.2 or an item ID), or at
the root when no parent is given. Without --name on a terminal an
interactive form is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, engine, err := loadEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}

			var it *domain.WBSItem
			if f.name == "" && app.interactive() {
				var v itemFormValues
				if parentRef != "" {
					parent, err := resolveItem(engine, parentRef)
					if err != nil {
						return err
					}
					v.Parent = parent.ID
				}
				if err := newItemForm(engine, &v).Run(); err != nil {
					return err
				}
				if it, err = v.item(e.ID); err != nil {
					return err
				}
			} else {
				if f.name == "" {
					return fmt.Errorf("--name is required")
				}
				if it, err = f.item(e.ID); err != nil {
					return err
				}
				if parentRef != "" {
					parent, err := resolveItem(engine, parentRef)
					if err != nil {
						return err
					}
					it.ParentID = &parent.ID
					if !cmd.Flags().Changed("type") {
						it.Type = parent.Type.ChildType()
					}
				}
			}

			if err := app.WBS.CreateItem(ctx, it); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", it.Code, it.Name, it.Status)
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent item code or ID")
	f.register(cmd.Flags())
	return cmd
}

// item builds a new item from the flags. Type defaults to task.
func (f *itemFlags) item(eapID string) (*domain.WBSItem, error) {
	if f.status != "" {
		if err := checkStatus(f.status); err != nil {
			return nil, err
		}
	}
	it := &domain.WBSItem{
		EAPID:       eapID,
		Type:        domain.ItemTypeOrDefault(f.itemType),
		Name:        f.name,
		Description: f.description,
		Responsible: f.responsible,
		Progress:    f.progress,
		Status:      domain.ItemStatus(f.status),
		Critical:    f.critical,
	}
	var err error
	if it.StartDate, err = parseDate("start", f.start); err != nil {
		return nil, err
	}
	if it.EndDate, err = parseDate("end", f.end); err != nil {
		return nil, err
	}
	if it.Budget, err = parseBudget(f.budget); err != nil {
		return nil, err
	}
	return it, nil
}

// patch builds an ItemPatch from the flags the user actually set.
func (f *itemFlags) patch(cmd *cobra.Command) (wbs.ItemPatch, error) {
	var p wbs.ItemPatch
	changed := cmd.Flags().Changed

	if changed("name") {
		p.Name = &f.name
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("responsible") {
		p.Responsible = &f.responsible
	}
	if changed("type") {
		t := domain.ItemType(f.itemType)
		p.Type = &t
	}
	if changed("status") {
		if err := checkStatus(f.status); err != nil {
			return p, err
		}
		s := domain.ItemStatus(f.status)
		p.Status = &s
	}
	if changed("progress") {
		p.Progress = &f.progress
	}
	if changed("critical") {
		p.Critical = &f.critical
	}
	if changed("start") {
		d, err := parseDate("start", f.start)
		if err != nil {
			return p, err
		}
		if d == nil {
			return p, fmt.Errorf("--start needs a YYYY-MM-DD date")
		}
		p.StartDate = d
	}
	if changed("end") {
		d, err := parseDate("end", f.end)
		if err != nil {
			return p, err
		}
		if d == nil {
			return p, fmt.Errorf("--end needs a YYYY-MM-DD date")
		}
		p.EndDate = d
	}
	if changed("budget") {
		b, err := parseBudget(f.budget)
		if err != nil {
			return p, err
		}
		p.Budget = &b
	}
	return p, nil
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var eapRef string
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update an item",
		Long: `Update the fields given as flags. Progress and status can only be set on
items without children; the status follows progress (0 is not_started,
100 is completed).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, engine, err := loadEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			it, err := resolveItem(engine, args[0])
			if err != nil {
				return err
			}
			p, err := f.patch(cmd)
			if err != nil {
				return err
			}
			updated, err := app.WBS.UpdateItem(ctx, it.ID, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s (%s, %d%%)\n", updated.Code, updated.Name, updated.Status, updated.Progress)
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	f.register(cmd.Flags())
	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:     "rm CODE",
		Aliases: []string{"remove"},
		Short:   "Remove an item with its subtree and dependencies",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, engine, err := loadEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			it, err := resolveItem(engine, args[0])
			if err != nil {
				return err
			}
			res, err := app.WBS.DeleteItem(ctx, it.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s (%d items, %d dependencies)\n",
				it.Code, it.Name, len(res.ItemIDs), len(res.Dependencies))
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}

func newItemInspectCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:   "inspect CODE",
		Short: "Show item details and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := loadEAP(cmd.Context(), app, eapRef)
			if err != nil {
				return err
			}
			it, err := resolveItem(engine, args[0])
			if err != nil {
				return err
			}

			var row wbs.Row
			for _, r := range engine.Rows() {
				if r.Item.ID == it.ID {
					row = r
					break
				}
			}
			detail := formatter.ItemDetail{
				Item:     it,
				Progress: row.Progress,
				Status:   row.Status,
				Executed: formatter.Money(row.Executed),
				Leaf:     row.Leaf,
				Now:      app.now(),
			}
			store := engine.Store()
			for _, d := range engine.Graph().PredecessorsOf(it.ID) {
				if other, err := store.Get(d.PredecessorID); err == nil {
					detail.Predecessors = append(detail.Predecessors, formatter.DependencyLine{Dependency: d, Code: other.Code, Name: other.Name})
				}
			}
			for _, d := range engine.Graph().SuccessorsOf(it.ID) {
				if other, err := store.Get(d.SuccessorID); err == nil {
					detail.Successors = append(detail.Successors, formatter.DependencyLine{Dependency: d, Code: other.Code, Name: other.Name})
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemInspect(detail))
			return nil
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}

func checkStatus(s string) error {
	if !domain.ValidItemStatuses[s] {
		return fmt.Errorf("unknown status %q", s)
	}
	return nil
}
