package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// eapHuhTheme styles forms with the formatter palette.
func eapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// itemFormValues are the string-typed answers of the item form.
type itemFormValues struct {
	Parent      string
	Type        string
	Name        string
	Responsible string
	Start       string
	End         string
	Budget      string
	Progress    string
}

// parentOptions lists every item as a possible parent, root first.
func parentOptions(engine *wbs.Engine) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(root)", "")}
	for _, r := range engine.Rows() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", r.Item.Code, r.Item.Name), r.Item.ID))
	}
	return opts
}

func itemTypeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Phase", string(domain.ItemPhase)),
		huh.NewOption("Deliverable", string(domain.ItemDeliverable)),
		huh.NewOption("Activity", string(domain.ItemActivity)),
		huh.NewOption("Task", string(domain.ItemTask)),
	}
}

// newItemForm asks for the fields of a new item.
func newItemForm(engine *wbs.Engine, v *itemFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Parent").Options(parentOptions(engine)...).Value(&v.Parent),
			huh.NewSelect[string]().Title("Type").Options(itemTypeOptions()...).Value(&v.Type),
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired),
			huh.NewInput().Title("Responsible").Value(&v.Responsible),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start (YYYY-MM-DD, blank for none)").Placeholder("2025-03-01").Value(&v.Start).Validate(validateOptionalDate),
			huh.NewInput().Title("End (YYYY-MM-DD, blank for none)").Placeholder("2025-03-31").Value(&v.End).Validate(validateOptionalDate),
			huh.NewInput().Title("Budget").Placeholder("0.00").Value(&v.Budget).Validate(validateBudget),
			huh.NewInput().Title("Progress %").Placeholder("0").Value(&v.Progress).Validate(validateProgress),
		),
	).WithTheme(eapHuhTheme()).WithShowHelp(false)
}

// item converts the answers into an item of eapID.
func (v *itemFormValues) item(eapID string) (*domain.WBSItem, error) {
	it := &domain.WBSItem{
		EAPID:       eapID,
		Type:        domain.ItemTypeOrDefault(v.Type),
		Name:        v.Name,
		Responsible: v.Responsible,
	}
	if v.Parent != "" {
		parent := v.Parent
		it.ParentID = &parent
	}
	var err error
	if it.StartDate, err = parseDate("start", v.Start); err != nil {
		return nil, err
	}
	if it.EndDate, err = parseDate("end", v.End); err != nil {
		return nil, err
	}
	if it.Budget, err = parseBudget(v.Budget); err != nil {
		return nil, err
	}
	if v.Progress != "" {
		if it.Progress, err = strconv.Atoi(v.Progress); err != nil {
			return nil, fmt.Errorf("invalid progress %q", v.Progress)
		}
	}
	return it, nil
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateBudget(s string) error {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}

func validateProgress(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return fmt.Errorf("enter a number from 0 to 100")
	}
	return nil
}
