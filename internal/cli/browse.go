package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/cli/formatter"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseStatuses is the order of the status toggles bound to keys 1-6.
var browseStatuses = []domain.ItemStatus{
	domain.StatusNotStarted,
	domain.StatusInProgress,
	domain.StatusCompleted,
	domain.StatusPaused,
	domain.StatusCancelled,
	domain.StatusBlocked,
}

// browseChromeLines is the header and footer height around the row viewport.
const browseChromeLines = 4

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Fold     key.Binding
	Overdue  key.Binding
	Clear    key.Binding
	Reload   key.Binding
	Quit     key.Binding
	Statuses []key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	km := browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Fold:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fold")),
		Overdue: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overdue")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i, st := range browseStatuses {
		k := strconv.Itoa(i + 1)
		km.Statuses = append(km.Statuses, key.NewBinding(key.WithKeys(k), key.WithHelp(k, string(st))))
	}
	return km
}

type browseLoadedMsg struct {
	engine *wbs.Engine
	err    error
}

// browseModel is a foldable WBS tree whose status and overdue filters are
// toggled from the keyboard and re-applied to the loaded engine on each key.
type browseModel struct {
	title string
	today time.Time
	load  func(context.Context) (*wbs.Engine, error)
	keys  browseKeyMap

	engine    *wbs.Engine
	rows      []wbs.Row
	statuses  map[domain.ItemStatus]bool
	overdue   bool
	collapsed map[string]bool
	cursor    int
	loading   bool
	err       error
	vp        viewport.Model
}

func newBrowseModel(title string, today time.Time, load func(context.Context) (*wbs.Engine, error)) *browseModel {
	return &browseModel{
		title:     title,
		today:     today,
		load:      load,
		keys:      newBrowseKeyMap(),
		statuses:  make(map[domain.ItemStatus]bool),
		collapsed: make(map[string]bool),
		loading:   true,
		vp:        viewport.New(80, 20),
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.reload()
}

func (m *browseModel) reload() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		e, err := load(context.Background())
		return browseLoadedMsg{engine: e, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case browseLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.engine = msg.engine
		}
		m.applyFilter()

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-browseChromeLines)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Fold):
			if vis := m.visible(); m.cursor < len(vis) && !vis[m.cursor].Leaf {
				id := vis[m.cursor].Item.ID
				m.collapsed[id] = !m.collapsed[id]
			}
		case key.Matches(msg, m.keys.Overdue):
			m.overdue = !m.overdue
			m.applyFilter()
		case key.Matches(msg, m.keys.Clear):
			m.overdue = false
			clear(m.statuses)
			m.applyFilter()
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.reload()
		default:
			for i, b := range m.keys.Statuses {
				if key.Matches(msg, b) {
					st := browseStatuses[i]
					m.statuses[st] = !m.statuses[st]
					m.applyFilter()
					break
				}
			}
		}
	}

	m.syncViewport()
	return m, nil
}

func (m *browseModel) selected() []domain.ItemStatus {
	var out []domain.ItemStatus
	for _, st := range browseStatuses {
		if m.statuses[st] {
			out = append(out, st)
		}
	}
	return out
}

func (m *browseModel) filtered() bool {
	return m.overdue || len(m.selected()) > 0
}

func (m *browseModel) applyFilter() {
	switch pred := wbs.TreeFilter(m.selected(), m.overdue, m.today); {
	case m.engine == nil:
		m.rows = nil
	case pred == nil:
		m.rows = m.engine.Rows()
	default:
		m.rows = m.engine.Filter(pred)
	}
	m.cursor = max(0, min(m.cursor, len(m.visible())-1))
}

// visible drops the rows below a folded item.
func (m *browseModel) visible() []wbs.Row {
	var out []wbs.Row
	foldedDepth := -1
	for _, r := range m.rows {
		if foldedDepth >= 0 {
			if r.Depth > foldedDepth {
				continue
			}
			foldedDepth = -1
		}
		out = append(out, r)
		if m.collapsed[r.Item.ID] {
			foldedDepth = r.Depth
		}
	}
	return out
}

func (m *browseModel) syncViewport() {
	m.vp.SetContent(m.renderRows())
	switch {
	case m.cursor < m.vp.YOffset:
		m.vp.SetYOffset(m.cursor)
	case m.cursor >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *browseModel) renderRows() string {
	vis := m.visible()
	lines := make([]string, len(vis))
	for i, r := range vis {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		fold := "  "
		if !r.Leaf {
			fold = "▾ "
			if m.collapsed[r.Item.ID] {
				fold = "▸ "
			}
		}
		lines[i] = fmt.Sprintf("%s%s%s%s %s  %s %s %3d%%",
			cursor,
			strings.Repeat("  ", r.Depth),
			formatter.Dim(fold),
			formatter.Dim(r.Item.Code),
			r.Item.Name,
			formatter.StatusPill(r.Status),
			formatter.RenderCompactBar(r.Progress, 10, r.Status == domain.StatusCancelled),
			r.Progress,
		)
	}
	return strings.Join(lines, "\n")
}

func (m *browseModel) filterSummary() string {
	var parts []string
	for _, st := range m.selected() {
		parts = append(parts, string(st))
	}
	if m.overdue {
		parts = append(parts, "overdue")
	}
	if len(parts) == 0 {
		return formatter.Dim("all items")
	}
	return formatter.StyleYellow.Render("filter: " + strings.Join(parts, " | "))
}

func (m *browseModel) helpLine() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Fold, m.keys.Overdue, m.keys.Clear, m.keys.Reload, m.keys.Quit}
	parts := []string{fmt.Sprintf("1-%d status", len(browseStatuses))}
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.title) + "  " + m.filterSummary() + "\n\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.loading && m.engine == nil:
		b.WriteString(formatter.Dim("Loading..."))
	case len(m.rows) == 0 && m.filtered():
		b.WriteString(formatter.Dim("No items match."))
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("No items yet."))
	default:
		b.WriteString(m.vp.View())
	}
	b.WriteString("\n\n" + m.helpLine())
	return b.String()
}

func newBrowseCmd(app *App) *cobra.Command {
	var eapRef string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the WBS tree interactively",
		Long: `Open a full-screen tree. Keys 1-6 toggle status filters, o toggles overdue,
c clears them; matching items are shown with their ancestors. Enter folds a
subtree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New(`browse needs an interactive terminal; use "eap tree" instead`)
			}
			ctx := cmd.Context()
			e, err := resolveEAP(ctx, app, eapRef)
			if err != nil {
				return err
			}
			m := newBrowseModel(e.DisplayID()+"  "+e.Name, app.now(), func(ctx context.Context) (*wbs.Engine, error) {
				return app.WBS.Load(ctx, e.ID)
			})
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	addEAPFlag(cmd.Flags(), &eapRef)
	return cmd
}
