package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/rebeliceyang/lazygrid/internal/config"
	"github.com/rebeliceyang/lazygrid/internal/export"
	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/records"
	"github.com/rebeliceyang/lazygrid/internal/schema"
	"github.com/rebeliceyang/lazygrid/internal/ui/components"
	"github.com/rebeliceyang/lazygrid/internal/ui/help"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
	"github.com/rebeliceyang/lazygrid/internal/viewstate"
)

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	logger *zap.Logger

	// View state and the data it is applied to
	controller *viewstate.Controller
	schema     models.Schema
	records    []models.Record
	hasData    bool
	collapsed  map[string]bool
	view       grid.View
	dirty      bool

	gridPanel    components.Panel
	gridView     *components.GridView
	drawer       *components.SettingsDrawer
	filterInput  *components.FilterInput
	preview      *components.RecordPreview
	errorOverlay *components.ErrorOverlay

	statusMessage string
}

// ExportDoneMsg is sent when an export finishes
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ClipboardMsg is sent after a copy to the clipboard
type ClipboardMsg struct {
	What string
	Err  error
}

// New creates the application. loadErr is the error from loading data, if any;
// the grid then shows that no data is available.
func New(cfg *config.Config, data []models.Record, loadErr error, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.With(zap.String("session", uuid.NewString()))

	th := theme.GetTheme(cfg.UI.Theme)
	s := schema.New(schema.Options{
		DateFormat:     cfg.Data.DateFormat,
		CurrencySymbol: cfg.Data.CurrencySymbol,
	})

	state := models.NewAppState()
	state.DrawerWidth = cfg.UI.DrawerWidth

	a := &App{
		state:        state,
		config:       cfg,
		theme:        th,
		logger:       logger,
		controller:   viewstate.NewController(s, logger),
		schema:       s,
		records:      data,
		hasData:      loadErr == nil,
		collapsed:    map[string]bool{},
		gridPanel:    components.Panel{Title: "Products", Theme: th, Focused: true},
		gridView:     components.NewGridView(s, th),
		drawer:       components.NewSettingsDrawer(s, th),
		filterInput:  components.NewFilterInput(th),
		preview:      components.NewRecordPreview(s, th),
		errorOverlay: components.NewErrorOverlay(th),
	}

	a.gridView.MaxCellWidth = cfg.UI.MaxCellWidth
	a.gridView.HasData = a.hasData
	a.drawer.SetCategories(viewstate.DeriveAvailableCategories(data))
	a.controller.Subscribe(func(models.ViewState) {
		a.dirty = true
	})

	if loadErr != nil {
		a.records = nil
		if !errors.Is(loadErr, records.ErrNoData) {
			a.errorOverlay.Show("Failed to load data", loadErr)
		}
		logger.Warn("no data loaded", zap.Error(loadErr))
	} else {
		logger.Info("data loaded", zap.Int("records", len(data)))
	}

	a.updatePanelDimensions()
	a.refresh()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.dirty {
		a.refresh()
	}
	a.syncPreview()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case components.ToggleGroupingMsg:
		a.controller.ToggleGrouping(msg.ColumnKey)
		a.collapsed = map[string]bool{}
	case components.ToggleVisibilityMsg:
		a.controller.ToggleVisibility(msg.ColumnKey)
	case components.CycleSortMsg:
		a.controller.CycleSort(msg.ColumnKey)
	case components.GlobalFilterMsg:
		a.controller.SetGlobalFilter(msg.Text)
	case components.CategoryFilterMsg:
		a.controller.SetCategoricalFilter(msg.ColumnKey, msg.Value)
	case components.RangeFilterMsg:
		a.controller.SetRangeFilter(msg.ColumnKey, msg.Low, msg.High)

	case components.CloseDrawerMsg:
		a.closeDrawer()
	case components.CloseFilterInputMsg:
		a.updatePanelDimensions()
	case components.CloseErrorMsg:
		// Overlay already hidden

	case ExportDoneMsg:
		if msg.Err != nil {
			a.logger.Error("export failed", zap.Error(msg.Err))
			a.errorOverlay.Show("Export failed", msg.Err)
			return nil
		}
		a.logger.Info("exported view", zap.String("path", msg.Path))
		a.statusMessage = "Exported to " + filepath.Base(msg.Path)

	case ClipboardMsg:
		if msg.Err != nil {
			a.logger.Warn("clipboard write failed", zap.Error(msg.Err))
			a.errorOverlay.Show("Copy failed", msg.Err)
			return nil
		}
		a.statusMessage = "Copied " + msg.What
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// Handle error overlay dismissal first if visible
	if a.errorOverlay.Visible {
		if key == "ctrl+c" {
			return tea.Quit
		}
		_, cmd := a.errorOverlay.Update(msg)
		return cmd
	}

	if a.state.ViewMode == models.HelpMode {
		switch key {
		case "ctrl+c":
			return tea.Quit
		case "?", "esc", "q":
			a.state.ViewMode = models.NormalMode
		}
		return nil
	}

	if key == "ctrl+c" {
		return tea.Quit
	}

	if a.filterInput.Visible {
		_, cmd := a.filterInput.Update(msg)
		return cmd
	}

	if a.state.FocusedPane == models.DrawerPane {
		_, cmd := a.drawer.Update(msg)
		return cmd
	}

	return a.handleGridKey(msg)
}

func (a *App) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	a.statusMessage = ""
	columnKey, hasColumn := a.gridView.ActiveColumnKey()

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
	case "s":
		if a.state.DrawerOpen {
			a.closeDrawer()
		} else {
			a.openDrawer()
		}
	case "tab":
		a.openDrawer()
	case "/":
		cmd := a.filterInput.Open(a.controller.State().GlobalFilter)
		a.updatePanelDimensions()
		return cmd
	case "o":
		if hasColumn {
			a.controller.CycleSort(columnKey)
		}
	case "b":
		if hasColumn {
			a.controller.ToggleGrouping(columnKey)
			a.collapsed = map[string]bool{}
		}
	case "-":
		if hasColumn {
			a.controller.ToggleVisibility(columnKey)
		}
	case "f":
		a.filterBySelectedCell()
	case "F":
		if hasColumn {
			a.controller.ClearColumnFilter(columnKey)
		}
	case "enter":
		if line, ok := a.gridView.SelectedLine(); ok && line.Kind == grid.LineGroup {
			a.collapsed[line.Group.Path] = !a.collapsed[line.Group.Path]
			a.dirty = true
		}
	case "y":
		if cell, ok := a.gridView.SelectedCell(); ok {
			return copyToClipboard("cell", cell)
		}
	case "Y":
		if row, ok := a.gridView.SelectedRowText(); ok {
			return copyToClipboard("row", row)
		}
	case "x":
		return a.exportView()
	case "p":
		a.preview.Toggle()
		a.updatePanelDimensions()
	case "J":
		a.preview.ScrollDown()
	case "K":
		a.preview.ScrollUp()
	case "r":
		a.controller.Reset()
		a.drawer.ClearInputs()
		a.collapsed = map[string]bool{}
		a.statusMessage = "View reset"
	default:
		a.gridView.Update(msg)
	}
	return nil
}

// filterBySelectedCell installs the column's own predicate kind using the
// value under the cursor
func (a *App) filterBySelectedCell() {
	line, ok := a.gridView.SelectedLine()
	key, hasColumn := a.gridView.ActiveColumnKey()
	if !ok || !hasColumn || line.Kind != grid.LineRecord {
		return
	}
	col, _ := a.schema.Column(key)
	v := line.Record.Value(key)
	if v.IsNull() {
		a.statusMessage = "Cannot filter on an empty cell"
		return
	}

	switch col.FilterKind {
	case models.FilterContains:
		a.controller.SetTextFilter(key, v.String())
	case models.FilterRangeInclusive:
		bound := rangeBound(v)
		a.controller.SetRangeFilter(key, bound, bound)
	default:
		a.controller.SetCategoricalFilter(key, v.String())
	}
}

// rangeBound formats v so that parsing it back yields exactly v
func rangeBound(v models.Value) string {
	if v.Kind == models.KindTime {
		return v.Time.UTC().Format(time.RFC3339Nano)
	}
	return v.String()
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !a.config.UI.MouseEnabled || a.errorOverlay.Visible || a.state.ViewMode == models.HelpMode {
		return nil
	}

	if a.state.DrawerOpen {
		if handled, cmd := a.drawer.HandleMouseClick(msg); handled {
			a.focus(models.DrawerPane)
			return cmd
		}
	}

	if a.gridView.HandleMouseClick(msg) {
		if msg.Button == tea.MouseButtonLeft {
			a.focus(models.GridPane)
		}
	}
	return nil
}

func (a *App) openDrawer() {
	a.state.DrawerOpen = true
	a.focus(models.DrawerPane)
	a.updatePanelDimensions()
}

func (a *App) closeDrawer() {
	a.state.DrawerOpen = false
	a.focus(models.GridPane)
	a.updatePanelDimensions()
}

func (a *App) focus(pane models.PaneType) {
	a.state.FocusedPane = pane
	a.gridPanel.Focused = pane == models.GridPane
}

// refresh rebuilds the grid from the controller's current state
func (a *App) refresh() {
	state := a.controller.State()
	a.view = grid.Build(a.records, a.schema, state, a.collapsed)

	summary, err := filter.Describe(state.ColumnFilters)
	if err != nil {
		a.logger.Error("describe filters", zap.Error(err))
	}

	a.gridView.Summary = summary
	a.gridView.Collapsed = a.collapsed
	a.gridView.SetData(a.view, state)
	a.drawer.SetState(state)
	a.dirty = false
}

// syncPreview points the preview at the selected record
func (a *App) syncPreview() {
	if !a.preview.Visible {
		return
	}
	if line, ok := a.gridView.SelectedLine(); ok && line.Kind == grid.LineRecord {
		r := line.Record
		a.preview.SetRecord(&r, a.gridView.State)
		return
	}
	a.preview.SetRecord(nil, a.gridView.State)
}

func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{What: what, Err: clipboard.WriteAll(text)}
	}
}

func (a *App) exportView() tea.Cmd {
	if !a.hasData {
		a.statusMessage = "Nothing to export"
		return nil
	}
	view := a.view
	format := a.config.Export.Format
	dir := a.config.Export.Dir
	return func() tea.Msg {
		path, err := export.Export(view, format, dir)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	return zone.Scan(a.render())
}

func (a *App) render() string {
	// If error overlay is showing, render it centered on top of everything
	if a.errorOverlay.Visible {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.theme)
	}

	return a.renderNormalView()
}

// renderNormalView renders the grid, the drawer and the status bars
func (a *App) renderNormalView() string {
	source := a.config.Data.Source
	if source == "" {
		source = "sample data"
	}
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("lazygrid", filepath.Base(source)))

	bottomLeft := "[s] Settings │ [/] Filter │ [o] Sort │ [b] Group │ [q] Quit"
	if a.statusMessage != "" {
		bottomLeft = a.statusMessage
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, "[?] Help"))

	content := a.gridView.View()
	if a.preview.Visible {
		content += "\n" + a.preview.View()
	}
	if a.filterInput.Visible {
		content = a.filterInput.View() + "\n" + content
	}
	a.gridPanel.Content = content

	panes := a.gridPanel.View()
	if a.state.DrawerOpen {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes, a.drawer.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panes,
		bottomBar,
	)
}

// updatePanelDimensions calculates pane sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Reserve space for top bar (1 line) and bottom bar (1 line)
	contentHeight := max(a.state.Height-2, 5)

	gridWidth := a.state.Width
	if a.state.DrawerOpen {
		drawerWidth := min(a.state.DrawerWidth, a.state.Width/2)
		gridWidth -= drawerWidth
		a.drawer.Width = drawerWidth
		a.drawer.Height = contentHeight
	}

	a.gridPanel.Width = max(gridWidth, 20)
	a.gridPanel.Height = contentHeight

	// Panel border (2) and title (1)
	gridHeight := contentHeight - 3
	if a.filterInput.Visible {
		a.filterInput.Width = a.gridPanel.Width - 2
		gridHeight -= 4
	}
	if a.preview.Visible {
		a.preview.Width = a.gridPanel.Width - 2
		a.preview.MaxHeight = min(len(a.schema)+3, contentHeight/2)
		gridHeight -= a.preview.Height()
	}
	a.gridView.Width = a.gridPanel.Width - 2
	a.gridView.Height = max(gridHeight, 3)
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(a.state.Width-4, 0)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	if leftLen+rightLen >= availableWidth {
		return fmt.Sprintf("%s %s", left, right)
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}
