package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/schema"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

const (
	ZoneGridRowPrefix    = "grid-row-"
	ZoneGridHeaderPrefix = "grid-col-"

	minColumnWidth = 4
)

// GridView displays a grid.View with virtual scrolling, group headers and
// a column cursor
type GridView struct {
	Width        int
	Height       int
	MaxCellWidth int
	Theme        theme.Theme

	Schema    models.Schema
	Data      grid.View
	State     models.ViewState
	Collapsed map[string]bool
	HasData   bool
	Summary   string // Active filter description for the status line

	// Virtual scrolling state
	TopRow       int
	VisibleRows  int
	SelectedRow  int
	ActiveColumn int

	columnWidths []int
}

// NewGridView creates an empty grid view
func NewGridView(s models.Schema, th theme.Theme) *GridView {
	return &GridView{
		Schema:       s,
		Theme:        th,
		MaxCellWidth: 40,
		State:        models.NewViewState(),
		Collapsed:    map[string]bool{},
	}
}

// SetData replaces the rendered view and keeps the cursors in range
func (gv *GridView) SetData(view grid.View, state models.ViewState) {
	gv.Data = view
	gv.State = state
	gv.calculateColumnWidths()
	gv.clamp()
}

func (gv *GridView) calculateColumnWidths() {
	gv.columnWidths = make([]int, len(gv.Data.Columns))
	for i, col := range gv.Data.Columns {
		gv.columnWidths[i] = runewidth.StringWidth(gv.headerLabel(col))
	}

	for _, r := range gv.Data.Records {
		for i, cell := range gv.Data.Cells(r) {
			if w := runewidth.StringWidth(cell); w > gv.columnWidths[i] {
				gv.columnWidths[i] = w
			}
		}
	}

	for i := range gv.columnWidths {
		if gv.MaxCellWidth > 0 && gv.columnWidths[i] > gv.MaxCellWidth {
			gv.columnWidths[i] = gv.MaxCellWidth
		}
		if gv.columnWidths[i] < minColumnWidth {
			gv.columnWidths[i] = minColumnWidth
		}
	}
}

func (gv *GridView) clamp() {
	if gv.SelectedRow >= len(gv.Data.Lines) {
		gv.SelectedRow = len(gv.Data.Lines) - 1
	}
	if gv.SelectedRow < 0 {
		gv.SelectedRow = 0
	}
	if gv.ActiveColumn >= len(gv.Data.Columns) {
		gv.ActiveColumn = len(gv.Data.Columns) - 1
	}
	if gv.ActiveColumn < 0 {
		gv.ActiveColumn = 0
	}
	gv.scrollToSelection()
}

func (gv *GridView) visibleRows() int {
	rows := gv.Height - 3 // Header + separator + status
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (gv *GridView) scrollToSelection() {
	gv.VisibleRows = gv.visibleRows()
	if gv.SelectedRow < gv.TopRow {
		gv.TopRow = gv.SelectedRow
	}
	if gv.SelectedRow >= gv.TopRow+gv.VisibleRows {
		gv.TopRow = gv.SelectedRow - gv.VisibleRows + 1
	}
	if maxTop := len(gv.Data.Lines) - gv.VisibleRows; gv.TopRow > maxTop {
		gv.TopRow = max(maxTop, 0)
	}
	if gv.TopRow < 0 {
		gv.TopRow = 0
	}
}

// View renders the grid
func (gv *GridView) View() string {
	style := lipgloss.NewStyle().Width(gv.Width).Height(gv.Height)

	if !gv.HasData {
		return style.Render(gv.renderEmpty("No data available"))
	}
	if len(gv.Data.Columns) == 0 {
		return style.Render(gv.renderEmpty("All columns are hidden (press s to show columns)"))
	}

	var b strings.Builder
	b.WriteString(gv.renderHeader())
	b.WriteString("\n")
	b.WriteString(gv.renderSeparator())
	b.WriteString("\n")

	gv.scrollToSelection()
	endRow := min(gv.TopRow+gv.VisibleRows, len(gv.Data.Lines))

	if len(gv.Data.Lines) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(gv.Theme.Muted).Italic(true).Render(" No matching records"))
		b.WriteString("\n")
	}

	for i := gv.TopRow; i < endRow; i++ {
		line := gv.Data.Lines[i]
		var rendered string
		if line.Kind == grid.LineGroup {
			rendered = gv.renderGroup(line, i == gv.SelectedRow)
		} else {
			rendered = gv.renderRow(line, i, i == gv.SelectedRow)
		}
		b.WriteString(zone.Mark(fmt.Sprintf("%s%d", ZoneGridRowPrefix, i), rendered))
		b.WriteString("\n")
	}

	for i := endRow - gv.TopRow; i < gv.VisibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString(gv.renderStatus())

	return style.Render(b.String())
}

func (gv *GridView) renderEmpty(message string) string {
	msgStyle := lipgloss.NewStyle().
		Foreground(gv.Theme.Muted).
		Italic(true)
	return lipgloss.Place(max(gv.Width, 1), max(gv.Height, 1), lipgloss.Center, lipgloss.Center, msgStyle.Render(message))
}

func (gv *GridView) headerLabel(col models.ColumnDescriptor) string {
	label := col.Label
	switch gv.State.Sort.Direction(col.Key) {
	case models.Ascending:
		label += " ▲"
	case models.Descending:
		label += " ▼"
	default:
		return label
	}
	if len(gv.State.Sort) > 1 {
		label += fmt.Sprintf("%d", gv.State.Sort.Index(col.Key)+1)
	}
	return label
}

func (gv *GridView) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(gv.Theme.TableHeader)
	activeStyle := headerStyle.
		Foreground(gv.Theme.ActiveColumn).
		Underline(true)

	parts := make([]string, len(gv.Data.Columns))
	for i, col := range gv.Data.Columns {
		cell := pad(gv.headerLabel(col), gv.columnWidths[i])
		st := headerStyle
		if i == gv.ActiveColumn {
			st = activeStyle
		}
		parts[i] = zone.Mark(fmt.Sprintf("%s%d", ZoneGridHeaderPrefix, i), st.Render(cell))
	}
	return " " + strings.Join(parts, " │ ") + " "
}

func (gv *GridView) renderSeparator() string {
	parts := make([]string, len(gv.columnWidths))
	for i, width := range gv.columnWidths {
		parts[i] = strings.Repeat("─", width)
	}
	return lipgloss.NewStyle().
		Foreground(gv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (gv *GridView) renderGroup(line grid.Line, selected bool) string {
	g := line.Group
	icon := "▾"
	if gv.Collapsed[g.Path] {
		icon = "▸"
	}

	label := g.ColumnKey
	value := g.Value.String()
	if col, ok := gv.Schema.Column(g.ColumnKey); ok {
		label = col.Label
		value = col.Display(g.Value)
	}
	if value == "" {
		value = schema.NotAvailable
	}

	text := fmt.Sprintf("%s%s %s: %s (%d)", strings.Repeat("  ", line.Depth), icon, label, value, g.Count)

	style := lipgloss.NewStyle().Bold(true).Foreground(gv.Theme.GroupHeader)
	if selected {
		style = style.Background(gv.Theme.TableRowSelected)
	}
	return style.Render(" " + text)
}

func (gv *GridView) renderRow(line grid.Line, index int, selected bool) string {
	cells := gv.Data.Cells(line.Record)
	indent := strings.Repeat("  ", line.Depth)

	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := gv.columnWidths[i]
		if i == 0 {
			width = max(width-runewidth.StringWidth(indent), 1)
			cell = pad(cell, width)
			parts[i] = indent + cell
		} else {
			parts[i] = pad(cell, width)
		}
		if cells[i] == schema.NotAvailable && !selected {
			parts[i] = lipgloss.NewStyle().Foreground(gv.Theme.NotAvailable).Render(parts[i])
		}
	}

	text := " " + strings.Join(parts, " │ ") + " "

	if selected {
		return lipgloss.NewStyle().
			Background(gv.Theme.TableRowSelected).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Render(text)
	}
	if index%2 == 1 {
		return lipgloss.NewStyle().Background(gv.Theme.TableRowOdd).Render(text)
	}
	return text
}

func (gv *GridView) renderStatus() string {
	first, last := 0, 0
	if len(gv.Data.Lines) > 0 {
		first = gv.TopRow + 1
		last = min(gv.TopRow+gv.VisibleRows, len(gv.Data.Lines))
	}

	status := fmt.Sprintf(" 󰈙 %d-%d of %d lines │ %d of %d records", first, last, len(gv.Data.Lines), gv.Data.Matched(), gv.Data.Total)
	if len(gv.State.Grouping) > 0 {
		status += " │ grouped by " + strings.Join(gv.State.Grouping, " › ")
	}
	if gv.State.GlobalFilter != "" {
		status += fmt.Sprintf(" │ /%s", gv.State.GlobalFilter)
	}
	if gv.Summary != "" {
		status += " │ " + gv.Summary
	}

	return lipgloss.NewStyle().
		Foreground(gv.Theme.Muted).
		Italic(true).
		Render(runewidth.Truncate(status, max(gv.Width, 1), "…"))
}

// pad truncates or right-pads s to exactly width cells
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Update handles navigation keys. It reports whether the key was consumed.
func (gv *GridView) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		gv.MoveSelection(-1)
	case "down", "j":
		gv.MoveSelection(1)
	case "left", "h":
		gv.PrevColumn()
	case "right", "l":
		gv.NextColumn()
	case "ctrl+u", "pgup":
		gv.PageUp()
	case "ctrl+d", "pgdown":
		gv.PageDown()
	case "g", "home":
		gv.SelectedRow = 0
		gv.scrollToSelection()
	case "G", "end":
		gv.SelectedRow = max(len(gv.Data.Lines)-1, 0)
		gv.scrollToSelection()
	default:
		return false
	}
	return true
}

// MoveSelection moves the selection up or down
func (gv *GridView) MoveSelection(delta int) {
	gv.SelectedRow += delta
	gv.clamp()
}

// PageUp moves the selection one screen up
func (gv *GridView) PageUp() {
	gv.MoveSelection(-gv.visibleRows())
}

// PageDown moves the selection one screen down
func (gv *GridView) PageDown() {
	gv.MoveSelection(gv.visibleRows())
}

// NextColumn moves the column cursor right
func (gv *GridView) NextColumn() {
	if gv.ActiveColumn < len(gv.Data.Columns)-1 {
		gv.ActiveColumn++
	}
}

// PrevColumn moves the column cursor left
func (gv *GridView) PrevColumn() {
	if gv.ActiveColumn > 0 {
		gv.ActiveColumn--
	}
}

// ActiveColumnKey returns the key of the column under the cursor
func (gv *GridView) ActiveColumnKey() (string, bool) {
	if gv.ActiveColumn < 0 || gv.ActiveColumn >= len(gv.Data.Columns) {
		return "", false
	}
	return gv.Data.Columns[gv.ActiveColumn].Key, true
}

// SelectedLine returns the line under the row cursor
func (gv *GridView) SelectedLine() (grid.Line, bool) {
	if gv.SelectedRow < 0 || gv.SelectedRow >= len(gv.Data.Lines) {
		return grid.Line{}, false
	}
	return gv.Data.Lines[gv.SelectedRow], true
}

// SelectedCell returns the formatted cell at the row and column cursors
func (gv *GridView) SelectedCell() (string, bool) {
	line, ok := gv.SelectedLine()
	if !ok || line.Kind != grid.LineRecord {
		return "", false
	}
	cells := gv.Data.Cells(line.Record)
	if gv.ActiveColumn >= len(cells) {
		return "", false
	}
	return cells[gv.ActiveColumn], true
}

// SelectedRowText returns the selected record's visible cells, tab separated
func (gv *GridView) SelectedRowText() (string, bool) {
	line, ok := gv.SelectedLine()
	if !ok || line.Kind != grid.LineRecord {
		return "", false
	}
	return strings.Join(gv.Data.Cells(line.Record), "\t"), true
}

// HandleMouseClick selects the clicked row or header, and scrolls on wheel events
func (gv *GridView) HandleMouseClick(msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		gv.MoveSelection(-1)
		return true
	case tea.MouseButtonWheelDown:
		gv.MoveSelection(1)
		return true
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false
	}

	for i := range gv.Data.Columns {
		if zone.Get(fmt.Sprintf("%s%d", ZoneGridHeaderPrefix, i)).InBounds(msg) {
			gv.ActiveColumn = i
			return true
		}
	}

	endRow := min(gv.TopRow+gv.visibleRows(), len(gv.Data.Lines))
	for i := gv.TopRow; i < endRow; i++ {
		if zone.Get(fmt.Sprintf("%s%d", ZoneGridRowPrefix, i)).InBounds(msg) {
			gv.SelectedRow = i
			return true
		}
	}
	return false
}
