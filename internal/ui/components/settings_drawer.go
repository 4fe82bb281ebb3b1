package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
	"github.com/rebeliceyang/lazygrid/internal/viewstate"
)

// ZoneDrawerPrefix prefixes drawer item zones: drawer-<section>-<item>
const ZoneDrawerPrefix = "drawer-"

// DrawerSection identifies one block of the settings drawer
type DrawerSection int

const (
	SectionGrouping DrawerSection = iota
	SectionVisibility
	SectionSorting
	SectionGlobal
	SectionCategory
	SectionCreatedAt
	SectionPrice
	sectionCount
)

func (s DrawerSection) Title() string {
	switch s {
	case SectionGrouping:
		return "Grouping"
	case SectionVisibility:
		return "Show/Hide Columns"
	case SectionSorting:
		return "Sorting"
	case SectionGlobal:
		return "Fuzzy Text Filter"
	case SectionCategory:
		return "Filter by Category"
	case SectionCreatedAt:
		return "Created At"
	case SectionPrice:
		return "Price Range"
	default:
		return ""
	}
}

// SettingsDrawer is the side panel for grouping, visibility, sorting and filters.
// It never changes view state itself: every action is emitted as a message.
type SettingsDrawer struct {
	Width  int
	Height int
	Theme  theme.Theme

	schema     models.Schema
	state      models.ViewState
	categories []string

	section DrawerSection
	item    int
	offset  int // First rendered line

	globalInput textinput.Model
	dateStart   textinput.Model
	dateEnd     textinput.Model
	priceMin    textinput.Model
	priceMax    textinput.Model
}

// NewSettingsDrawer creates a drawer for the given columns
func NewSettingsDrawer(s models.Schema, th theme.Theme) *SettingsDrawer {
	return &SettingsDrawer{
		Width:       42,
		Height:      30,
		Theme:       th,
		schema:      s,
		state:       models.NewViewState(),
		globalInput: newDrawerInput("Search all columns..."),
		dateStart:   newDrawerInput("YYYY-MM-DD"),
		dateEnd:     newDrawerInput("YYYY-MM-DD"),
		priceMin:    newDrawerInput("0.00"),
		priceMax:    newDrawerInput("999.99"),
	}
}

func newDrawerInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 20
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// SetState refreshes the checkboxes and markers from the controller's state
func (d *SettingsDrawer) SetState(state models.ViewState) {
	d.state = state
	if d.globalInput.Value() != state.GlobalFilter {
		d.globalInput.SetValue(state.GlobalFilter)
	}
}

// SetCategories sets the choices of the category filter
func (d *SettingsDrawer) SetCategories(categories []string) {
	d.categories = categories
	d.clampItem()
}

// ClearInputs empties every text field, used after a view reset
func (d *SettingsDrawer) ClearInputs() {
	for _, ti := range d.inputs() {
		ti.SetValue("")
	}
}

func (d *SettingsDrawer) inputs() []*textinput.Model {
	return []*textinput.Model{&d.globalInput, &d.dateStart, &d.dateEnd, &d.priceMin, &d.priceMax}
}

// Cursor returns the focused section and item
func (d *SettingsDrawer) Cursor() (DrawerSection, int) {
	return d.section, d.item
}

func (d *SettingsDrawer) itemCount(s DrawerSection) int {
	switch s {
	case SectionGrouping, SectionVisibility, SectionSorting:
		return len(d.schema)
	case SectionGlobal:
		return 1
	case SectionCategory:
		return len(d.categories) + 1
	case SectionCreatedAt, SectionPrice:
		return 2
	default:
		return 0
	}
}

// input returns the text field at a cursor position, if any
func (d *SettingsDrawer) input(s DrawerSection, item int) *textinput.Model {
	switch s {
	case SectionGlobal:
		return &d.globalInput
	case SectionCreatedAt:
		if item == 0 {
			return &d.dateStart
		}
		return &d.dateEnd
	case SectionPrice:
		if item == 0 {
			return &d.priceMin
		}
		return &d.priceMax
	default:
		return nil
	}
}

func (d *SettingsDrawer) focusCurrent() {
	current := d.input(d.section, d.item)
	for _, ti := range d.inputs() {
		if ti == current {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

func (d *SettingsDrawer) clampItem() {
	if n := d.itemCount(d.section); d.item >= n {
		d.item = n - 1
	}
	if d.item < 0 {
		d.item = 0
	}
}

func (d *SettingsDrawer) moveSection(delta int) {
	d.section = DrawerSection((int(d.section) + delta + int(sectionCount)) % int(sectionCount))
	d.item = 0
	d.focusCurrent()
}

func (d *SettingsDrawer) moveItem(delta int) {
	d.item += delta
	switch {
	case d.item < 0:
		if d.section > 0 {
			d.section--
			d.item = d.itemCount(d.section) - 1
		} else {
			d.item = 0
		}
	case d.item >= d.itemCount(d.section):
		if d.section < sectionCount-1 {
			d.section++
			d.item = 0
		} else {
			d.item = d.itemCount(d.section) - 1
		}
	}
	d.focusCurrent()
}

// Update handles keyboard input while the drawer has focus
func (d *SettingsDrawer) Update(msg tea.KeyMsg) (*SettingsDrawer, tea.Cmd) {
	switch msg.String() {
	case "tab":
		d.moveSection(1)
		return d, nil
	case "shift+tab":
		d.moveSection(-1)
		return d, nil
	case "up":
		d.moveItem(-1)
		return d, nil
	case "down":
		d.moveItem(1)
		return d, nil
	case "esc":
		return d, func() tea.Msg {
			return CloseDrawerMsg{}
		}
	}

	if ti := d.input(d.section, d.item); ti != nil {
		return d, d.updateInput(ti, msg)
	}

	switch msg.String() {
	case "k":
		d.moveItem(-1)
	case "j":
		d.moveItem(1)
	case " ", "enter":
		return d, d.activate()
	}
	return d, nil
}

func (d *SettingsDrawer) updateInput(ti *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if ti.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, d.inputChanged())
}

// inputChanged emits the filter message for the focused field. Range fields
// always send both bounds, as they currently read.
func (d *SettingsDrawer) inputChanged() tea.Cmd {
	switch d.section {
	case SectionGlobal:
		text := d.globalInput.Value()
		return func() tea.Msg { return GlobalFilterMsg{Text: text} }
	case SectionCreatedAt:
		low, high := d.dateStart.Value(), d.dateEnd.Value()
		return func() tea.Msg {
			return RangeFilterMsg{ColumnKey: models.ColumnCreatedAt, Low: low, High: high}
		}
	case SectionPrice:
		low, high := d.priceMin.Value(), d.priceMax.Value()
		return func() tea.Msg {
			return RangeFilterMsg{ColumnKey: models.ColumnPrice, Low: low, High: high}
		}
	}
	return nil
}

// activate toggles or selects the item under the cursor
func (d *SettingsDrawer) activate() tea.Cmd {
	switch d.section {
	case SectionGrouping:
		key := d.schema[d.item].Key
		return func() tea.Msg { return ToggleGroupingMsg{ColumnKey: key} }
	case SectionVisibility:
		key := d.schema[d.item].Key
		return func() tea.Msg { return ToggleVisibilityMsg{ColumnKey: key} }
	case SectionSorting:
		key := d.schema[d.item].Key
		return func() tea.Msg { return CycleSortMsg{ColumnKey: key} }
	case SectionCategory:
		value := viewstate.AllCategories
		if d.item > 0 {
			value = d.categories[d.item-1]
		}
		return func() tea.Msg {
			return CategoryFilterMsg{ColumnKey: models.ColumnCategory, Value: value}
		}
	}
	return nil
}

// HandleMouseClick moves the cursor to the clicked item and activates it
func (d *SettingsDrawer) HandleMouseClick(msg tea.MouseMsg) (bool, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false, nil
	}

	for s := DrawerSection(0); s < sectionCount; s++ {
		for i := 0; i < d.itemCount(s); i++ {
			if zone.Get(drawerZoneID(s, i)).InBounds(msg) {
				d.section, d.item = s, i
				d.focusCurrent()
				if d.input(s, i) != nil {
					return true, nil
				}
				return true, d.activate()
			}
		}
	}
	return false, nil
}

func drawerZoneID(s DrawerSection, item int) string {
	return fmt.Sprintf("%s%d-%d", ZoneDrawerPrefix, s, item)
}

func (d *SettingsDrawer) selectedCategory() string {
	if f, ok := d.state.Filter(models.ColumnCategory); ok {
		if eq, ok := f.Predicate.(models.Equals); ok {
			return eq.Value
		}
	}
	return ""
}

func (d *SettingsDrawer) itemLabel(s DrawerSection, i int) string {
	switch s {
	case SectionGrouping:
		col := d.schema[i]
		return checkbox(d.state.IsGrouped(col.Key)) + " " + col.Label
	case SectionVisibility:
		col := d.schema[i]
		return checkbox(d.state.IsVisible(col.Key)) + " " + col.Label
	case SectionSorting:
		col := d.schema[i]
		marker := "  "
		switch d.state.Sort.Direction(col.Key) {
		case models.Ascending:
			marker = "▲" + fmt.Sprint(d.state.Sort.Index(col.Key)+1)
		case models.Descending:
			marker = "▼" + fmt.Sprint(d.state.Sort.Index(col.Key)+1)
		}
		return "[" + marker + "] " + col.Label
	case SectionGlobal:
		return "Search: " + d.globalInput.View()
	case SectionCategory:
		selected := d.selectedCategory()
		if i == 0 {
			return radio(selected == "") + " All"
		}
		value := d.categories[i-1]
		return radio(strings.EqualFold(selected, value)) + " " + value
	case SectionCreatedAt:
		if i == 0 {
			return "Start: " + d.dateStart.View()
		}
		return "End:   " + d.dateEnd.View()
	case SectionPrice:
		if i == 0 {
			return "Min: " + d.priceMin.View()
		}
		return "Max: " + d.priceMax.View()
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}

// View renders the drawer
func (d *SettingsDrawer) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(d.Theme.Foreground).
		Background(d.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sectionStyle := lipgloss.NewStyle().
		Foreground(d.Theme.SectionTitle).
		Bold(true)
	itemStyle := lipgloss.NewStyle().Padding(0, 1)
	cursorStyle := itemStyle.
		Background(d.Theme.Selection).
		Foreground(d.Theme.Foreground)
	summaryStyle := lipgloss.NewStyle().
		Foreground(d.Theme.Muted).
		Italic(true)

	var lines []string
	cursorLine := 0
	for s := DrawerSection(0); s < sectionCount; s++ {
		lines = append(lines, "", sectionStyle.Render(s.Title()))
		for i := 0; i < d.itemCount(s); i++ {
			st := itemStyle
			if s == d.section && i == d.item {
				st = cursorStyle
				cursorLine = len(lines)
			}
			lines = append(lines, zone.Mark(drawerZoneID(s, i), st.Render(d.itemLabel(s, i))))
		}
	}

	summary, err := filter.Describe(d.state.ColumnFilters)
	switch {
	case err != nil:
		lines = append(lines, "", lipgloss.NewStyle().Foreground(d.Theme.Error).Render("Error: "+err.Error()))
	case summary != "":
		lines = append(lines, "", sectionStyle.Render("Active Filters"), summaryStyle.Render(summary))
	}

	bodyHeight := max(d.Height-4, 1) // Border, title and help line
	if cursorLine < d.offset {
		d.offset = cursorLine
	}
	if cursorLine >= d.offset+bodyHeight {
		d.offset = cursorLine - bodyHeight + 1
	}
	end := min(d.offset+bodyHeight, len(lines))
	visible := lines[min(d.offset, end):end]

	helpText := summaryStyle.Render("Tab: section │ ↑↓: move │ Space: toggle │ Esc: close")

	content := titleStyle.Render("Settings") + "\n" + strings.Join(visible, "\n") + "\n" + helpText

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.Theme.BorderFocused).
		Width(max(d.Width-2, 10)).
		Height(max(d.Height-2, 3))

	return containerStyle.Render(content)
}
