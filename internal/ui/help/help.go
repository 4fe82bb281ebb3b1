package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section groups related key bindings under a title
type Section struct {
	Title    string
	Bindings []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
		{"s", "Open/close settings drawer"},
		{"Tab", "Focus settings drawer"},
		{"r", "Reset grouping, sorting and filters"},
	}
}

// GetGridKeys returns grid key bindings
func GetGridKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k ↓/j", "Move row selection"},
		{"←/h →/l", "Move active column"},
		{"Ctrl+U/Ctrl+D", "Page up/down"},
		{"g/G", "First/last row"},
		{"Enter", "Expand or collapse group"},
		{"o", "Cycle sort on active column"},
		{"b", "Toggle grouping by active column"},
		{"-", "Hide active column"},
		{"/", "Fuzzy text filter"},
		{"f", "Filter by value of selected cell"},
		{"F", "Clear filter on active column"},
		{"y", "Copy cell"},
		{"Y", "Copy row"},
		{"x", "Export current view"},
		{"p", "Toggle record preview"},
		{"J/K", "Scroll record preview"},
	}
}

// GetDrawerKeys returns settings drawer key bindings
func GetDrawerKeys() []KeyBinding {
	return []KeyBinding{
		{"Tab/Shift+Tab", "Next/previous section"},
		{"↑/↓", "Move within section"},
		{"Space/Enter", "Toggle, cycle or select"},
		{"Esc", "Close drawer and return to grid"},
	}
}

// Sections returns all help sections in display order
func Sections() []Section {
	return []Section{
		{Title: "Global", Bindings: GetGlobalKeys()},
		{Title: "Grid", Bindings: GetGridKeys()},
		{Title: "Settings Drawer", Bindings: GetDrawerKeys()},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.SectionTitle).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazygrid - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range Sections() {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, kb := range section.Bindings {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 20)).
		Height(max(height-4, 10))

	return boxStyle.Render(b.String())
}
