package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// FilterInput is the inline fuzzy filter box. The grid refilters on every keystroke.
type FilterInput struct {
	Input   textinput.Model
	Theme   theme.Theme
	Width   int
	Visible bool

	initial string // Value when opened, restored on Esc
}

// NewFilterInput creates a new filter input
func NewFilterInput(th theme.Theme) *FilterInput {
	ti := textinput.New()
	ti.Placeholder = "Fuzzy filter..."
	ti.CharLimit = 256
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &FilterInput{
		Input: ti,
		Theme: th,
	}
}

// Open shows the input prefilled with the current filter
func (f *FilterInput) Open(current string) tea.Cmd {
	f.Visible = true
	f.initial = current
	f.Input.SetValue(current)
	f.Input.CursorEnd()
	return f.Input.Focus()
}

// Close hides the input
func (f *FilterInput) Close() {
	f.Visible = false
	f.Input.Blur()
}

// Update handles messages
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			f.Close()
			return f, func() tea.Msg {
				return CloseFilterInputMsg{}
			}
		case "esc":
			f.Close()
			initial := f.initial
			return f, tea.Batch(
				func() tea.Msg { return GlobalFilterMsg{Text: initial} },
				func() tea.Msg { return CloseFilterInputMsg{Cleared: true} },
			)
		}
	}

	before := f.Input.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	if text := f.Input.Value(); text != before {
		return f, tea.Batch(cmd, func() tea.Msg {
			return GlobalFilterMsg{Text: text}
		})
	}
	return f, cmd
}

// View renders the filter input
func (f *FilterInput) View() string {
	inputWidth := f.Width - 12 // Border, padding and prompt
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.Input.Width = inputWidth

	promptStyle := lipgloss.NewStyle().
		Foreground(f.Theme.Success).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(f.Theme.Muted).
		Italic(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.Theme.BorderFocused).
		Padding(0, 1).
		Width(max(f.Width-2, 10))

	content := promptStyle.Render("Filter /") + " " + f.Input.View()
	helpText := helpStyle.Render("Enter: keep │ Esc: revert")

	return boxStyle.Render(content + "\n" + helpText)
}
