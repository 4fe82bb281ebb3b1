package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// ErrorOverlay shows an error until dismissed
type ErrorOverlay struct {
	Title   string
	Message string
	Width   int
	Theme   theme.Theme
	Visible bool
}

// NewErrorOverlay creates a hidden overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Width: 60,
		Theme: th,
	}
}

// Show displays err under title
func (e *ErrorOverlay) Show(title string, err error) {
	e.Title = title
	e.Message = err.Error()
	e.Visible = true
}

// Update dismisses the overlay on Esc or Enter
func (e *ErrorOverlay) Update(msg tea.KeyMsg) (*ErrorOverlay, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		e.Visible = false
		return e, func() tea.Msg {
			return CloseErrorMsg{}
		}
	}
	return e, nil
}

// View renders the overlay box
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Error).
		Bold(true)
	msgStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground).
		Width(max(e.Width-6, 10))
	helpStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted).
		Italic(true)

	content := titleStyle.Render(" "+e.Title) + "\n\n" +
		msgStyle.Render(e.Message) + "\n\n" +
		helpStyle.Render("Press Esc or Enter to dismiss")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Width(e.Width).
		Render(content)
}
