package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// RecordPreview shows every field of the selected record untruncated,
// including columns hidden from the grid
type RecordPreview struct {
	Width     int
	MaxHeight int
	Visible   bool
	Theme     theme.Theme

	schema models.Schema
	state  models.ViewState
	record *models.Record

	scrollY      int
	contentLines []string
	style        lipgloss.Style
}

// NewRecordPreview creates a hidden preview pane
func NewRecordPreview(s models.Schema, th theme.Theme) *RecordPreview {
	return &RecordPreview{
		Width:     80,
		MaxHeight: 10,
		Theme:     th,
		schema:    s,
		state:     models.NewViewState(),
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
	}
}

// SetRecord sets the record to show; nil when a group header is selected
func (p *RecordPreview) SetRecord(r *models.Record, state models.ViewState) {
	if r == nil || p.record == nil || r.ID != p.record.ID {
		p.scrollY = 0
	}
	p.record = r
	p.state = state
	p.contentLines = nil
}

// Toggle shows or hides the pane
func (p *RecordPreview) Toggle() {
	p.Visible = !p.Visible
	p.contentLines = nil
}

// Height returns the rendered height including borders, 0 when hidden
func (p *RecordPreview) Height() int {
	if !p.Visible {
		return 0
	}
	return p.MaxHeight
}

func (p *RecordPreview) bodyHeight() int {
	// Header line inside the frame
	return max(p.MaxHeight-p.style.GetVerticalFrameSize()-1, 1)
}

func (p *RecordPreview) formatContent() {
	p.contentLines = []string{}
	if p.record == nil {
		return
	}

	labelWidth := 0
	for _, col := range p.schema {
		labelWidth = max(labelWidth, runewidth.StringWidth(col.Label))
	}

	contentWidth := max(p.Width-p.style.GetHorizontalFrameSize(), 10)
	valueWidth := max(contentWidth-labelWidth-2, 4)

	for _, col := range p.schema {
		value := col.Display(p.record.Value(col.Key))
		if !p.state.IsVisible(col.Key) {
			value += " (hidden)"
		}
		label := runewidth.FillRight(col.Label, labelWidth) + ": "
		indent := strings.Repeat(" ", labelWidth+2)
		for i, line := range wrapText(value, valueWidth) {
			if i == 0 {
				p.contentLines = append(p.contentLines, label+line)
			} else {
				p.contentLines = append(p.contentLines, indent+line)
			}
		}
	}
}

// wrapText wraps text to fit within maxWidth cells
func wrapText(text string, maxWidth int) []string {
	if runewidth.StringWidth(text) <= maxWidth {
		return []string{text}
	}

	var result []string
	current := ""
	currentWidth := 0
	for _, r := range text {
		rWidth := runewidth.RuneWidth(r)
		if currentWidth+rWidth > maxWidth {
			result = append(result, current)
			current = string(r)
			currentWidth = rWidth
		} else {
			current += string(r)
			currentWidth += rWidth
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}

// ScrollUp scrolls content up
func (p *RecordPreview) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *RecordPreview) ScrollDown() {
	if p.contentLines == nil {
		p.formatContent()
	}
	if maxScroll := len(p.contentLines) - p.bodyHeight(); p.scrollY < maxScroll {
		p.scrollY++
	}
}

// View renders the preview pane
func (p *RecordPreview) View() string {
	if !p.Visible {
		return ""
	}
	if p.contentLines == nil {
		p.formatContent()
	}

	contentWidth := max(p.Width-p.style.GetHorizontalFrameSize(), 10)

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)
	header := "Record"
	if p.record != nil {
		header = "Record " + p.record.Value(models.ColumnID).String()
	}
	header = titleStyle.Render(header) + lipgloss.NewStyle().Foreground(p.Theme.Muted).Italic(true).Render("  J/K: scroll │ p: close")

	parts := []string{header}
	if p.record == nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(p.Theme.Muted).Render("Select a row to preview it"))
	}

	end := min(p.scrollY+p.bodyHeight(), len(p.contentLines))
	contentStyle := lipgloss.NewStyle().Foreground(p.Theme.Foreground)
	for i := p.scrollY; i < end; i++ {
		parts = append(parts, contentStyle.Render(runewidth.Truncate(p.contentLines[i], contentWidth, "…")))
	}

	innerHeight := max(p.MaxHeight-p.style.GetVerticalFrameSize(), 2)
	return p.style.
		Width(p.Width - p.style.GetHorizontalBorderSize()).
		Height(innerHeight).
		MaxHeight(p.MaxHeight).
		Render(strings.Join(parts, "\n"))
}
