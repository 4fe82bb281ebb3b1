package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/schema"
)

func init() {
	// Initialize bubblezone for tests that call View() methods
	zone.NewGlobal()
}

func testRecords() []models.Record {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 9, 30, 0, 0, time.UTC) }
	return []models.Record{
		{ID: 1, Name: "Skillet", Category: "Home", Subcategory: "Kitchen", Price: models.Float(40), CreatedAt: day(5)},
		{ID: 2, Name: "Novel", Category: "Books", Subcategory: "Fiction", Price: models.Float(12), CreatedAt: day(3)},
		{ID: 3, Name: "Lamp", Category: "Home", Subcategory: "Lighting", CreatedAt: day(9)},
		{ID: 4, Name: "Atlas", Category: "Books", Subcategory: "History", Price: models.Float(30), CreatedAt: day(1)},
		{ID: 5, Name: "Knife", Category: "Home", Subcategory: "Kitchen", Price: models.Float(25), CreatedAt: day(7)},
	}
}

func buildView(state models.ViewState, collapsed map[string]bool) grid.View {
	return grid.Build(testRecords(), schema.Default(), state, collapsed)
}

// runCmd executes cmd and flattens batches into their messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
