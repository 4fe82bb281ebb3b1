package grid

import (
	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
)

// LineKind distinguishes group headers from data rows
type LineKind int

const (
	LineRecord LineKind = iota
	LineGroup
)

// Line is one display line of the grid
type Line struct {
	Kind   LineKind
	Group  *Group        // Set for LineGroup
	Record models.Record // Set for LineRecord
	Depth  int           // Indentation level
}

// View is everything the table needs for one render pass
type View struct {
	Columns []models.ColumnDescriptor // Visible columns in schema order
	Records []models.Record           // Filtered and sorted, ungrouped
	Groups  []*Group
	Lines   []Line
	Total   int // Records in the source before filtering
}

// Build filters, sorts and groups records for state. Groups whose Path is in
// collapsed contribute their header line only.
func Build(records []models.Record, schema models.Schema, state models.ViewState, collapsed map[string]bool) View {
	matched := filter.NewEvaluator(schema).Apply(records, state)
	sorted := Sort(matched, state.Sort)

	v := View{
		Columns: VisibleColumns(schema, state),
		Records: sorted,
		Total:   len(records),
	}

	if len(state.Grouping) == 0 {
		v.Lines = make([]Line, 0, len(sorted))
		for _, r := range sorted {
			v.Lines = append(v.Lines, Line{Kind: LineRecord, Record: r})
		}
		return v
	}

	v.Groups = GroupRecords(sorted, state.Grouping)
	v.Lines = flatten(v.Groups, collapsed, nil)
	return v
}

func flatten(groups []*Group, collapsed map[string]bool, lines []Line) []Line {
	for _, g := range groups {
		lines = append(lines, Line{Kind: LineGroup, Group: g, Depth: g.Depth})
		if collapsed[g.Path] {
			continue
		}
		if len(g.Children) > 0 {
			lines = flatten(g.Children, collapsed, lines)
			continue
		}
		for _, r := range g.Rows {
			lines = append(lines, Line{Kind: LineRecord, Record: r, Depth: g.Depth + 1})
		}
	}
	return lines
}

// VisibleColumns returns the schema columns not hidden by state
func VisibleColumns(schema models.Schema, state models.ViewState) []models.ColumnDescriptor {
	cols := make([]models.ColumnDescriptor, 0, len(schema))
	for _, c := range schema {
		if state.IsVisible(c.Key) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Cells formats a record's visible cells
func (v View) Cells(r models.Record) []string {
	cells := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		cells[i] = c.Display(r.Value(c.Key))
	}
	return cells
}

// Headers returns the labels of the visible columns
func (v View) Headers() []string {
	headers := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		headers[i] = c.Label
	}
	return headers
}

// Matched is the number of records passing the filters
func (v View) Matched() int {
	return len(v.Records)
}
