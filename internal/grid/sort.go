// Package grid turns records and a ViewState into the rows the table shows:
// filtering, stable multi-key sorting and nested grouping.
package grid

import (
	"slices"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Sort returns a sorted copy of records ordered by each spec entry in turn.
// The sort is stable and missing cells sort last in both directions.
func Sort(records []models.Record, spec models.SortSpec) []models.Record {
	out := slices.Clone(records)
	if len(spec) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Record) int {
		for _, e := range spec {
			if c := compareCells(a.Value(e.ColumnKey), b.Value(e.ColumnKey), e.Descending); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func compareCells(a, b models.Value, descending bool) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}

	c := models.Compare(a, b)
	if descending {
		return -c
	}
	return c
}
