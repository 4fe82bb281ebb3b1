// Package viewstate owns the grid's grouping, visibility, sort and filter
// state. Every transition is a pure function from an old state and an input
// to a new state; the argument state is never mutated.
package viewstate

import (
	"slices"
	"strings"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
)

// AllCategories is the sentinel choice that clears a categorical filter
const AllCategories = "all"

// ToggleGrouping removes key from the grouping if present, else appends it
func ToggleGrouping(s models.ViewState, key string) models.ViewState {
	next := s.Clone()
	if i := slices.Index(next.Grouping, key); i >= 0 {
		next.Grouping = slices.Delete(next.Grouping, i, i+1)
	} else {
		next.Grouping = append(next.Grouping, key)
	}
	return next
}

// ToggleVisibility flips a column's visibility. Absent keys count as visible,
// so the first toggle hides the column.
func ToggleVisibility(s models.ViewState, key string) models.ViewState {
	next := s.Clone()
	next.Visibility[key] = !s.IsVisible(key)
	return next
}

// CycleSort advances key through Unsorted -> Ascending -> Descending -> Unsorted.
// Other entries keep their value and relative order.
func CycleSort(s models.ViewState, key string) models.ViewState {
	next := s.Clone()
	i := next.Sort.Index(key)
	switch next.Sort.Direction(key).Next() {
	case models.Ascending:
		next.Sort = append(next.Sort, models.SortEntry{ColumnKey: key})
	case models.Descending:
		next.Sort[i].Descending = true
	default:
		next.Sort = slices.Delete(next.Sort, i, i+1)
	}
	return next
}

// SetGlobalFilter stores text verbatim; "" matches every record
func SetGlobalFilter(s models.ViewState, text string) models.ViewState {
	next := s.Clone()
	next.GlobalFilter = text
	return next
}

// SetCategoricalFilter installs Equals(value) for key, or removes the key's
// filter when value is empty or the "all" sentinel
func SetCategoricalFilter(s models.ViewState, key, value string) models.ViewState {
	if isAll(value) {
		return ClearColumnFilter(s, key)
	}
	return withFilter(s, models.ColumnFilter{ColumnKey: key, Predicate: models.Equals{Value: value}})
}

// SetTextFilter installs Contains(substring) for key, or removes it when empty
func SetTextFilter(s models.ViewState, key, substring string) models.ViewState {
	if substring == "" {
		return ClearColumnFilter(s, key)
	}
	return withFilter(s, models.ColumnFilter{ColumnKey: key, Predicate: models.Contains{Substring: substring}})
}

// SetRangeFilter installs RangeInclusive(low, high) for key when both bounds
// are present and parse for the column's value kind. Otherwise the state is
// returned unchanged, leaving any earlier complete range active. Bounds are
// not reordered. The boolean reports whether the filter was installed.
func SetRangeFilter(s models.ViewState, schema models.Schema, key, low, high string) (models.ViewState, bool) {
	col, ok := schema.Column(key)
	if !ok || !filter.Supports(col, models.FilterRangeInclusive) {
		return s, false
	}

	lo, ok := ParseBound(col, low, false)
	if !ok {
		return s, false
	}
	hi, ok := ParseBound(col, high, true)
	if !ok {
		return s, false
	}

	return withFilter(s, models.ColumnFilter{
		ColumnKey: key,
		Predicate: models.RangeInclusive{Low: lo, High: hi},
	}), true
}

// ClearColumnFilter removes any filter for key
func ClearColumnFilter(s models.ViewState, key string) models.ViewState {
	next := s.Clone()
	next.ColumnFilters = slices.DeleteFunc(next.ColumnFilters, func(f models.ColumnFilter) bool {
		return f.ColumnKey == key
	})
	return next
}

// Reset returns the empty initial state
func Reset() models.ViewState {
	return models.NewViewState()
}

// withFilter replaces the filter for f.ColumnKey, so a key never has two
func withFilter(s models.ViewState, f models.ColumnFilter) models.ViewState {
	next := ClearColumnFilter(s, f.ColumnKey)
	next.ColumnFilters = append(next.ColumnFilters, f)
	return next
}

func isAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, AllCategories)
}
