package models

import "maps"

// SortDirection is the sort marker of a single column
type SortDirection int

const (
	Unsorted SortDirection = iota
	Ascending
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Next returns the marker after one activation: Unsorted -> Ascending -> Descending -> Unsorted
func (d SortDirection) Next() SortDirection {
	switch d {
	case Unsorted:
		return Ascending
	case Ascending:
		return Descending
	default:
		return Unsorted
	}
}

// SortEntry sorts by one column
type SortEntry struct {
	ColumnKey  string
	Descending bool
}

// SortSpec is the ordered list of sort entries, unique by column
type SortSpec []SortEntry

// Index returns the position of key in the spec, or -1
func (s SortSpec) Index(key string) int {
	for i, e := range s {
		if e.ColumnKey == key {
			return i
		}
	}
	return -1
}

// Direction returns the current marker for key
func (s SortSpec) Direction(key string) SortDirection {
	i := s.Index(key)
	if i < 0 {
		return Unsorted
	}
	if s[i].Descending {
		return Descending
	}
	return Ascending
}

// ViewState holds every user-controlled aspect of the grid
type ViewState struct {
	Grouping      []string        // Grouped column keys, in nesting order
	Visibility    map[string]bool // Absent key means visible
	Sort          SortSpec
	GlobalFilter  string
	ColumnFilters []ColumnFilter
}

// NewViewState returns the empty initial state
func NewViewState() ViewState {
	return ViewState{
		Grouping:      []string{},
		Visibility:    map[string]bool{},
		Sort:          SortSpec{},
		ColumnFilters: []ColumnFilter{},
	}
}

// Clone returns a deep copy that shares no slices or maps with s
func (s ViewState) Clone() ViewState {
	c := ViewState{
		Grouping:      append([]string{}, s.Grouping...),
		Visibility:    make(map[string]bool, len(s.Visibility)),
		Sort:          append(SortSpec{}, s.Sort...),
		GlobalFilter:  s.GlobalFilter,
		ColumnFilters: append([]ColumnFilter{}, s.ColumnFilters...),
	}
	maps.Copy(c.Visibility, s.Visibility)
	return c
}

// IsVisible reports whether a column is shown
func (s ViewState) IsVisible(key string) bool {
	visible, ok := s.Visibility[key]
	return !ok || visible
}

// IsGrouped reports whether a column is part of the grouping
func (s ViewState) IsGrouped(key string) bool {
	for _, k := range s.Grouping {
		if k == key {
			return true
		}
	}
	return false
}

// Filter returns the active filter for key
func (s ViewState) Filter(key string) (ColumnFilter, bool) {
	for _, f := range s.ColumnFilters {
		if f.ColumnKey == key {
			return f, true
		}
	}
	return ColumnFilter{}, false
}
