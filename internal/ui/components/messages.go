package components

// ToggleGroupingMsg asks for a column to be added to or removed from the grouping
type ToggleGroupingMsg struct {
	ColumnKey string
}

// ToggleVisibilityMsg asks for a column to be shown or hidden
type ToggleVisibilityMsg struct {
	ColumnKey string
}

// CycleSortMsg asks for a column's sort marker to advance one step
type CycleSortMsg struct {
	ColumnKey string
}

// GlobalFilterMsg carries the current fuzzy filter text
type GlobalFilterMsg struct {
	Text string
}

// CategoryFilterMsg selects a categorical value; "all" clears it
type CategoryFilterMsg struct {
	ColumnKey string
	Value     string
}

// RangeFilterMsg carries both bounds of a range field after every edit
type RangeFilterMsg struct {
	ColumnKey string
	Low       string
	High      string
}

// CloseDrawerMsg is sent when the settings drawer should close
type CloseDrawerMsg struct{}

// CloseFilterInputMsg is sent when the global filter input is dismissed
type CloseFilterInputMsg struct {
	Cleared bool
}

// CloseErrorMsg is sent when the error overlay is dismissed
type CloseErrorMsg struct{}
