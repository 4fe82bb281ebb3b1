package models

// FilterKind is the comparison a column uses for its structured filter
type FilterKind int

const (
	FilterEquals FilterKind = iota
	FilterContains
	FilterRangeInclusive
)

func (k FilterKind) String() string {
	switch k {
	case FilterEquals:
		return "equals"
	case FilterContains:
		return "contains"
	case FilterRangeInclusive:
		return "betweenInclusive"
	default:
		return "unknown"
	}
}

// ColumnDescriptor describes one column of the grid
type ColumnDescriptor struct {
	Key        string
	Label      string
	FilterKind FilterKind
	ValueKind  ValueKind
	Format     func(Value) string // Optional display formatter
}

// Display renders a cell value for this column
func (c ColumnDescriptor) Display(v Value) string {
	if c.Format != nil {
		return c.Format(v)
	}
	return v.String()
}

// Schema is the ordered set of columns; order is display order
type Schema []ColumnDescriptor

// Column looks up a column by key
func (s Schema) Column(key string) (ColumnDescriptor, bool) {
	if i := s.Index(key); i >= 0 {
		return s[i], true
	}
	return ColumnDescriptor{}, false
}

// Index returns the position of key, or -1
func (s Schema) Index(key string) int {
	for i, c := range s {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Keys returns all column keys in display order
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, c := range s {
		keys[i] = c.Key
	}
	return keys
}
