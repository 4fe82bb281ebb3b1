package models

// Predicate is the tagged variant of a column filter: Equals, Contains or RangeInclusive
type Predicate interface {
	Kind() FilterKind
	isPredicate()
}

// Equals matches cells whose canonical text equals Value
type Equals struct {
	Value string
}

// Contains matches cells containing Substring, ignoring case
type Contains struct {
	Substring string
}

// RangeInclusive matches Low <= cell <= High. Bounds are kept as given,
// so an inverted range is representable and simply matches nothing.
type RangeInclusive struct {
	Low  Value
	High Value
}

func (Equals) Kind() FilterKind         { return FilterEquals }
func (Contains) Kind() FilterKind       { return FilterContains }
func (RangeInclusive) Kind() FilterKind { return FilterRangeInclusive }

func (Equals) isPredicate()         {}
func (Contains) isPredicate()       {}
func (RangeInclusive) isPredicate() {}

// ColumnFilter is a structured predicate scoped to exactly one column
type ColumnFilter struct {
	ColumnKey string
	Predicate Predicate
}
