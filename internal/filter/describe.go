package filter

import (
	"fmt"
	"strings"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Describe renders column filters as a one-line summary such as
// `category = "Books" AND price BETWEEN 10 AND 50`
func Describe(filters []models.ColumnFilter) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(filters))
	for _, f := range filters {
		clause, err := describeFilter(f)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}

	return strings.Join(clauses, " AND "), nil
}

func describeFilter(f models.ColumnFilter) (string, error) {
	switch p := f.Predicate.(type) {
	case models.Equals:
		return fmt.Sprintf("%s = %q", f.ColumnKey, p.Value), nil
	case models.Contains:
		return fmt.Sprintf("%s CONTAINS %q", f.ColumnKey, p.Substring), nil
	case models.RangeInclusive:
		return fmt.Sprintf("%s BETWEEN %s AND %s", f.ColumnKey, describeValue(p.Low), describeValue(p.High)), nil
	default:
		return "", fmt.Errorf("unsupported predicate for column %s: %T", f.ColumnKey, f.Predicate)
	}
}

func describeValue(v models.Value) string {
	if v.Kind == models.KindTime {
		return v.Time.Format("2006-01-02 15:04")
	}
	return v.String()
}

// KindsFor returns the predicate kinds a column can be filtered with
func KindsFor(col models.ColumnDescriptor) []models.FilterKind {
	switch {
	case col.ValueKind.IsNumeric():
		return []models.FilterKind{models.FilterEquals, models.FilterRangeInclusive}
	case col.ValueKind == models.KindTime:
		return []models.FilterKind{models.FilterRangeInclusive}
	case col.ValueKind == models.KindText:
		return []models.FilterKind{models.FilterEquals, models.FilterContains}
	default:
		return []models.FilterKind{models.FilterEquals}
	}
}

// Supports reports whether kind is valid for col
func Supports(col models.ColumnDescriptor, kind models.FilterKind) bool {
	for _, k := range KindsFor(col) {
		if k == kind {
			return true
		}
	}
	return false
}
