// Package filter evaluates column filters and the global text filter
// against in-memory records.
package filter

import (
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Evaluator applies a ViewState's filters to records
type Evaluator struct {
	schema models.Schema
}

// NewEvaluator creates an evaluator for the given schema
func NewEvaluator(schema models.Schema) *Evaluator {
	return &Evaluator{schema: schema}
}

// Apply returns the records that pass every column filter and the global
// filter, in their original order
func (e *Evaluator) Apply(records []models.Record, state models.ViewState) []models.Record {
	result := make([]models.Record, 0, len(records))
	for _, r := range records {
		if e.Matches(r, state) {
			result = append(result, r)
		}
	}
	return result
}

// Matches reports whether a single record passes the state's filters
func (e *Evaluator) Matches(r models.Record, state models.ViewState) bool {
	for _, f := range state.ColumnFilters {
		if !Matches(r.Value(f.ColumnKey), f.Predicate) {
			return false
		}
	}
	return e.matchesGlobal(r, state)
}

// matchesGlobal checks the free-text filter against every visible column
func (e *Evaluator) matchesGlobal(r models.Record, state models.ViewState) bool {
	pattern := strings.TrimSpace(state.GlobalFilter)
	if pattern == "" {
		return true
	}

	for _, col := range e.schema {
		if !state.IsVisible(col.Key) {
			continue
		}
		if ok, _ := FuzzyMatch(pattern, col.Display(r.Value(col.Key))); ok {
			return true
		}
	}
	return false
}

// Matches evaluates one predicate against a cell. Missing cells never match.
func Matches(v models.Value, p models.Predicate) bool {
	if v.IsNull() || p == nil {
		return false
	}

	switch p := p.(type) {
	case models.Equals:
		return matchEquals(v, p.Value)
	case models.Contains:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(p.Substring))
	case models.RangeInclusive:
		if p.Low.IsNull() || p.High.IsNull() {
			return false
		}
		return models.Compare(p.Low, v) <= 0 && models.Compare(v, p.High) <= 0
	default:
		return false
	}
}

func matchEquals(v models.Value, want string) bool {
	want = strings.TrimSpace(want)
	if f, ok := v.Float(); ok {
		if n, err := strconv.ParseFloat(want, 64); err == nil {
			return f == n
		}
	}
	return strings.EqualFold(strings.TrimSpace(v.String()), want)
}
