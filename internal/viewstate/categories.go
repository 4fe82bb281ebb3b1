package viewstate

import "github.com/rebeliceyang/lazygrid/internal/models"

// DeriveAvailableCategories returns the distinct category values in order of
// first occurrence
func DeriveAvailableCategories(records []models.Record) []string {
	return DeriveAvailableValues(records, models.ColumnCategory)
}

// DeriveAvailableValues returns the distinct canonical values of a column in
// order of first occurrence. Missing cells are skipped.
func DeriveAvailableValues(records []models.Record, key string) []string {
	seen := make(map[string]struct{})
	values := []string{}

	for _, r := range records {
		v := r.Value(key)
		if v.IsNull() {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}

	return values
}
