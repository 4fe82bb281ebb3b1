package viewstate

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Accepted timestamp layouts for range bounds, most specific first
var boundLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateOnly,
}

const dateOnly = "2006-01-02"

// ParseBound parses one range bound for a column. Blank or unparseable text
// is not actionable. A date-only upper bound covers the whole day.
// Timestamps without a zone are read as UTC.
func ParseBound(col models.ColumnDescriptor, text string, upper bool) (models.Value, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Null(), false
	}

	switch {
	case col.ValueKind.IsNumeric():
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return models.Null(), false
		}
		return models.NumberValue(f), true

	case col.ValueKind == models.KindTime:
		for _, layout := range boundLayouts {
			t, err := time.ParseInLocation(layout, text, time.UTC)
			if err != nil {
				continue
			}
			if upper && layout == dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			return models.TimeValue(t), true
		}
		return models.Null(), false

	default:
		return models.TextValue(text), true
	}
}
