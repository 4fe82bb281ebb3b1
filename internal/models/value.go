package models

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies the type held by a Value
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindText
	KindNumber
	KindTime
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of this kind compare as numbers
func (k ValueKind) IsNumeric() bool {
	return k == KindInt || k == KindNumber
}

// Value is a single typed cell value
type Value struct {
	Kind   ValueKind
	Int    int64
	Text   string
	Number float64
	Time   time.Time
}

// Null returns the missing value
func Null() Value { return Value{Kind: KindNull} }

// IntValue wraps an integer
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// TextValue wraps a string
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue wraps a float
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// TimeValue wraps a timestamp
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// OptionalNumber returns Null for a nil pointer
func OptionalNumber(f *float64) Value {
	if f == nil {
		return Null()
	}
	return NumberValue(*f)
}

// IsNull reports whether the value is missing
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Float returns the numeric value of Int and Number kinds
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindNumber:
		return v.Number, true
	default:
		return 0, false
	}
}

// String returns the canonical, unformatted text of the value.
// Null renders as an empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindTime:
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// Compare orders two non-null values. Numeric kinds compare numerically,
// timestamps chronologically, and everything else as case-insensitive text
// with a byte-wise tie break.
func Compare(a, b Value) int {
	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if a.Kind == KindTime && b.Kind == KindTime {
		return a.Time.Compare(b.Time)
	}

	as, bs := a.String(), b.String()
	if c := strings.Compare(strings.ToLower(as), strings.ToLower(bs)); c != 0 {
		return c
	}
	return strings.Compare(as, bs)
}
