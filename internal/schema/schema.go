// Package schema defines the fixed column layout of the product grid.
package schema

import (
	"fmt"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// NotAvailable is shown for missing prices
const NotAvailable = "N/A"

// Options controls cell formatting
type Options struct {
	DateFormat     string // Go layout for timestamps
	CurrencySymbol string
}

// DefaultOptions returns the formatting defaults
func DefaultOptions() Options {
	return Options{
		DateFormat:     "2006-01-02 15:04:05",
		CurrencySymbol: "$",
	}
}

// Default returns the product schema with default formatting
func Default() models.Schema {
	return New(DefaultOptions())
}

// New builds the product schema. The schema is derived once and never mutated.
func New(opts Options) models.Schema {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultOptions().DateFormat
	}

	date := DateFormatter(opts.DateFormat)
	money := PriceFormatter(opts.CurrencySymbol)

	return models.Schema{
		{Key: models.ColumnID, Label: "ID", FilterKind: models.FilterEquals, ValueKind: models.KindInt},
		{Key: models.ColumnName, Label: "Name", FilterKind: models.FilterContains, ValueKind: models.KindText},
		{Key: models.ColumnCategory, Label: "Category", FilterKind: models.FilterEquals, ValueKind: models.KindText},
		{Key: models.ColumnSubcategory, Label: "Subcategory", FilterKind: models.FilterEquals, ValueKind: models.KindText},
		{Key: models.ColumnCreatedAt, Label: "Created At", FilterKind: models.FilterRangeInclusive, ValueKind: models.KindTime, Format: date},
		{Key: models.ColumnUpdatedAt, Label: "Updated At", FilterKind: models.FilterRangeInclusive, ValueKind: models.KindTime, Format: date},
		{Key: models.ColumnPrice, Label: "Price", FilterKind: models.FilterRangeInclusive, ValueKind: models.KindNumber, Format: money},
		{Key: models.ColumnSalePrice, Label: "Sale Price", FilterKind: models.FilterRangeInclusive, ValueKind: models.KindNumber, Format: money},
	}
}

// DateFormatter formats timestamps with layout; missing dates render empty
func DateFormatter(layout string) func(models.Value) string {
	return func(v models.Value) string {
		if v.Kind != models.KindTime {
			return v.String()
		}
		return v.Time.Format(layout)
	}
}

// PriceFormatter renders numbers with two decimals and missing values as N/A
func PriceFormatter(symbol string) func(models.Value) string {
	return func(v models.Value) string {
		f, ok := v.Float()
		if !ok {
			return NotAvailable
		}
		return fmt.Sprintf("%s%.2f", symbol, f)
	}
}
