package models

import "time"

// Column keys of the record fields
const (
	ColumnID          = "id"
	ColumnName        = "name"
	ColumnCategory    = "category"
	ColumnSubcategory = "subcategory"
	ColumnCreatedAt   = "createdAt"
	ColumnUpdatedAt   = "updatedAt"
	ColumnPrice       = "price"
	ColumnSalePrice   = "sale_price"
)

// Record is a single product row of the record source
type Record struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category" yaml:"category"`
	Subcategory string    `json:"subcategory" yaml:"subcategory"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	Price       *float64  `json:"price" yaml:"price"`
	SalePrice   *float64  `json:"sale_price" yaml:"sale_price"`
}

// Value returns the cell for the given column key.
// Unknown keys and zero timestamps yield Null.
func (r Record) Value(key string) Value {
	switch key {
	case ColumnID:
		return IntValue(int64(r.ID))
	case ColumnName:
		return TextValue(r.Name)
	case ColumnCategory:
		return TextValue(r.Category)
	case ColumnSubcategory:
		return TextValue(r.Subcategory)
	case ColumnCreatedAt:
		return timeOrNull(r.CreatedAt)
	case ColumnUpdatedAt:
		return timeOrNull(r.UpdatedAt)
	case ColumnPrice:
		return OptionalNumber(r.Price)
	case ColumnSalePrice:
		return OptionalNumber(r.SalePrice)
	default:
		return Null()
	}
}

func timeOrNull(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return TimeValue(t)
}

// Float returns a pointer to f, for building records with prices
func Float(f float64) *float64 {
	return &f
}
