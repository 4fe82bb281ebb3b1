package viewstate

import (
	"go.uber.org/zap"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Controller holds the current ViewState for the single-threaded shell and
// applies the pure transitions to it. Subscribers are notified after every
// transition that was applied.
type Controller struct {
	schema      models.Schema
	state       models.ViewState
	logger      *zap.Logger
	subscribers []func(models.ViewState)
}

// NewController creates a controller with an empty state
func NewController(schema models.Schema, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		schema: schema,
		state:  models.NewViewState(),
		logger: logger.Named("viewstate"),
	}
}

// Schema returns the column schema the controller validates against
func (c *Controller) Schema() models.Schema {
	return c.schema
}

// State returns a copy of the current state
func (c *Controller) State() models.ViewState {
	return c.state.Clone()
}

// Subscribe registers fn to be called with the new state after each change
func (c *Controller) Subscribe(fn func(models.ViewState)) {
	c.subscribers = append(c.subscribers, fn)
}

// ToggleGrouping toggles key in the grouping and returns the new grouping
func (c *Controller) ToggleGrouping(key string) []string {
	c.commit("toggle_grouping", ToggleGrouping(c.state, key), zap.String("column", key))
	return append([]string{}, c.state.Grouping...)
}

// ToggleVisibility flips key's visibility and returns whether it is now visible
func (c *Controller) ToggleVisibility(key string) bool {
	c.commit("toggle_visibility", ToggleVisibility(c.state, key), zap.String("column", key))
	return c.state.IsVisible(key)
}

// CycleSort advances key's sort marker and returns the new marker
func (c *Controller) CycleSort(key string) models.SortDirection {
	c.commit("cycle_sort", CycleSort(c.state, key), zap.String("column", key))
	return c.state.Sort.Direction(key)
}

// SetGlobalFilter replaces the free-text filter
func (c *Controller) SetGlobalFilter(text string) {
	c.commit("set_global_filter", SetGlobalFilter(c.state, text), zap.String("text", text))
}

// SetCategoricalFilter sets or clears an Equals filter for key
func (c *Controller) SetCategoricalFilter(key, value string) {
	c.commit("set_categorical_filter", SetCategoricalFilter(c.state, key, value),
		zap.String("column", key), zap.String("value", value))
}

// SetTextFilter sets or clears a Contains filter for key
func (c *Controller) SetTextFilter(key, substring string) {
	c.commit("set_text_filter", SetTextFilter(c.state, key, substring),
		zap.String("column", key), zap.String("substring", substring))
}

// SetRangeFilter installs a range filter when both bounds are actionable and
// reports whether it did. A partial range leaves the state untouched.
func (c *Controller) SetRangeFilter(key, low, high string) bool {
	next, applied := SetRangeFilter(c.state, c.schema, key, low, high)
	if !applied {
		c.logger.Debug("range filter not actionable",
			zap.String("column", key), zap.String("low", low), zap.String("high", high))
		return false
	}
	c.commit("set_range_filter", next, zap.String("column", key), zap.String("low", low), zap.String("high", high))
	return true
}

// ClearColumnFilter removes the filter for key
func (c *Controller) ClearColumnFilter(key string) {
	c.commit("clear_column_filter", ClearColumnFilter(c.state, key), zap.String("column", key))
}

// Reset discards every grouping, visibility, sort and filter setting
func (c *Controller) Reset() {
	c.commit("reset", Reset())
}

func (c *Controller) commit(op string, next models.ViewState, fields ...zap.Field) {
	c.state = next
	c.logger.Debug(op, append(fields,
		zap.Strings("grouping", next.Grouping),
		zap.Int("sort_entries", len(next.Sort)),
		zap.Int("column_filters", len(next.ColumnFilters)),
	)...)

	for _, fn := range c.subscribers {
		fn(next.Clone())
	}
}
