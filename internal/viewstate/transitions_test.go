package viewstate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/schema"
)

func TestToggleGrouping_OddToggleCount(t *testing.T) {
	keys := schema.Default().Keys()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		state := models.NewViewState()
		counts := map[string]int{}

		steps := rng.Intn(30)
		for i := 0; i < steps; i++ {
			key := keys[rng.Intn(len(keys))]
			counts[key]++
			state = ToggleGrouping(state, key)
		}

		var want []string
		for k, n := range counts {
			if n%2 == 1 {
				want = append(want, k)
			}
		}
		require.ElementsMatch(t, want, state.Grouping, "run %d", run)
	}
}

func TestToggleGrouping_KeepsActivationOrder(t *testing.T) {
	state := models.NewViewState()
	state = ToggleGrouping(state, models.ColumnSubcategory)
	state = ToggleGrouping(state, models.ColumnCategory)
	state = ToggleGrouping(state, models.ColumnName)
	state = ToggleGrouping(state, models.ColumnCategory)

	assert.Equal(t, []string{models.ColumnSubcategory, models.ColumnName}, state.Grouping)
}

func TestToggleGrouping_DoesNotMutateInput(t *testing.T) {
	before := ToggleGrouping(models.NewViewState(), models.ColumnCategory)
	snapshot := before.Clone()

	_ = ToggleGrouping(before, models.ColumnCategory)
	_ = ToggleGrouping(before, models.ColumnName)

	if diff := cmp.Diff(snapshot.Grouping, before.Grouping); diff != "" {
		t.Errorf("input state mutated (-want +got):\n%s", diff)
	}
}

func TestToggleVisibility(t *testing.T) {
	state := models.NewViewState()
	require.True(t, state.IsVisible(models.ColumnPrice))

	state = ToggleVisibility(state, models.ColumnPrice)
	assert.False(t, state.IsVisible(models.ColumnPrice))

	state = ToggleVisibility(state, models.ColumnPrice)
	assert.True(t, state.IsVisible(models.ColumnPrice))
	assert.True(t, state.IsVisible(models.ColumnName))
}

func TestCycleSort_ThreeStates(t *testing.T) {
	state := models.NewViewState()

	state = CycleSort(state, models.ColumnPrice)
	assert.Equal(t, models.Ascending, state.Sort.Direction(models.ColumnPrice))

	state = CycleSort(state, models.ColumnPrice)
	assert.Equal(t, models.Descending, state.Sort.Direction(models.ColumnPrice))

	state = CycleSort(state, models.ColumnPrice)
	assert.Equal(t, models.Unsorted, state.Sort.Direction(models.ColumnPrice))
	assert.Equal(t, -1, state.Sort.Index(models.ColumnPrice))
}

func TestCycleSort_FollowsDirectionNext(t *testing.T) {
	state := models.NewViewState()
	for i := 0; i < 6; i++ {
		want := state.Sort.Direction(models.ColumnName).Next()
		state = CycleSort(state, models.ColumnName)
		assert.Equal(t, want, state.Sort.Direction(models.ColumnName), "activation %d", i+1)
	}
	assert.Equal(t, models.Unsorted, models.Descending.Next())
}

func TestCycleSort_LeavesOtherEntriesUntouched(t *testing.T) {
	state := models.NewViewState()
	state = CycleSort(state, models.ColumnName)
	state = CycleSort(state, models.ColumnPrice)
	state = CycleSort(state, models.ColumnCategory)
	state = CycleSort(state, models.ColumnCategory) // category desc

	want := models.SortSpec{
		{ColumnKey: models.ColumnName},
		{ColumnKey: models.ColumnCategory, Descending: true},
	}

	for i := 0; i < 3; i++ {
		state = CycleSort(state, models.ColumnPrice)
		if i == 0 {
			// price was ascending at index 1; it flips in place
			assert.Equal(t, 1, state.Sort.Index(models.ColumnPrice))
		}
	}

	// price: asc -> desc -> removed -> asc again (appended at the end)
	if diff := cmp.Diff(append(want, models.SortEntry{ColumnKey: models.ColumnPrice}), state.Sort); diff != "" {
		t.Errorf("sort spec mismatch (-want +got):\n%s", diff)
	}
}

func TestCycleSort_ThreeActivationsRestoreOthers(t *testing.T) {
	state := models.NewViewState()
	state = CycleSort(state, models.ColumnName)
	state = CycleSort(state, models.ColumnCategory)
	state = CycleSort(state, models.ColumnCategory)
	before := state.Clone()

	for i := 0; i < 3; i++ {
		state = CycleSort(state, models.ColumnPrice)
	}

	assert.Equal(t, models.Unsorted, state.Sort.Direction(models.ColumnPrice))
	if diff := cmp.Diff(before.Sort, state.Sort); diff != "" {
		t.Errorf("untouched sort entries changed (-want +got):\n%s", diff)
	}
}

func TestSetGlobalFilter(t *testing.T) {
	state := SetGlobalFilter(models.NewViewState(), "  Lamp ")
	assert.Equal(t, "  Lamp ", state.GlobalFilter)

	state = SetGlobalFilter(state, "")
	assert.Empty(t, state.GlobalFilter)
}

func TestSetCategoricalFilter_SetThenClear(t *testing.T) {
	for _, key := range schema.Default().Keys() {
		state := SetCategoricalFilter(models.NewViewState(), key, "v")
		_, ok := state.Filter(key)
		require.True(t, ok)

		state = SetCategoricalFilter(state, key, "")
		_, ok = state.Filter(key)
		assert.False(t, ok, "filter for %s should be removed", key)
	}
}

func TestSetCategoricalFilter_AllSentinel(t *testing.T) {
	state := SetCategoricalFilter(models.NewViewState(), models.ColumnCategory, "Books")
	state = SetCategoricalFilter(state, models.ColumnCategory, "All")
	assert.Empty(t, state.ColumnFilters)
}

func TestSetCategoricalFilter_ReplacesNeverDuplicates(t *testing.T) {
	state := models.NewViewState()
	state = SetCategoricalFilter(state, models.ColumnCategory, "A")
	state = SetCategoricalFilter(state, models.ColumnSubcategory, "x")
	state = SetCategoricalFilter(state, models.ColumnCategory, "B")

	require.Len(t, state.ColumnFilters, 2)
	f, ok := state.Filter(models.ColumnCategory)
	require.True(t, ok)
	assert.Equal(t, models.Equals{Value: "B"}, f.Predicate)
}

func TestSetTextFilter(t *testing.T) {
	state := SetTextFilter(models.NewViewState(), models.ColumnName, "lamp")
	f, ok := state.Filter(models.ColumnName)
	require.True(t, ok)
	assert.Equal(t, models.Contains{Substring: "lamp"}, f.Predicate)

	state = SetTextFilter(state, models.ColumnName, "")
	assert.Empty(t, state.ColumnFilters)
}

func TestSetRangeFilter_Numeric(t *testing.T) {
	state, applied := SetRangeFilter(models.NewViewState(), schema.Default(), models.ColumnPrice, "10", "50")
	require.True(t, applied)

	f, ok := state.Filter(models.ColumnPrice)
	require.True(t, ok)
	assert.Equal(t, models.RangeInclusive{Low: models.NumberValue(10), High: models.NumberValue(50)}, f.Predicate)
}

func TestSetRangeFilter_PartialIsNoOp(t *testing.T) {
	s := schema.Default()
	initial := SetCategoricalFilter(models.NewViewState(), models.ColumnCategory, "A")

	cases := [][2]string{{"", "50"}, {"10", ""}, {"", ""}, {"  ", "50"}, {"abc", "50"}, {"10", "-"}}
	for _, c := range cases {
		next, applied := SetRangeFilter(initial, s, models.ColumnPrice, c[0], c[1])
		assert.False(t, applied, "bounds %q", c)
		if diff := cmp.Diff(initial.ColumnFilters, next.ColumnFilters); diff != "" {
			t.Errorf("bounds %q changed filters (-want +got):\n%s", c, diff)
		}
	}
}

func TestSetRangeFilter_PreviousRangeStaysActive(t *testing.T) {
	s := schema.Default()
	state, applied := SetRangeFilter(models.NewViewState(), s, models.ColumnPrice, "10", "50")
	require.True(t, applied)

	// User clears the max field while editing
	state, applied = SetRangeFilter(state, s, models.ColumnPrice, "10", "")
	require.False(t, applied)

	f, ok := state.Filter(models.ColumnPrice)
	require.True(t, ok)
	assert.Equal(t, models.NumberValue(50), f.Predicate.(models.RangeInclusive).High)
}

func TestSetRangeFilter_InvertedInstalledVerbatim(t *testing.T) {
	state, applied := SetRangeFilter(models.NewViewState(), schema.Default(), models.ColumnPrice, "80", "20")
	require.True(t, applied)

	f, _ := state.Filter(models.ColumnPrice)
	assert.Equal(t, models.RangeInclusive{Low: models.NumberValue(80), High: models.NumberValue(20)}, f.Predicate)
}

func TestSetRangeFilter_Dates(t *testing.T) {
	state, applied := SetRangeFilter(models.NewViewState(), schema.Default(), models.ColumnCreatedAt, "2024-01-01", "2024-01-31")
	require.True(t, applied)

	f, _ := state.Filter(models.ColumnCreatedAt)
	r := f.Predicate.(models.RangeInclusive)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Low.Time)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), r.High.Time)
}

func TestSetRangeFilter_RejectsUnsupportedColumns(t *testing.T) {
	s := schema.Default()

	_, applied := SetRangeFilter(models.NewViewState(), s, models.ColumnName, "a", "z")
	assert.False(t, applied)

	_, applied = SetRangeFilter(models.NewViewState(), s, "unknown", "1", "2")
	assert.False(t, applied)
}

func TestSetRangeFilter_NumericIDColumn(t *testing.T) {
	state, applied := SetRangeFilter(models.NewViewState(), schema.Default(), models.ColumnID, "1", "5")
	require.True(t, applied)
	f, ok := state.Filter(models.ColumnID)
	require.True(t, ok)
	assert.Equal(t, models.RangeInclusive{Low: models.NumberValue(1), High: models.NumberValue(5)}, f.Predicate)
}

func TestSetRangeFilter_ReplacesPrior(t *testing.T) {
	s := schema.Default()
	state, _ := SetRangeFilter(models.NewViewState(), s, models.ColumnPrice, "1", "2")
	state, _ = SetRangeFilter(state, s, models.ColumnPrice, "3", "4")

	require.Len(t, state.ColumnFilters, 1)
	f, _ := state.Filter(models.ColumnPrice)
	assert.Equal(t, models.NumberValue(3), f.Predicate.(models.RangeInclusive).Low)
}

func TestClearColumnFilterAndReset(t *testing.T) {
	state := SetCategoricalFilter(models.NewViewState(), models.ColumnCategory, "A")
	state = SetTextFilter(state, models.ColumnName, "lamp")
	state = ClearColumnFilter(state, models.ColumnCategory)

	require.Len(t, state.ColumnFilters, 1)
	assert.Equal(t, models.ColumnName, state.ColumnFilters[0].ColumnKey)

	if diff := cmp.Diff(models.NewViewState(), Reset()); diff != "" {
		t.Errorf("reset state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBound(t *testing.T) {
	s := schema.Default()
	created, _ := s.Column(models.ColumnCreatedAt)
	price, _ := s.Column(models.ColumnPrice)

	v, ok := ParseBound(created, "2024-02-03 04:05", false)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 0, 0, time.UTC), v.Time)

	v, ok = ParseBound(created, "2024-02-03T04:05:06+02:00", true)
	require.True(t, ok)
	assert.True(t, v.Time.Equal(time.Date(2024, 2, 3, 2, 5, 6, 0, time.UTC)))

	_, ok = ParseBound(created, "03/02/2024", false)
	assert.False(t, ok)

	v, ok = ParseBound(price, " 12.5 ", false)
	require.True(t, ok)
	assert.Equal(t, models.NumberValue(12.5), v)

	_, ok = ParseBound(price, "NaN", false)
	assert.False(t, ok)
}
