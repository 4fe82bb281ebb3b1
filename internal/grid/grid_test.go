package grid

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/schema"
	"github.com/rebeliceyang/lazygrid/internal/viewstate"
)

func products() []models.Record {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }
	return []models.Record{
		{ID: 1, Name: "Skillet", Category: "Home", Subcategory: "Kitchen", Price: models.Float(40), CreatedAt: day(5)},
		{ID: 2, Name: "Novel", Category: "Books", Subcategory: "Fiction", Price: models.Float(12), CreatedAt: day(3)},
		{ID: 3, Name: "Lamp", Category: "Home", Subcategory: "Lighting", CreatedAt: day(9)},
		{ID: 4, Name: "atlas", Category: "Books", Subcategory: "History", Price: models.Float(40), CreatedAt: day(1)},
		{ID: 5, Name: "Knife", Category: "Home", Subcategory: "Kitchen", Price: models.Float(25), CreatedAt: day(7)},
	}
}

func recordIDs(records []models.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestSort_Ascending(t *testing.T) {
	got := Sort(products(), models.SortSpec{{ColumnKey: models.ColumnPrice}})
	// Missing price last, ties keep input order
	assert.Equal(t, []int{2, 5, 1, 4, 3}, recordIDs(got))
}

func TestSort_DescendingKeepsNullsLast(t *testing.T) {
	got := Sort(products(), models.SortSpec{{ColumnKey: models.ColumnPrice, Descending: true}})
	assert.Equal(t, []int{1, 4, 5, 2, 3}, recordIDs(got))
}

func TestSort_MultiKey(t *testing.T) {
	got := Sort(products(), models.SortSpec{
		{ColumnKey: models.ColumnCategory},
		{ColumnKey: models.ColumnName, Descending: true},
	})
	// Books: Novel, atlas (case-insensitive desc); Home: Skillet, Lamp, Knife
	assert.Equal(t, []int{2, 4, 1, 3, 5}, recordIDs(got))
}

func TestSort_Timestamps(t *testing.T) {
	got := Sort(products(), models.SortSpec{{ColumnKey: models.ColumnCreatedAt}})
	assert.Equal(t, []int{4, 2, 1, 5, 3}, recordIDs(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := products()
	_ = Sort(in, models.SortSpec{{ColumnKey: models.ColumnName}})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, recordIDs(in))
}

func TestGroupRecords_Nested(t *testing.T) {
	groups := GroupRecords(products(), []string{models.ColumnCategory, models.ColumnSubcategory})
	require.Len(t, groups, 2)

	home := groups[0]
	assert.Equal(t, "Home", home.Value.String())
	assert.Equal(t, 3, home.Count)
	assert.Nil(t, home.Rows)
	require.Len(t, home.Children, 2)
	assert.Equal(t, `category="Home"/subcategory="Kitchen"`, home.Children[0].Path)
	assert.Equal(t, []int{1, 5}, recordIDs(home.Children[0].Rows))
	assert.Equal(t, 1, home.Children[0].Depth)

	books := groups[1]
	assert.Equal(t, 2, books.Count)
}

func TestGroupRecords_MissingValuesFormOneGroup(t *testing.T) {
	groups := GroupRecords(products(), []string{models.ColumnPrice})

	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Value.Kind.String()+":"+g.Value.String())
	}
	assert.Equal(t, []string{"number:40", "number:12", "null:", "number:25"}, labels)
	assert.Equal(t, 2, groups[0].Count)
}

func TestGroupRecords_PathsStayUniqueWithSeparatorsInValues(t *testing.T) {
	in := []models.Record{
		{ID: 1, Category: "x/subcategory=y", Subcategory: "z"},
		{ID: 2, Category: "x", Subcategory: "y"},
	}
	groups := GroupRecords(in, []string{models.ColumnCategory, models.ColumnSubcategory})
	require.Len(t, groups, 2)

	paths := map[string]int{}
	var walk func([]*Group)
	walk = func(gs []*Group) {
		for _, g := range gs {
			paths[g.Path]++
			walk(g.Children)
		}
	}
	walk(groups)

	assert.Len(t, paths, 4)
	for path, n := range paths {
		assert.Equal(t, 1, n, "path %s shared by %d groups", path, n)
	}
}

func TestBuild_CollapseTargetsOneGroup(t *testing.T) {
	in := []models.Record{
		{ID: 1, Category: "x/subcategory=y", Subcategory: "y"},
		{ID: 2, Category: "x", Subcategory: "y"},
	}
	state := viewstate.ToggleGrouping(models.NewViewState(), models.ColumnCategory)
	state = viewstate.ToggleGrouping(state, models.ColumnSubcategory)

	open := Build(in, schema.Default(), state, nil)
	require.Len(t, open.Groups, 2)
	require.Equal(t, "x", open.Groups[1].Value.String())
	target := open.Groups[1].Children[0].Path

	collapsed := Build(in, schema.Default(), state, map[string]bool{target: true})
	assert.Equal(t, len(open.Lines)-1, len(collapsed.Lines))
}

func TestBuild_FlatView(t *testing.T) {
	s := schema.Default()
	state := viewstate.SetCategoricalFilter(models.NewViewState(), models.ColumnCategory, "Home")
	state = viewstate.CycleSort(state, models.ColumnName)
	state = viewstate.ToggleVisibility(state, models.ColumnUpdatedAt)

	v := Build(products(), s, state, nil)

	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 3, v.Matched())
	assert.Equal(t, []int{5, 3, 1}, recordIDs(v.Records))
	require.Len(t, v.Lines, 3)
	assert.Equal(t, LineRecord, v.Lines[0].Kind)
	assert.NotContains(t, v.Headers(), "Updated At")
	assert.Len(t, v.Columns, len(s)-1)
}

func TestBuild_GroupedLines(t *testing.T) {
	state := viewstate.ToggleGrouping(models.NewViewState(), models.ColumnCategory)
	state = viewstate.CycleSort(state, models.ColumnID)

	v := Build(products(), schema.Default(), state, nil)

	var kinds []LineKind
	for _, l := range v.Lines {
		kinds = append(kinds, l.Kind)
	}
	want := []LineKind{LineGroup, LineRecord, LineRecord, LineRecord, LineGroup, LineRecord, LineRecord}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("line kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, v.Lines[1].Depth)
}

func TestBuild_CollapsedGroup(t *testing.T) {
	state := viewstate.ToggleGrouping(models.NewViewState(), models.ColumnCategory)

	v := Build(products(), schema.Default(), state, map[string]bool{`category="Home"`: true})

	require.Len(t, v.Lines, 4)
	assert.Equal(t, LineGroup, v.Lines[0].Kind)
	assert.Equal(t, LineGroup, v.Lines[1].Kind)
	assert.Equal(t, 3, v.Lines[0].Group.Count)
}

func TestView_CellsFormatting(t *testing.T) {
	v := Build(products(), schema.Default(), models.NewViewState(), nil)

	cells := v.Cells(products()[2])
	assert.Equal(t, "3", cells[0])
	assert.Equal(t, "2024-01-09 12:00:00", cells[4])
	assert.Equal(t, "N/A", cells[6])
}
