package grid

import (
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Group is a set of rows sharing the same value in one grouped column
type Group struct {
	ColumnKey string
	Value     models.Value
	Path      string // Unique across the tree, e.g. `category="Books"/subcategory="Fiction"`
	Depth     int
	Count     int
	Children  []*Group       // Set when further grouping keys follow
	Rows      []models.Record // Set on the innermost level only
}

// GroupRecords nests records by keys in order. Groups appear in order of
// first occurrence, so grouping an already sorted slice keeps the sort.
func GroupRecords(records []models.Record, keys []string) []*Group {
	return groupLevel(records, keys, 0, "")
}

func groupLevel(records []models.Record, keys []string, depth int, parent string) []*Group {
	if len(keys) == 0 {
		return nil
	}

	key := keys[0]
	index := make(map[string]*Group)
	var groups []*Group

	for _, r := range records {
		v := r.Value(key)
		id := v.Kind.String() + ":" + v.String()

		g, ok := index[id]
		if !ok {
			g = &Group{
				ColumnKey: key,
				Value:     v,
				Path:      joinPath(parent, pathSegment(key, v)),
				Depth:     depth,
			}
			index[id] = g
			groups = append(groups, g)
		}
		g.Rows = append(g.Rows, r)
		g.Count++
	}

	if len(keys) > 1 {
		for _, g := range groups {
			g.Children = groupLevel(g.Rows, keys[1:], depth+1, g.Path)
			g.Rows = nil
		}
	}

	return groups
}

// pathSegment quotes the value so separators inside it cannot forge a
// deeper path. Null stays unquoted to differ from an empty string.
func pathSegment(key string, v models.Value) string {
	if v.IsNull() {
		return key + "=null"
	}
	return key + "=" + strconv.Quote(v.String())
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return strings.Join([]string{parent, segment}, "/")
}
