package records

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

func TestDecodeJSON(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "Lamp", "category": "A", "subcategory": "x",
		 "createdAt": "2024-01-02T03:04:05Z", "updatedAt": "2024-02-02T03:04:05Z",
		 "price": 10.5, "sale_price": null},
		{"id": 2, "name": "Desk", "category": "B", "subcategory": "y",
		 "createdAt": "2024-03-02T03:04:05Z", "updatedAt": "2024-03-02T03:04:05Z",
		 "price": null}
	]`)

	records, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].ID)
	require.NotNil(t, records[0].Price)
	assert.InDelta(t, 10.5, *records[0].Price, 1e-9)
	assert.Nil(t, records[0].SalePrice)
	assert.Nil(t, records[1].Price)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), records[0].CreatedAt.UTC())
}

func TestDecodeJSON_NotASequence(t *testing.T) {
	for _, input := range []string{"", "null", `{"id": 1}`, `"text"`, "  42 "} {
		_, err := Decode([]byte(input), FormatJSON)
		assert.ErrorIs(t, err, ErrNoData, "input %q", input)
	}
}

func TestDecodeJSON_EmptyArray(t *testing.T) {
	records, err := Decode([]byte("[]"), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := Decode([]byte(`[{"id": "one"}]`), FormatJSON)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`
- id: 7
  name: Skillet
  category: Home
  subcategory: Kitchen
  createdAt: 2024-05-01T10:00:00Z
  updatedAt: 2024-05-03T10:00:00Z
  price: 39.99
- id: 8
  name: Shears
  category: Home
  subcategory: Garden
  createdAt: 2024-06-01T10:00:00Z
  updatedAt: 2024-06-01T10:00:00Z
`)

	records, err := Decode(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Skillet", records[0].Name)
	require.NotNil(t, records[0].Price)
	assert.InDelta(t, 39.99, *records[0].Price, 1e-9)
	assert.Nil(t, records[1].Price)
	assert.Equal(t, 2024, records[1].CreatedAt.Year())
}

func TestDecodeYAML_NotASequence(t *testing.T) {
	_, err := Decode([]byte("id: 1\nname: x\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Decode([]byte(""), FormatYAML)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("data/products.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromPath("products.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("products.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 3, "name": "Mug", "category": "Home"}]`), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mug", records[0].Name)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	objPath := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(objPath, []byte(`{"records": []}`), 0644))
	_, err = Load(objPath)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSample(t *testing.T) {
	records, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, records)

	seen := map[int]bool{}
	missingPrice := false
	for _, r := range records {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Category)
		assert.False(t, r.CreatedAt.IsZero())
		if r.Value(models.ColumnPrice).IsNull() {
			missingPrice = true
		}
	}
	assert.True(t, missingPrice, "sample should exercise missing prices")
}
