package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/rebeliceyang/lazygrid/internal/grid"
)

// Export writes the view in the given format ("csv" or "json") to a new file
// in dir and returns its path
func Export(view grid.View, format, dir string) (string, error) {
	path := filepath.Join(dir, FileName(format, time.Now()))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	var err error
	switch format {
	case "csv":
		err = ExportToCSV(view, path)
	case "json":
		err = ExportToJSON(view, path)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// FileName builds a unique export file name
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("lazygrid-%s-%s.%s", now.Format("20060102-150405"), uuid.NewString()[:8], format)
}

// ExportToCSV exports the view's rows and visible columns to a CSV file
func ExportToCSV(view grid.View, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(view.Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range view.Records {
		if err := writer.Write(view.Cells(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// jsonRow is one exported object. Keys are written in column display order.
type jsonRow struct {
	keys   []string
	values []string
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExportToJSON exports the view as an array of objects keyed by column key,
// with keys in the same order as the CSV header
func ExportToJSON(view grid.View, path string) error {
	keys := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		keys[i] = col.Key
	}

	rows := make([]jsonRow, 0, len(view.Records))
	for _, r := range view.Records {
		rows = append(rows, jsonRow{keys: keys, values: view.Cells(r)})
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
