// Package records loads the static record source shown in the grid.
package records

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

//go:embed sample-data.json
var sampleData []byte

var (
	// ErrNoData is returned when the input is missing or is not a sequence of records
	ErrNoData = errors.New("no data available")
	// ErrUnsupportedFormat is returned for file extensions other than json, yaml and yml
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Format is the encoding of a record file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads records from a JSON or YAML file.
// An empty path loads the embedded sample dataset.
func Load(path string) ([]models.Record, error) {
	if path == "" {
		return Sample()
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	records, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Sample returns the embedded sample dataset
func Sample() ([]models.Record, error) {
	return Decode(sampleData, FormatJSON)
}

// Decode parses an array of records. Anything other than an array
// (null, an object, a scalar) yields ErrNoData; an empty array is valid.
func Decode(data []byte, format Format) ([]models.Record, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNoData
	}

	records := []models.Record{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON records: %w", err)
	}
	return records, nil
}

func decodeYAML(data []byte) ([]models.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML records: %w", err)
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, ErrNoData
	}

	records := []models.Record{}
	if err := doc.Content[0].Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid YAML records: %w", err)
	}
	return records, nil
}
