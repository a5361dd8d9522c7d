package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an item import file.
type ImportSchema struct {
	Items []ItemImport `json:"items" yaml:"items"`
}

// ItemImport defines one task or project. Refs are file-local names that
// Convert replaces with generated ids.
type ItemImport struct {
	Ref        string   `json:"ref" yaml:"ref"`
	Kind       string   `json:"kind" yaml:"kind"`
	Name       string   `json:"name" yaml:"name"`
	ParentRef  *string  `json:"parent_ref,omitempty" yaml:"parent_ref,omitempty"`
	ProjectRef *string  `json:"project_ref,omitempty" yaml:"project_ref,omitempty"`
	StartDate  *string  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	DueDate    *string  `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt  *string  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Completed  *string  `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Assignees  []string `json:"assignees,omitempty" yaml:"assignees,omitempty"`
}

const (
	KindTask    = "task"
	KindProject = "project"
)

// Format selects the decoder for ParseSchema.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the decoder from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ParseSchema decodes an import document.
func ParseSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}

// LoadFile reads and parses an import file in JSON or YAML.
func LoadFile(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data, FormatForPath(path))
}
