package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"jtask/internal/service"
)

// Format names an on-disk encoding of the task collection.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name. Empty means "infer from path".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, yaml, toml)", s)
	}
}

// FormatForPath infers the encoding from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// tomlDocument wraps the collection; TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []service.Task `toml:"tasks"`
}

// Encode serializes the full collection.
func Encode(f Format, tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch f {
	case FormatJSON, "":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: tasks}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

// Decode parses a collection. Blank input decodes to an empty collection.
func Decode(f Format, data []byte) ([]service.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []service.Task{}, nil
	}

	var tasks []service.Task
	switch f {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return nil, err
		}
	case FormatTOML:
		var doc tomlDocument
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
		tasks = doc.Tasks
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}

	if tasks == nil {
		tasks = []service.Task{}
	}
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return tasks, nil
}
