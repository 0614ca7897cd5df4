package project

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a document encoding accepted by the importers.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml reads as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeProject parses a project document and normalizes it.
func DecodeProject(data []byte, format Format) (*Project, error) {
	var p Project
	if err := decodeDocument(data, format, &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// EncodeProject renders p as an importable document. YAML output is produced
// from the JSON encoding so node lists keep their tagged shape.
func EncodeProject(p *Project, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	if format != FormatYAML {
		return append(data, '\n'), nil
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode project yaml: %w", err)
	}
	return out, nil
}

// DecodeRecord parses a record document and expands legacy component counts.
func DecodeRecord(data []byte, format Format) (*Record, error) {
	var r Record
	if err := decodeDocument(data, format, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	NormalizeRecordCounts(&r)
	return &r, nil
}

// decodeDocument reads YAML through the JSON field names so both encodings
// share one set of struct tags and the node list codec.
func decodeDocument(data []byte, format Format, out any) error {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}
