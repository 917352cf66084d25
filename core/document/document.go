// Package document reads and writes the flat named-value mappings
// records serialize to. Codecs share one contract, mapping in and
// mapping out, so the save format is a configuration detail rather
// than something the record layer knows about.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Codec loads and dumps a named-value mapping in one concrete text
// format.
type Codec interface {
	Load(r io.Reader) (map[string]any, error)
	Dump(w io.Writer, m map[string]any) error

	// Ext returns the file extension for the format, dot included.
	Ext() string
}

// JSON is the JSON codec. Numbers decode as float64, the generic
// representation JSON gives every number.
type JSON struct {
	// Indent pretty-prints dumped documents.
	Indent bool
}

// Load decodes one JSON document.
func (c JSON) Load(r io.Reader) (map[string]any, error) {
	var m map[string]any
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return m, nil
}

// Dump encodes the mapping as one JSON document.
func (c JSON) Dump(w io.Writer, m map[string]any) error {
	enc := json.NewEncoder(w)
	if c.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Ext returns ".json".
func (JSON) Ext() string { return ".json" }

// YAML is the YAML codec.
type YAML struct{}

// Load decodes one YAML document and normalizes it into the generic
// representation: string-keyed maps and []any sequences throughout.
func (YAML) Load(r io.Reader) (map[string]any, error) {
	var m map[string]any
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m, nil
}

// Dump encodes the mapping as one YAML document.
func (YAML) Dump(w io.Writer, m map[string]any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		enc.Close()
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// Ext returns ".yaml".
func (YAML) Ext() string { return ".yaml" }

// normalize rewrites decoded values into the generic document shape.
// yaml.v3 already produces map[string]any for string-keyed mappings;
// anything else is converted on the way in.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}
