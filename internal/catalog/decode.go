package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

type rawEntry struct {
	ID          any    `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Category    string `json:"category" yaml:"category" toml:"category"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Auth        string `json:"auth" yaml:"auth" toml:"auth"`
	URL         string `json:"url" yaml:"url" toml:"url"`
}

// rawDocument is the object form of a source: a bare list under "apis", or a
// saved /api/apis response with the list under "data". The fields are
// pointers so a missing list can be told apart from an empty one.
type rawDocument struct {
	APIs    *[]rawEntry `json:"apis" yaml:"apis" toml:"apis"`
	Data    *[]rawEntry `json:"data" yaml:"data" toml:"data"`
	Success *bool       `json:"success" yaml:"success" toml:"success"`
}

func (d rawDocument) entries() ([]rawEntry, error) {
	if d.Success != nil && !*d.Success {
		return nil, fmt.Errorf("document is a failure response")
	}
	switch {
	case d.APIs != nil:
		return *d.APIs, nil
	case d.Data != nil:
		return *d.Data, nil
	default:
		return nil, fmt.Errorf("no apis or data list")
	}
}

// Decode parses raw source bytes into entries. Any error wraps
// ErrMalformedData. Entries are not validated here; see Validate.
func Decode(data []byte, format Format) ([]Entry, error) {
	var (
		raw []rawEntry
		err error
	)

	switch format {
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatTOML:
		raw, err = decodeTOML(data)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, format, err)
	}

	out := make([]Entry, 0, len(raw))
	for i, r := range raw {
		id, err := parseID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedData, i, err)
		}
		out = append(out, Entry{
			ID:          id,
			Name:        r.Name,
			Category:    r.Category,
			Description: r.Description,
			Auth:        r.Auth,
			URL:         r.URL,
		})
	}
	return out, nil
}

func decodeJSON(data []byte) ([]rawEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var raw []rawEntry
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		return raw, nil
	}

	var doc rawDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return doc.entries()
}

// expectEOF rejects anything but whitespace after the decoded value.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("trailing data after document")
	}
	return nil
}

func decodeYAML(data []byte) ([]rawEntry, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var raw []rawEntry
		if err := root.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document must be a list or a mapping")
	}

	var doc rawDocument
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.entries()
}

func decodeTOML(data []byte) ([]rawEntry, error) {
	var doc rawDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.entries()
}
