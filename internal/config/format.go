package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	oerrors "github.com/openimis/fe-config/internal/errors"
	"github.com/openimis/fe-config/internal/ordered"
)

// Format is the syntax of a configuration document.
type Format string

const (
	// FormatJSON is the canonical configuration syntax.
	FormatJSON Format = "json"
	// FormatYAML is accepted for .yaml and .yml files.
	FormatYAML Format = "yaml"
	// FormatTOML is accepted for .toml files.
	FormatTOML Format = "toml"
)

// FormatFor returns the document format of a source. The environment
// variable always holds JSON; files are detected by extension and default
// to JSON.
func FormatFor(src SourceResult) Format {
	if src.Source == SourceEnv {
		return FormatJSON
	}
	switch strings.ToLower(filepath.Ext(src.Location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses, validates and decodes a configuration document.
// Syntax and schema errors are reported as ErrConfigParse.
func Decode(location string, format Format, data []byte) (*Document, error) {
	jsonData, err := toJSON(format, data)
	if err != nil {
		return nil, oerrors.NewParseError(location, err)
	}

	if !json.Valid(jsonData) {
		var v any
		err := json.Unmarshal(jsonData, &v)
		return nil, oerrors.NewParseError(location, err)
	}

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(location, jsonData); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, oerrors.NewParseError(location, err)
	}
	return &doc, nil
}

// toJSON normalizes a document to JSON text. YAML mappings keep their
// document order; TOML tables come out with sorted keys.
func toJSON(format Format, data []byte) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yamlToJSON(data)
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		out, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("converting TOML: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}

// yamlToJSON walks the YAML node tree so that mapping keys stay in document
// order. Scalars are converted by sigs.k8s.io/yaml.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return []byte("null"), nil
	}
	return nodeToJSON(&doc)
}

func nodeToJSON(n *yamlv3.Node) (json.RawMessage, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return json.RawMessage("null"), nil
		}
		return nodeToJSON(n.Content[0])

	case yamlv3.AliasNode:
		return nodeToJSON(n.Alias)

	case yamlv3.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range n.Content {
			raw, err := nodeToJSON(item)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	case yamlv3.MappingNode:
		m := ordered.New()
		if err := mergeMapping(m, n); err != nil {
			return nil, err
		}
		return m.MarshalJSON()

	case yamlv3.ScalarNode:
		text, err := yamlv3.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return yaml.YAMLToJSON(text)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

// mergeMapping copies the pairs of a mapping node into m. Keys merged in
// with "<<" come first and are overridden by the mapping's own keys.
func mergeMapping(m *ordered.Map, n *yamlv3.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if isMergeKey(n.Content[i]) {
			if err := mergeValue(m, n.Content[i+1]); err != nil {
				return err
			}
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			continue
		}
		if key.Kind != yamlv3.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		raw, err := nodeToJSON(value)
		if err != nil {
			return err
		}
		m.SetRaw(key.Value, raw)
	}
	return nil
}

// mergeValue applies the value of a "<<" key: a mapping, an alias of one,
// or a sequence of them where earlier entries win.
func mergeValue(m *ordered.Map, v *yamlv3.Node) error {
	switch v.Kind {
	case yamlv3.AliasNode:
		return mergeValue(m, v.Alias)
	case yamlv3.MappingNode:
		return mergeMapping(m, v)
	case yamlv3.SequenceNode:
		for i := len(v.Content) - 1; i >= 0; i-- {
			if err := mergeValue(m, v.Content[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}
}

func isMergeKey(n *yamlv3.Node) bool {
	return n.Kind == yamlv3.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}
