// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/orderedmap"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks a format from the file extension; unknown extensions
// (and stdin) are read as YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// ReadFile reads a data values file (or stdin for "-") whose top level must
// be a map.
func ReadFile(path string) (*orderedmap.Map, error) {
	bs, err := files.NewSource(path).Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading data values file '%s': %s", path, err)
	}

	vals, err := Parse(bs, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("Parsing data values file '%s': %s", path, err)
	}
	return vals, nil
}

func Parse(data []byte, format Format) (*orderedmap.Map, error) {
	var val interface{}

	switch format {
	case FormatYAML:
		var err error
		val, err = parseYAML(data)
		if err != nil {
			return nil, err
		}
	case FormatTOML:
		var typedVal map[string]interface{}
		_, err := toml.Decode(string(data), &typedVal)
		if err != nil {
			return nil, err
		}
		val = typedVal
	case FormatJSON:
		err := json.Unmarshal(data, &val)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("Unknown data values format '%s'", format)
	}

	if val == nil {
		return orderedmap.NewMap(), nil
	}

	result, ok := orderedmap.Conversion{Object: val}.FromUnorderedMaps().(*orderedmap.Map)
	if !ok {
		return nil, fmt.Errorf("Expected data values to be a map, but was %T", val)
	}
	return result, nil
}

// ParseYAMLValue parses a single YAML value, such as the value part of
// --data-value-yaml key=value.
func ParseYAMLValue(data string) (interface{}, error) {
	return parseYAML([]byte(data))
}

// parseYAML keeps mapping keys in document order.
func parseYAML(data []byte) (interface{}, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// empty document
		return nil, nil
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])

	case yaml.MappingNode:
		result := orderedmap.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			err := node.Content[i].Decode(&key)
			if err != nil {
				return nil, fmt.Errorf("Decoding key at line %d: %s", node.Content[i].Line, err)
			}
			val, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		return result, nil

	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)

	default:
		var val interface{}
		err := node.Decode(&val)
		if err != nil {
			return nil, fmt.Errorf("Decoding value at line %d: %s", node.Line, err)
		}
		return val, nil
	}
}
