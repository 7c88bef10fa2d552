// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"os"
	"strings"

	"carvel.dev/stache/pkg/orderedmap"
	"github.com/spf13/cobra"
)

type Flags struct {
	FromFiles []string

	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromFiles   []string

	// Environ defaults to os.Environ
	Environ func() []string
}

func (s *Flags) Set(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&s.FromFiles, "data-values-file", nil, "Read data values from YAML, TOML or JSON file, picked by extension, '-' for YAML on stdin (can be specified multiple times)")

	cmd.Flags().StringArrayVar(&s.EnvFromStrings, "data-values-env", nil, "Extract data values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.EnvFromYAML, "data-values-env-yaml", nil, "Extract data values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	cmd.Flags().StringArrayVarP(&s.KVsFromStrings, "data-value", "v", nil, "Set specific data value to given value, as string (format: all.key1.subkey=123) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.KVsFromYAML, "data-value-yaml", nil, "Set specific data value to given value, parsed as YAML (format: all.key1.subkey=true) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&s.KVsFromFiles, "data-value-file", nil, "Set specific data value to given file contents, as string (format: all.key1.subkey=/file/path) (can be specified multiple times)")
}

// HasValues reports whether any data values flag was given.
func (s *Flags) HasValues() bool {
	return len(s.FromFiles)+len(s.EnvFromStrings)+len(s.EnvFromYAML)+
		len(s.KVsFromStrings)+len(s.KVsFromYAML)+len(s.KVsFromFiles) > 0
}

type flagsSource struct {
	Values        []string
	TransformFunc func(string) (interface{}, error)
}

// Values merges all data values sources into one map.
func (s *Flags) Values() (*orderedmap.Map, error) {
	plainValFunc := func(rawVal string) (interface{}, error) { return rawVal, nil }

	yamlValFunc := func(rawVal string) (interface{}, error) {
		val, err := ParseYAMLValue(rawVal)
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		return val, nil
	}

	result := orderedmap.NewMap()

	for _, path := range s.FromFiles {
		vals, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		merge(result, vals)
	}

	var dotted []*orderedmap.Map

	for _, src := range []flagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data values from env under prefix '%s': %s", envPrefix, err)
			}
			dotted = append(dotted, vals)
		}
	}

	// key=value flags override env vars
	for _, src := range []flagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}} {
		for _, kv := range src.Values {
			vals, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data value from KV: %s", err)
			}
			dotted = append(dotted, vals)
		}
	}

	for _, file := range s.KVsFromFiles {
		vals, err := s.file(file)
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from file: %s", err)
		}
		dotted = append(dotted, vals)
	}

	err := s.setNested(result, dotted)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Flags) env(prefix string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	environ := s.Environ
	if environ == nil {
		environ = os.Environ
	}

	for _, envVar := range environ() {
		pieces := strings.SplitN(envVar, "=", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from env variable '%s': %s", pieces[0], err)
		}

		// '__' gets translated into a '.' since periods may not be liked by shells
		result.Set(strings.ReplaceAll(strings.TrimPrefix(pieces[0], prefix+"_"), "__", "."), val)
	}

	return result, nil
}

func (s *Flags) kv(kv string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	result.Set(pieces[0], val)

	return result, nil
}

func (s *Flags) file(kv string) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=/file/path")
	}

	contents, err := os.ReadFile(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s'", pieces[1])
	}

	result.Set(pieces[0], string(contents))

	return result, nil
}

func (s *Flags) setNested(result *orderedmap.Map, multipleVals []*orderedmap.Map) error {
	for _, vals := range multipleVals {
		err := vals.IterateErr(func(key string, val interface{}) error {
			keyPieces := strings.Split(key, ".")
			currMap := result
			for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
				subMap, found := currMap.Get(keyPiece)
				if found {
					if typedSubMap, ok := subMap.(*orderedmap.Map); ok {
						currMap = typedSubMap
					} else {
						return fmt.Errorf("Expected key '%s' to not conflict with other data values at piece '%s'", key, keyPiece)
					}
				} else {
					newCurrMap := orderedmap.NewMap()
					currMap.Set(keyPiece, newCurrMap)
					currMap = newCurrMap
				}
			}
			currMap.Set(keyPieces[len(keyPieces)-1], val)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// merge copies src into dst, merging nested maps key by key.
func merge(dst, src *orderedmap.Map) {
	src.Iterate(func(key string, val interface{}) {
		if srcMap, ok := val.(*orderedmap.Map); ok {
			if existing, found := dst.Get(key); found {
				if dstMap, ok := existing.(*orderedmap.Map); ok {
					merge(dstMap, srcMap)
					return
				}
			}
		}
		dst.Set(key, val)
	})
}
