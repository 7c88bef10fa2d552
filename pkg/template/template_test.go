// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/stache/pkg/orderedmap"
	"carvel.dev/stache/pkg/template"
	"github.com/k14s/difflib"
	"gopkg.in/yaml.v3"
)

var (
	selectedFileTestPath = kvArg("TestFileTests.filetest")
	showErrs             = kvArg("TestFileTests.errs")
)

// filetestHeader is the YAML document at the top of every filetest.
type filetestHeader struct {
	Data            interface{}       `yaml:"data"`
	Partials        map[string]string `yaml:"partials"`
	Escape          string            `yaml:"escape"`
	ZeroValuesFalsy bool              `yaml:"zero_values_falsy"`
}

func TestFileTests(t *testing.T) {
	entries, err := os.ReadDir("filetests")
	if err != nil {
		t.Fatal(err)
	}

	if len(selectedFileTestPath) > 0 {
		fmt.Printf("only running %s test(s)\n", selectedFileTestPath)
	}

	var errs []error

	for _, entry := range entries {
		filePath := filepath.Join("filetests", entry.Name())

		if len(selectedFileTestPath) > 0 && !strings.HasPrefix(entry.Name(), selectedFileTestPath) {
			continue
		}

		testDesc := fmt.Sprintf("checking %s ...\n", entry.Name())
		fmt.Printf("%s", testDesc)

		contents, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatal(err)
		}

		const (
			testSep   = "\n+++\n"
			errPrefix = "ERR:"
		)

		pieces := strings.SplitN(string(contents), testSep, 3)
		if len(pieces) != 3 {
			t.Fatalf("expected file %s to include two +++ separators", filePath)
		}

		// separators own the preceding newline
		resultStr, testErr := evalFileTest(pieces[0], pieces[1]+"\n")
		expectedStr := pieces[2]

		if strings.HasPrefix(expectedStr, errPrefix) {
			if testErr == nil {
				err = fmt.Errorf("expected eval error, but did not receive it")
			} else {
				err = expectEquals(testErr.Error(), strings.TrimSpace(strings.TrimPrefix(expectedStr, errPrefix)))
			}
		} else {
			if testErr == nil {
				err = expectEquals(resultStr, expectedStr)
			} else {
				err = fmt.Errorf("eval error: %v", testErr)
			}
		}

		if err != nil {
			fmt.Printf("   FAIL\n")
			if showErrs == "t" {
				sep := strings.Repeat(".", 80)
				fmt.Printf("%s\n%s%s\n", sep, err, sep)
			}
			errs = append(errs, fmt.Errorf("%s: %s", testDesc, err))
		} else {
			fmt.Printf("   .\n")
		}
	}

	for _, err := range errs {
		t.Errorf("%s", err.Error())
	}

	if len(selectedFileTestPath) > 0 {
		t.Errorf("skipped tests")
	}
}

func evalFileTest(headerStr, tplStr string) (string, error) {
	var header filetestHeader

	err := yaml.Unmarshal([]byte(headerStr), &header)
	if err != nil {
		return "", fmt.Errorf("unmarshaling test header: %s", err)
	}

	escape, err := template.EscapeByName(header.Escape)
	if err != nil {
		return "", err
	}

	cfg := template.Config{Escape: escape, ZeroValuesFalsy: header.ZeroValuesFalsy}
	renderer := template.NewRenderer(cfg,
		template.WithPartialLoader(template.MapPartialLoader(header.Partials)),
		template.WithCache(template.NewCache()))

	data := orderedmap.Conversion{Object: header.Data}.FromUnorderedMaps()

	return renderer.RenderNamed("tpl", tplStr, renderer.NewContext(data))
}

func expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<\n\n### diff expected...result:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}

func kvArg(name string) string {
	name += "="
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, name) {
			return strings.TrimPrefix(arg, name)
		}
	}
	return ""
}
