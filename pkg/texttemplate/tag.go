// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"
	"strings"
)

type tagType int

const (
	tagVariable tagType = iota
	tagRawVariable
	tagSection
	tagInvertedSection
	tagClose
	tagPartial
	tagComment
	tagSetDelims
)

// sigils not (yet) part of the grammar; using them is an error rather than
// silently treating them as part of a variable name
const unsupportedSigils = "<$%@*+"

type tagMeta struct {
	typ     tagType
	name    string
	content string
	delims  Delims
	dynamic bool
}

// canBeStandalone reports whether the tag is removed along with its line
// when it is the only thing on that line. Variables never are.
func (m tagMeta) canBeStandalone() bool {
	switch m.typ {
	case tagVariable, tagRawVariable:
		return false
	default:
		return true
	}
}

func newTagMeta(inner string, triple bool) (tagMeta, error) {
	if triple {
		return namedTagMeta(tagRawVariable, inner)
	}

	trimmed := strings.TrimLeft(inner, " \t\r\n")
	if len(trimmed) == 0 {
		return tagMeta{}, fmt.Errorf("Expected tag to have a name")
	}

	sigil, rest := trimmed[0], trimmed[1:]

	switch sigil {
	case '#':
		return namedTagMeta(tagSection, rest)
	case '^':
		return namedTagMeta(tagInvertedSection, rest)
	case '/':
		return namedTagMeta(tagClose, rest)
	case '>':
		if dynamicRest, found := strings.CutPrefix(strings.TrimSpace(rest), "*"); found {
			meta, err := namedTagMeta(tagPartial, dynamicRest)
			meta.dynamic = true
			return meta, err
		}
		return namedTagMeta(tagPartial, rest)
	case '&':
		return namedTagMeta(tagRawVariable, rest)
	case '!':
		return tagMeta{typ: tagComment, content: rest}, nil
	case '=':
		delims, err := parseSetDelims(rest)
		if err != nil {
			return tagMeta{}, err
		}
		return tagMeta{typ: tagSetDelims, delims: delims}, nil
	}

	if strings.IndexByte(unsupportedSigils, sigil) >= 0 {
		return tagMeta{}, fmt.Errorf("Unknown tag sigil '%c'", sigil)
	}
	return namedTagMeta(tagVariable, trimmed)
}

func namedTagMeta(typ tagType, rest string) (tagMeta, error) {
	name := strings.TrimSpace(rest)
	if len(name) == 0 {
		return tagMeta{}, fmt.Errorf("Expected tag to have a name")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return tagMeta{}, fmt.Errorf("Expected tag name '%s' to not contain whitespace", name)
	}
	return tagMeta{typ: typ, name: name}, nil
}

func parseSetDelims(rest string) (Delims, error) {
	if !strings.HasSuffix(rest, "=") {
		return Delims{}, fmt.Errorf("Expected delimiter change to end with '='")
	}

	pieces := strings.Fields(strings.TrimSuffix(rest, "="))
	if len(pieces) != 2 {
		return Delims{}, fmt.Errorf("Expected delimiter change to have exactly two delimiters (format: {{=<open> <close>=}}), but found %d", len(pieces))
	}

	for _, piece := range pieces {
		if strings.Contains(piece, "=") {
			return Delims{}, fmt.Errorf("Expected delimiter '%s' to not contain '='", piece)
		}
	}

	return Delims{Open: pieces[0], Close: pieces[1]}, nil
}
