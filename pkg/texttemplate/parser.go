// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"
	"strings"

	"carvel.dev/stache/pkg/filepos"
)

type ParseError struct {
	Position *filepos.Position
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Position.AsString())
}

type Parser struct {
	startDelims Delims

	associatedName string
	data           string
	delims         Delims
	lines          lineTracker
}

func NewParser() *Parser {
	return &Parser{startDelims: DefaultDelims}
}

// NewParserWithDelims returns a parser that starts with delims instead of
// the default {{ }} (used for lambda output inside a section that changed
// delimiters).
func NewParserWithDelims(delims Delims) *Parser {
	return &Parser{startDelims: delims}
}

type openSection struct {
	node      *NodeSection
	parent    *[]Node
	bodyStart int
}

func (p *Parser) Parse(dataBs []byte, associatedName string) (*NodeRoot, error) {
	p.associatedName = associatedName
	p.data = string(dataBs)
	p.delims = p.startDelims
	p.lines = lineTracker{data: p.data, line: 1}

	root := &NodeRoot{Name: associatedName}
	items := &root.Items
	var stack []openSection

	data := p.data
	pos := 0

	for pos < len(data) {
		idx := strings.Index(data[pos:], p.delims.Open)
		if idx < 0 {
			p.appendText(items, pos, len(data))
			break
		}

		tagStart := pos + idx
		contentStart := tagStart + len(p.delims.Open)
		closeMarker := p.delims.Close

		triple := p.delims == DefaultDelims && strings.HasPrefix(data[contentStart:], "{")
		if triple {
			contentStart++
			closeMarker = "}" + closeMarker
		}

		closeIdx := strings.Index(data[contentStart:], closeMarker)
		if closeIdx < 0 {
			return nil, p.newError(tagStart, "Missing tag closing '%s'", closeMarker)
		}
		contentEnd := contentStart + closeIdx
		tagEnd := contentEnd + len(closeMarker)

		meta, err := newTagMeta(data[contentStart:contentEnd], triple)
		if err != nil {
			return nil, p.newError(tagStart, "%s", err)
		}

		textEnd, nextPos, indent := tagStart, tagEnd, ""
		if meta.canBeStandalone() {
			if lineStart, lineEnd, ok := p.standalone(tagStart, tagEnd); ok {
				textEnd, nextPos, indent = lineStart, lineEnd, data[lineStart:tagStart]
			}
		}

		p.appendText(items, pos, textEnd)
		position := p.position(tagStart)

		switch meta.typ {
		case tagVariable, tagRawVariable:
			*items = append(*items, &NodeVariable{Position: position, Name: meta.name, Escaped: meta.typ == tagVariable})

		case tagSection, tagInvertedSection:
			node := &NodeSection{
				Position: position,
				Name:     meta.name,
				Inverted: meta.typ == tagInvertedSection,
				Delims:   p.delims,
			}
			*items = append(*items, node)
			stack = append(stack, openSection{node: node, parent: items, bodyStart: nextPos})
			items = &node.Items

		case tagClose:
			if len(stack) == 0 {
				return nil, p.newError(tagStart, "Unexpected closing tag '%s'", meta.name)
			}
			last := stack[len(stack)-1]
			if last.node.Name != meta.name {
				return nil, p.newError(tagStart, "Expected closing tag for section '%s' (opened at %s), but found '%s'",
					last.node.Name, last.node.Position.AsCompactString(), meta.name)
			}
			last.node.Raw = data[last.bodyStart:textEnd]
			stack = stack[:len(stack)-1]
			items = last.parent

		case tagPartial:
			*items = append(*items, &NodePartial{Position: position, Name: meta.name, Indent: indent, Dynamic: meta.dynamic})

		case tagComment:
			*items = append(*items, &NodeComment{Position: position, Content: meta.content})

		case tagSetDelims:
			p.delims = meta.delims
			*items = append(*items, &NodeSetDelims{Position: position, Delims: meta.delims})

		default:
			panic(fmt.Sprintf("unknown tag type %d", meta.typ))
		}

		pos = nextPos
	}

	if len(stack) > 0 {
		last := stack[len(stack)-1]
		return nil, &ParseError{Position: last.node.Position,
			Msg: fmt.Sprintf("Missing closing tag for section '%s'", last.node.Name)}
	}

	return root, nil
}

// standalone checks whether the tag spanning [tagStart, tagEnd) is the only
// non-whitespace content on its line. If so it returns the offset where the
// line starts and the offset just past the line ending.
func (p *Parser) standalone(tagStart, tagEnd int) (int, int, bool) {
	data := p.data

	lineStart := strings.LastIndexByte(data[:tagStart], '\n') + 1
	if !isBlank(data[lineStart:tagStart]) {
		return 0, 0, false
	}

	rest := data[tagEnd:]
	lineEnd := len(data)
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		lineEnd = tagEnd + nl + 1
		rest = rest[:nl]
	}
	if !isBlank(strings.TrimSuffix(rest, "\r")) {
		return 0, 0, false
	}

	return lineStart, lineEnd, true
}

func (p *Parser) appendText(items *[]Node, start, end int) {
	if end <= start {
		return
	}
	*items = append(*items, &NodeText{Position: p.position(start), Content: p.data[start:end]})
}

func (p *Parser) position(offset int) *filepos.Position {
	line, col := p.lines.at(offset)
	return filepos.NewPositionInFile(line, col, p.associatedName)
}

func (p *Parser) newError(offset int, msg string, args ...interface{}) error {
	return &ParseError{Position: p.position(offset), Msg: fmt.Sprintf(msg, args...)}
}

func isBlank(str string) bool {
	for i := 0; i < len(str); i++ {
		if str[i] != ' ' && str[i] != '\t' {
			return false
		}
	}
	return true
}

// lineTracker converts byte offsets to line/column pairs. Offsets are mostly
// requested in increasing order, so it only scans forward from the last one.
type lineTracker struct {
	data      string
	offset    int
	line      int
	lineStart int
}

func (t *lineTracker) at(offset int) (int, int) {
	if offset < t.offset {
		t.offset, t.line, t.lineStart = 0, 1, 0
	}
	for i := t.offset; i < offset && i < len(t.data); i++ {
		if t.data[i] == '\n' {
			t.line++
			t.lineStart = i + 1
		}
	}
	t.offset = offset
	return t.line, offset - t.lineStart + 1
}
