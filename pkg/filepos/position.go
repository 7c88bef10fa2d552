// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

type Position struct {
	lineNum *int // 1 based
	colNum  int  // 1 based, 0 if unknown
	file    string
	known   bool
}

func NewPosition(lineNum int) *Position {
	if lineNum <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{lineNum: &lineNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum", column "colNum"
// within the file "file"
func NewPositionInFile(lineNum, colNum int, file string) *Position {
	p := NewPosition(lineNum)
	p.colNum = colNum
	p.file = file
	return p
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

// NewUnknownPositionInFile produces a Position of a known file at an unknown line.
func NewUnknownPositionInFile(file string) *Position {
	return &Position{file: file}
}

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	if p.lineNum == nil {
		panic("Position was not properly initialized")
	}
	return *p.lineNum
}

func (p *Position) ColNum() int {
	if !p.IsKnown() {
		return 0
	}
	return p.colNum
}

func (p *Position) GetFile() string {
	if p == nil {
		return ""
	}
	return p.file
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

func (p *Position) AsCompactString() string {
	filePrefix := p.GetFile()
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if !p.IsKnown() {
		return fmt.Sprintf("%s?", filePrefix)
	}
	if p.colNum > 0 {
		return fmt.Sprintf("%s%d:%d", filePrefix, p.LineNum(), p.colNum)
	}
	return fmt.Sprintf("%s%d", filePrefix, p.LineNum())
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	newPos := &Position{file: p.file, known: p.known, colNum: p.colNum}
	if p.lineNum != nil {
		lineVal := *p.lineNum
		newPos.lineNum = &lineVal
	}
	return newPos
}

// IsNextTo compares the location of one position with another.
func (p *Position) IsNextTo(otherPosition *Position) bool {
	if p.IsKnown() && otherPosition.IsKnown() {
		if p.GetFile() == otherPosition.GetFile() {
			diff := p.LineNum() - otherPosition.LineNum()
			if -1 <= diff && 1 >= diff {
				return true
			}
		}
	}
	return false
}
