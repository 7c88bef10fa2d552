// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos_test

import (
	"testing"

	"carvel.dev/stache/pkg/filepos"
	"github.com/stretchr/testify/require"
)

func TestPositionStrings(t *testing.T) {
	require.Equal(t, "line tpl.mustache:3:7", filepos.NewPositionInFile(3, 7, "tpl.mustache").AsString())
	require.Equal(t, "2:1", filepos.NewPositionInFile(2, 1, "").AsCompactString())
	require.Equal(t, "5", filepos.NewPosition(5).AsCompactString())
	require.Equal(t, "?", filepos.NewUnknownPosition().AsCompactString())
	require.Equal(t, "tpl:?", filepos.NewUnknownPositionInFile("tpl").AsCompactString())
}

func TestPositionDeepCopy(t *testing.T) {
	pos := filepos.NewPositionInFile(4, 2, "a")
	cp := pos.DeepCopy()
	require.Equal(t, pos.AsString(), cp.AsString())
	require.True(t, pos.IsNextTo(filepos.NewPositionInFile(5, 1, "a")))
	require.False(t, pos.IsNextTo(filepos.NewPositionInFile(5, 1, "b")))
	require.Nil(t, (*filepos.Position)(nil).DeepCopy())
}

func TestNewPositionRejectsZeroLine(t *testing.T) {
	require.Panics(t, func() { filepos.NewPosition(0) })
}
