// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"strings"
	"testing"

	"carvel.dev/stache/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestOnceReaderReadsOnlyOnce(t *testing.T) {
	reader := files.NewOnceReader(strings.NewReader("{{name}}"))

	bs, err := reader.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "{{name}}", string(bs))

	_, err = reader.ReadAll()
	require.EqualError(t, err, "Expected standard input to be used by one template only ('-' given more than once)")
}
