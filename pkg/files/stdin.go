// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OnceReader hands out the contents of its reader to the first caller only.
// Templates given as '-' more than once would otherwise see empty input.
type OnceReader struct {
	mu   sync.Mutex
	in   io.Reader
	read bool
}

func NewOnceReader(in io.Reader) *OnceReader { return &OnceReader{in: in} }

func (r *OnceReader) ReadAll() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.read {
		return nil, fmt.Errorf("Expected standard input to be used by one template only ('-' given more than once)")
	}
	r.read = true
	return io.ReadAll(r.in)
}

var stdin = NewOnceReader(os.Stdin)

// ReadStdin reads os.Stdin; a second call fails.
func ReadStdin() ([]byte, error) { return stdin.ReadAll() }
