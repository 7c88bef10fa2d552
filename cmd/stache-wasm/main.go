// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"carvel.dev/stache/pkg/cmd/render"
	"carvel.dev/stache/pkg/cmd/ui"
)

type jsFunc func(js.Value, []js.Value) interface{}

func registerFunc(name string, fn jsFunc) {
	js.Global().Set(name, js.FuncOf(fn))
	fmt.Printf("Registered \"%s\" with Global.\n", name)
}

// renderBulk takes one string argument in bulk format and returns the bulk
// output as a string.
func renderBulk(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 || args[0].Type() != js.TypeString {
		return bulkError(fmt.Errorf("Expected exactly one string argument (bulk JSON)"))
	}

	in, err := render.BulkInput([]byte(args[0].String()))
	if err != nil {
		return bulkError(err)
	}

	tty := ui.NewCustomWriterTTY(false, &bytes.Buffer{}, &bytes.Buffer{})
	opts := render.NewOptions()
	opts.DataValuesFlags.Environ = func() []string { return nil }

	out, err := render.BulkOutput(opts.RunWithFiles(in, tty))
	if err != nil {
		return bulkError(err)
	}
	return string(out)
}

func bulkError(err error) interface{} {
	out, _ := render.BulkOutput(render.Output{Err: err})
	return string(out)
}

func main() {
	registerFunc("stache", renderBulk)

	// Go-based WASM modules must remain running to be available to the runtime.
	<-make(chan int)
}
