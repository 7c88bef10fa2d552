// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package datavalues builds the data a template is rendered against from
command line flags: whole YAML, TOML or JSON files, prefixed environment
variables and individual key=value pairs (dotted keys nest).

Later sources override earlier ones: files, then env, then key=value flags.
*/
package datavalues
