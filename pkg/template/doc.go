// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template renders mustache templates.

A Renderer parses template text (see package texttemplate) and evaluates the
resulting tree against a scope.Context: variables are looked up and escaped,
sections repeat over sequences, call lambdas or push a value, inverted
sections render for falsy values, and partials are loaded through a
PartialLoader and rendered against the current context.

Parsed trees may be kept in a Cache shared between renders.
*/
package template
