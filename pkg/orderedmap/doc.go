// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

Data values collected from flags, env variables and data files are kept in
this flavor of map so that bulk output and debug output stay deterministic.
A *Map can be pushed onto a render context as a scope.
*/
package orderedmap
