// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to stache's "commands" -- instances of cobra.Command
(not to be confused with ./cmd which contains the bootstrapping for executing
stache in various environments).

For a list of commands run:

	$ stache help

The default command is "render".
*/
package cmd
