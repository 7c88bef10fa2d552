// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package naming holds the single rule that turns Go type names into template
names (and back into field names).

Both the Locator (when a template is looked up for an object) and View (when
a view names itself) use TemplateName, so the two can never disagree:

	HelloWorld     => hello_world
	TemplatePartial => template_partial
*/
package naming
