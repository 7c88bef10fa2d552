// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"embed"
)

//go:embed assets
var assets embed.FS

type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type Example struct {
	ID          string                 `json:"id"`
	DisplayName string                 `json:"display_name"`
	Files       []File                 `json:"files,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

type exampleSet struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

var exampleSets = []exampleSet{
	{
		ID:          "basics",
		DisplayName: "Basics",
		Description: "Variables, sections and partials",
		Examples: []Example{
			{
				ID:          "hello",
				DisplayName: "Hello",
				Files: []File{
					{Name: "hello.txt.mustache", Content: "Hello {{name}}!\n"},
				},
				Data: map[string]interface{}{"name": "world"},
			},
			{
				ID:          "sections",
				DisplayName: "Sections",
				Files: []File{
					{Name: "list.txt.mustache", Content: "{{#items}}\n- {{.}}\n{{/items}}\n{{^items}}\nnothing\n{{/items}}\n"},
				},
				Data: map[string]interface{}{"items": []interface{}{"a", "b", "c"}},
			},
			{
				ID:          "partials",
				DisplayName: "Partials",
				Files: []File{
					{Name: "page.html.mustache", Content: "<ul>\n  {{#people}}\n  {{>person}}\n  {{/people}}\n</ul>\n"},
					{Name: "person.mustache", Content: "<li>{{name}}</li>\n"},
				},
				Data: map[string]interface{}{"people": []interface{}{
					map[string]interface{}{"name": "Ann"},
					map[string]interface{}{"name": "Bob <b>"},
				}},
			},
			{
				ID:          "delimiters",
				DisplayName: "Delimiters",
				Files: []File{
					{Name: "delims.txt.mustache", Content: "{{=<% %>=}}\n<% greeting %> {{literal}}\n"},
				},
				Data: map[string]interface{}{"greeting": "hi"},
			},
		},
	},
}
