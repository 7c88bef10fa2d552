// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"crypto/sha256"
	"encoding/hex"

	"carvel.dev/stache/pkg/texttemplate"
	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps parsed template trees. Trees are never modified after parsing,
// so one tree may be evaluated by many renders at once.
type Cache struct {
	trees *gocache.Cache
}

func NewCache() *Cache {
	return &Cache{trees: gocache.New(gocache.NoExpiration, 0)}
}

// Parse returns the cached tree for text or parses and caches it.
// A nil Cache always parses. Parse errors are not cached.
func (c *Cache) Parse(name string, delims texttemplate.Delims, text string) (*texttemplate.NodeRoot, error) {
	if c == nil {
		return texttemplate.NewParserWithDelims(delims).Parse([]byte(text), name)
	}

	key := c.key(name, delims, text)
	if cached, found := c.trees.Get(key); found {
		return cached.(*texttemplate.NodeRoot), nil
	}

	root, err := texttemplate.NewParserWithDelims(delims).Parse([]byte(text), name)
	if err != nil {
		return nil, err
	}

	c.trees.SetDefault(key, root)
	return root, nil
}

func (c *Cache) Len() int { return c.trees.ItemCount() }

func (c *Cache) Flush() { c.trees.Flush() }

func (*Cache) key(name string, delims texttemplate.Delims, text string) string {
	sum := sha256.Sum256([]byte(text))
	return name + "\x00" + delims.Open + "\x00" + delims.Close + "\x00" + hex.EncodeToString(sum[:])
}
