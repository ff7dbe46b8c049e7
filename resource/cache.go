// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"bytes"
	"io"

	lru "github.com/hashicorp/golang-lru"
)

// Cached is a read-through cache in front of another Loader.  Asset content is immutable
// for a given location and name, so concurrent population of the same key is harmless.
type Cached struct {
	loader Loader
	cache  *lru.Cache
}

// NewCached decorates a Loader with a bounded LRU cache holding at most size assets.
func NewCached(loader Loader, size int) (*Cached, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &Cached{loader: loader, cache: cache}, nil
}

func (c *Cached) Location() string {
	return c.loader.Location()
}

func (c *Cached) key(name string) string {
	return c.loader.Location() + "!" + name
}

func (c *Cached) Open(name string) (io.ReadCloser, error) {
	key := c.key(name)
	if value, ok := c.cache.Get(key); ok {
		return io.NopCloser(bytes.NewReader(value.([]byte))), nil
	}

	data, err := ReadAll(c.loader, name)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Len returns the number of cached assets
func (c *Cached) Len() int {
	return c.cache.Len()
}
