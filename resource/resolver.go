// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a logical path is not part of the resource table
var ErrNotFound = errors.New("resource not found")

// Asset is a resolved, immutable piece of console content
type Asset struct {
	Data        []byte
	ContentType string
}

// Resolver maps logical paths onto asset content
type Resolver struct {
	table  Table
	loader Loader
}

// NewResolver produces a Resolver over a fixed table and loader strategy.
// If t is nil, DefaultTable is used.
func NewResolver(t Table, l Loader) *Resolver {
	if t == nil {
		t = DefaultTable
	}

	return &Resolver{
		table:  t,
		loader: l,
	}
}

// Table returns the resource table this resolver uses
func (r *Resolver) Table() Table {
	return r.table
}

// Location describes where the assets are loaded from
func (r *Resolver) Location() string {
	return r.loader.Location()
}

// Resolve looks up the logical path and loads its content.  A logical path not in the table
// yields ErrNotFound.  Any other error means a mapped asset could not be read, which is a
// deployment defect rather than a request problem.
func (r *Resolver) Resolve(logicalPath string) (Asset, error) {
	entry, ok := r.table.Get(logicalPath)
	if !ok {
		return Asset{}, ErrNotFound
	}

	data, err := ReadAll(r.loader, entry.PhysicalPath)
	if err != nil {
		return Asset{}, fmt.Errorf("unable to load %s from %s: %w", entry.PhysicalPath, r.loader.Location(), err)
	}

	return Asset{
		Data:        data,
		ContentType: entry.ContentType,
	}, nil
}

// Verify resolves every entry in the table once, returning the first failure.
func (r *Resolver) Verify() error {
	for _, logicalPath := range r.table.Paths() {
		if _, err := r.Resolve(logicalPath); err != nil {
			return err
		}
	}

	return nil
}
