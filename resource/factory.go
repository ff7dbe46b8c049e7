// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"archive/zip"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

var (
	ErrNoLocation = errors.New("an asset location or a packaged source is required")
)

// Factory provides a common way to configure asset loading.  This type is typically
// unmarshalled from external configuration.
type Factory struct {
	// Location is the asset root.  This can be a directory, or a path through a zip file
	// such as "/opt/statusui/console.zip/assets".  If unset, only the packaged source is used.
	Location string `json:"location"`

	// Packaged optionally names a directory or zip file holding a packaged copy of the assets, laid
	// out the same way as the archive in Location.  When Location passes through an archive, the
	// packaged copy is consulted first and the archive supplies whatever it lacks.
	Packaged string `json:"packaged"`

	// CacheSize is the maximum number of assets held in memory.  If nonpositive,
	// every request loads the asset from its source.
	CacheSize int `json:"cacheSize"`
}

// packaged returns the packaged source to use.  A supplied source, e.g. an embed.FS, takes
// precedence over the configured Packaged path.
func (f *Factory) packaged(supplied fs.FS) (fs.FS, error) {
	if supplied != nil || len(f.Packaged) == 0 {
		return supplied, nil
	}

	info, err := os.Stat(f.Packaged)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open packaged assets %s", f.Packaged)
	}

	if info.IsDir() {
		return os.DirFS(f.Packaged), nil
	}

	// the reader stays open for the life of the process
	archive, err := zip.OpenReader(f.Packaged)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open packaged assets %s", f.Packaged)
	}

	return archive, nil
}

// NewLoader creates the Loader this factory describes.  The supplied packaged source is optional.
func (f *Factory) NewLoader(supplied fs.FS) (Loader, error) {
	packaged, err := f.packaged(supplied)
	if err != nil {
		return nil, err
	}

	loader, err := NewLoader(Location(f.Location), packaged)
	if err != nil {
		return nil, err
	}

	if f.CacheSize > 0 {
		return NewCached(loader, f.CacheSize)
	}

	return loader, nil
}

// NewResolver creates a Resolver for the given table using this factory's Loader.
func (f *Factory) NewResolver(t Table, supplied fs.FS) (*Resolver, error) {
	loader, err := f.NewLoader(supplied)
	if err != nil {
		return nil, err
	}

	return NewResolver(t, loader), nil
}
