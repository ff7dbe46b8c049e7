// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Loader represents a strategy for obtaining the bytes of named assets.
// Names are always slash-separated and relative to the loader's root.
type Loader interface {
	// Location returns a string identifying where this Loader
	// gets its data from
	Location() string

	// Open returns a ReadCloser that reads the named asset.  If the asset does not
	// exist, the returned error satisfies errors.Is(err, fs.ErrNotExist).
	Open(name string) (io.ReadCloser, error)
}

// ReadAll is an analog to io.ReadAll: it reads the entire named
// asset into a single byte slice, returning any error that occurred.
func ReadAll(loader Loader, name string) ([]byte, error) {
	reader, err := loader.Open(name)
	if err != nil {
		return nil, err
	}

	defer reader.Close()
	return io.ReadAll(reader)
}

func checkName(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	return nil
}

// Dir loads assets from an unpacked directory tree on the local filesystem.
type Dir string

func (d Dir) Location() string {
	return string(d)
}

func (d Dir) Open(name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	return os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
}

// Archive loads assets out of a zip file.  The archive is opened for each asset,
// so an Archive holds no open file handles between loads.
type Archive struct {
	// File is the system path of the zip file
	File string

	// Prefix is the slash-separated directory within the archive that acts as the asset root
	Prefix string
}

func (a Archive) Location() string {
	if len(a.Prefix) > 0 {
		return a.File + "/" + a.Prefix
	}

	return a.File
}

// archiveEntry closes the archive along with the entry
type archiveEntry struct {
	fs.File
	archive *zip.ReadCloser
}

func (ae archiveEntry) Close() error {
	err := ae.File.Close()
	if closeErr := ae.archive.Close(); err == nil {
		err = closeErr
	}

	return err
}

func (a Archive) Open(name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(a.File)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open archive %s", a.File)
	}

	entry, err := archive.Open(path.Join(a.Prefix, name))
	if err != nil {
		archive.Close()
		return nil, err
	}

	return archiveEntry{File: entry, archive: archive}, nil
}

// Packaged loads assets from a packaged data source, such as an embed.FS
// compiled into the binary.
type Packaged struct {
	FS fs.FS

	// Prefix is the optional directory within FS that acts as the asset root
	Prefix string
}

func (p Packaged) Location() string {
	if len(p.Prefix) > 0 {
		return "packaged:" + p.Prefix
	}

	return "packaged"
}

func (p Packaged) Open(name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	if p.FS == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return p.FS.Open(path.Join(p.Prefix, name))
}

// Fallback tries each Loader in order.  The next Loader is consulted only when the previous
// one reports that the asset does not exist.  Any other error stops the search.
type Fallback []Loader

func (f Fallback) Location() string {
	locations := make([]string, len(f))
	for i, l := range f {
		locations[i] = l.Location()
	}

	return strings.Join(locations, ",")
}

func (f Fallback) Open(name string) (io.ReadCloser, error) {
	err := error(&fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist})
	for _, l := range f {
		var reader io.ReadCloser
		reader, err = l.Open(name)
		if err == nil {
			return reader, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, err
}

// NewLoader selects the Loader strategy for a configured location.  Locations that pass through
// an archive file are served from that archive, consulting the packaged source first when one is
// supplied.  Any other location is treated as a directory.  An empty location yields the packaged
// source by itself.
func NewLoader(location Location, packaged fs.FS) (Loader, error) {
	if len(location) == 0 {
		if packaged == nil {
			return nil, ErrNoLocation
		}

		return Packaged{FS: packaged}, nil
	}

	if file, prefix, ok := location.Archive(); ok {
		// a directory that merely looks like an archive is still a directory
		if info, err := os.Stat(file); err == nil && info.IsDir() {
			return Dir(location), nil
		}

		archive := Archive{File: file, Prefix: prefix}
		if packaged != nil {
			return Fallback{Packaged{FS: packaged, Prefix: prefix}, archive}, nil
		}

		return archive, nil
	}

	return Dir(location), nil
}
