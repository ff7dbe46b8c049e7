// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"path/filepath"
	"strings"
)

// ArchiveExtension is the file extension that marks a packed deployment
const ArchiveExtension = ".zip"

// Location is a configured asset root.  It is either a directory, or a path that passes
// through an archive file, e.g. "/opt/statusui/console.zip/assets".
type Location string

// Archive splits this location into the archive file and the entry prefix within that archive.
// If this location does not contain an archive segment, ok is false.
//
// The returned prefix is slash-separated and never has leading or trailing slashes.
func (l Location) Archive() (file, prefix string, ok bool) {
	value := filepath.ToSlash(string(l))
	if strings.HasSuffix(value, ArchiveExtension) {
		return filepath.FromSlash(value), "", true
	}

	position := strings.Index(value, ArchiveExtension+"/")
	if position < 0 {
		return "", "", false
	}

	file = filepath.FromSlash(value[:position+len(ArchiveExtension)])
	prefix = strings.Trim(value[position+len(ArchiveExtension)+1:], "/")
	return file, prefix, true
}
