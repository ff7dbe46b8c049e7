// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	HTMLContentType       = "text/html"
	CSSContentType        = "text/css"
	JavascriptContentType = "text/javascript"
	GIFContentType        = "image/gif"
)

// Entry describes a single asset that the console serves.
type Entry struct {
	// LogicalPath is the request path, relative to the console prefix, e.g. "/status.js"
	LogicalPath string

	// PhysicalPath is the slash-separated name of the asset relative to the asset root
	PhysicalPath string

	// ContentType is sent verbatim with the asset.  It is never sniffed from content.
	ContentType string
}

// Table is an immutable mapping of logical paths onto entries.  Lookups are exact matches.
type Table map[string]Entry

// NewTable builds a Table from a set of entries.  Duplicate logical paths are rejected.
func NewTable(entries ...Entry) (Table, error) {
	t := make(Table, len(entries))
	for _, e := range entries {
		if len(e.LogicalPath) == 0 || len(e.PhysicalPath) == 0 {
			return nil, fmt.Errorf("incomplete resource entry: %+v", e)
		}

		if _, exists := t[e.LogicalPath]; exists {
			return nil, fmt.Errorf("duplicate logical path: %s", e.LogicalPath)
		}

		t[e.LogicalPath] = e
	}

	return t, nil
}

// Get performs an exact lookup of a logical path
func (t Table) Get(logicalPath string) (Entry, bool) {
	e, ok := t[logicalPath]
	return e, ok
}

// Paths returns the sorted logical paths in this table
func (t Table) Paths() []string {
	paths := maps.Keys(t)
	slices.Sort(paths)
	return paths
}

func mustTable(entries ...Entry) Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}

	return t
}

// DefaultTable is the asset set of the pipeline status console.
var DefaultTable = mustTable(
	Entry{"/status", "ui/status.html", HTMLContentType},
	Entry{"/status.css", "ui/status.css", CSSContentType},
	Entry{"/status.js", "ui/status.js", JavascriptContentType},
	Entry{"/list", "ui/root_list.html", HTMLContentType},
	Entry{"/list.css", "ui/root_list.css", CSSContentType},
	Entry{"/list.js", "ui/root_list.js", JavascriptContentType},
	Entry{"/common.js", "ui/common.js", JavascriptContentType},
	Entry{"/common.css", "ui/common.css", CSSContentType},
	Entry{"/jquery-1.4.2.min.js", "ui/jquery-1.4.2.min.js", JavascriptContentType},
	Entry{"/jquery.treeview.min.js", "ui/jquery.treeview.min.js", JavascriptContentType},
	Entry{"/jquery.cookie.js", "ui/jquery.cookie.js", JavascriptContentType},
	Entry{"/jquery.timeago.js", "ui/jquery.timeago.js", JavascriptContentType},
	Entry{"/jquery.ba-hashchange.min.js", "ui/jquery.ba-hashchange.min.js", JavascriptContentType},
	Entry{"/jquery.json.min.js", "ui/jquery.json.min.js", JavascriptContentType},
	Entry{"/jquery.treeview.css", "ui/jquery.treeview.css", CSSContentType},
	Entry{"/treeview-default.gif", "ui/images/treeview-default.gif", GIFContentType},
	Entry{"/treeview-default-line.gif", "ui/images/treeview-default-line.gif", GIFContentType},
	Entry{"/treeview-black.gif", "ui/images/treeview-black.gif", GIFContentType},
	Entry{"/treeview-black-line.gif", "ui/images/treeview-black-line.gif", GIFContentType},
	Entry{"/images/treeview-default.gif", "ui/images/treeview-default.gif", GIFContentType},
	Entry{"/images/treeview-default-line.gif", "ui/images/treeview-default-line.gif", GIFContentType},
	Entry{"/images/treeview-black.gif", "ui/images/treeview-black.gif", GIFContentType},
	Entry{"/images/treeview-black-line.gif", "ui/images/treeview-black-line.gif", GIFContentType},
)
