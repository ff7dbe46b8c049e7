// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-kit/kit/metrics"
	"github.com/stretchr/testify/require"
)

// testContents produces distinct, nonempty content for every physical asset in a table
func testContents(t Table) map[string][]byte {
	contents := make(map[string][]byte)
	for _, e := range t {
		contents[e.PhysicalPath] = []byte(fmt.Sprintf("content of %s", e.PhysicalPath))
	}

	return contents
}

func writeDir(t *testing.T, root string, contents map[string][]byte) {
	for name, data := range contents {
		file := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
		require.NoError(t, os.WriteFile(file, data, 0o644))
	}
}

func writeArchive(t *testing.T, file, prefix string, contents map[string][]byte) {
	output, err := os.Create(file)
	require.NoError(t, err)
	defer output.Close()

	writer := zip.NewWriter(output)
	for name, data := range contents {
		entry, err := writer.Create(path.Join(prefix, name))
		require.NoError(t, err)
		_, err = entry.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
}

func mapFS(prefix string, contents map[string][]byte) fstest.MapFS {
	m := make(fstest.MapFS, len(contents))
	for name, data := range contents {
		m[path.Join(prefix, name)] = &fstest.MapFile{Data: data}
	}

	return m
}

// countingLoader records how many times each asset was opened
type countingLoader struct {
	Loader
	opens map[string]int
}

func (c *countingLoader) Open(name string) (io.ReadCloser, error) {
	if c.opens == nil {
		c.opens = make(map[string]int)
	}

	c.opens[name]++
	return c.Loader.Open(name)
}

// outcomeCounter is a metrics.Counter that tallies additions by label values
type outcomeCounter struct {
	totals map[string]float64
	labels []string
}

func newOutcomeCounter() *outcomeCounter {
	return &outcomeCounter{totals: make(map[string]float64)}
}

func (oc *outcomeCounter) With(labelValues ...string) metrics.Counter {
	return &outcomeCounter{
		totals: oc.totals,
		labels: append(append([]string{}, oc.labels...), labelValues...),
	}
}

func (oc *outcomeCounter) Add(delta float64) {
	oc.totals[strings.Join(oc.labels, "=")] += delta
}
