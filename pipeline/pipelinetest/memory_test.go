// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipelinetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/statusui/pipeline"
)

func TestMemoryStatusTree(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		m       = NewMemory(0)
		started = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	)

	root := m.AddRoot(pipeline.Record{ClassPath: "main.Root", Status: pipeline.StatusRun, StartTime: started})
	child, err := m.AddChild(root, pipeline.Record{
		ClassPath: "main.Child",
		Status:    pipeline.StatusDone,
		Outputs:   map[string]pipeline.ID{"default": "slot1"},
	})

	require.NoError(err)
	grandchild, err := m.AddChild(child, pipeline.Record{ClassPath: "main.Grandchild"})
	require.NoError(err)
	m.SetSlot("slot1", pipeline.Slot{Status: pipeline.SlotFilled, Value: 42, FillerPipelineID: child})

	other := m.AddRoot(pipeline.Record{ClassPath: "main.Root"})

	tree, err := m.StatusTree(context.Background(), root)
	require.NoError(err)
	assert.Equal(root, tree.RootPipelineID)
	assert.Len(tree.Pipelines, 3)
	assert.Contains(tree.Pipelines, child)
	assert.Contains(tree.Pipelines, grandchild)
	assert.NotContains(tree.Pipelines, other)
	assert.Equal([]pipeline.ID{child}, tree.Pipelines[root].Children)
	assert.Equal(started, tree.Pipelines[root].StartTime)
	assert.Equal(42, tree.Slots["slot1"].Value)

	_, err = m.StatusTree(context.Background(), child)
	assert.True(errors.Is(err, pipeline.ErrNoSuchPipeline))

	_, err = m.StatusTree(context.Background(), "")
	assert.True(errors.Is(err, pipeline.ErrNoSuchPipeline))

	_, err = m.AddChild("nosuch", pipeline.Record{})
	assert.Error(err)
}

func TestMemoryPipelineNames(t *testing.T) {
	m := NewMemory(0)
	m.Register("main.B", "main.A")
	m.AddRoot(pipeline.Record{ClassPath: "main.C"})
	m.Register("main.A")

	names, err := m.PipelineNames(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"main.A", "main.B", "main.C"}, names)
}

func TestMemoryRootList(t *testing.T) {
	var (
		m     = NewMemory(3)
		roots []pipeline.ID
		evens []pipeline.ID
	)

	for i := 0; i < 8; i++ {
		classPath := "main.Odd"
		if i%2 == 0 {
			classPath = "main.Even"
		}

		id := m.AddRoot(pipeline.Record{ClassPath: classPath, StatusMessage: fmt.Sprintf("root %d", i)})
		roots = append(roots, id)
		if i%2 == 0 {
			evens = append(evens, id)
		}
	}

	collect := func(t *testing.T, classPath string) []pipeline.ID {
		var (
			seen   []pipeline.ID
			cursor string
		)

		for pages := 0; pages < 10; pages++ {
			list, err := m.RootList(context.Background(), classPath, cursor)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(list.Pipelines), 3)
			for _, r := range list.Pipelines {
				assert.NotContains(t, seen, r.PipelineID)
				seen = append(seen, r.PipelineID)
			}

			if len(list.Cursor) == 0 {
				return seen
			}

			cursor = list.Cursor
		}

		t.Fatal("pagination did not terminate")
		return nil
	}

	t.Run("All", func(t *testing.T) {
		assert.Equal(t, roots, collect(t, ""))
	})

	t.Run("ClassPath", func(t *testing.T) {
		assert.Equal(t, evens, collect(t, "main.Even"))
	})

	t.Run("NoMatches", func(t *testing.T) {
		list, err := m.RootList(context.Background(), "main.Nosuch", "")
		assert.NoError(t, err)
		assert.Empty(t, list.Pipelines)
		assert.NotNil(t, list.Pipelines)
		assert.Empty(t, list.Cursor)
	})

	t.Run("InvalidCursor", func(t *testing.T) {
		for _, cursor := range []string{"!!!", encodeCursor("nosuch")} {
			list, err := m.RootList(context.Background(), "", cursor)
			assert.Nil(t, list)
			assert.True(t, errors.Is(err, pipeline.ErrInvalidCursor))
		}
	})
}
