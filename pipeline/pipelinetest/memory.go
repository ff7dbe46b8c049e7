// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipelinetest

import (
	"context"
	"encoding/base64"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/statusui/pipeline"
)

// DefaultPageSize is the root list page size used when none is configured
const DefaultPageSize = 10

// Memory is an in-process pipeline.Engine.  Root pipelines are listed in the order they were added.
type Memory struct {
	lock      sync.RWMutex
	pageSize  int
	classes   map[string]bool
	records   map[pipeline.ID]pipeline.Record
	slots     map[pipeline.ID]pipeline.Slot
	roots     []pipeline.ID
	rootIndex map[pipeline.ID]int
}

var _ pipeline.Engine = (*Memory)(nil)

// NewMemory creates an empty engine that lists root pipelines in pages of the given size
func NewMemory(pageSize int) *Memory {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return &Memory{
		pageSize:  pageSize,
		classes:   make(map[string]bool),
		records:   make(map[pipeline.ID]pipeline.Record),
		slots:     make(map[pipeline.ID]pipeline.Slot),
		rootIndex: make(map[pipeline.ID]int),
	}
}

func newID() pipeline.ID {
	return pipeline.ID(ksuid.New().String())
}

// Register adds class paths to the set of known pipeline classes
func (m *Memory) Register(classPaths ...string) {
	m.lock.Lock()
	for _, cp := range classPaths {
		m.classes[cp] = true
	}

	m.lock.Unlock()
}

// AddRoot stores a new root pipeline and returns its generated identifier
func (m *Memory) AddRoot(r pipeline.Record) pipeline.ID {
	id := newID()

	m.lock.Lock()
	m.classes[r.ClassPath] = true
	m.records[id] = r
	m.rootIndex[id] = len(m.roots)
	m.roots = append(m.roots, id)
	m.lock.Unlock()

	return id
}

// AddChild stores a pipeline spawned by parent and returns its generated identifier
func (m *Memory) AddChild(parent pipeline.ID, r pipeline.Record) (pipeline.ID, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	p, ok := m.records[parent]
	if !ok {
		return "", errors.Errorf("no such parent pipeline: %s", parent)
	}

	id := newID()
	m.classes[r.ClassPath] = true
	m.records[id] = r
	p.Children = append(p.Children, id)
	m.records[parent] = p
	return id, nil
}

// SetSlot stores a slot under the given identifier
func (m *Memory) SetSlot(id pipeline.ID, s pipeline.Slot) {
	m.lock.Lock()
	m.slots[id] = s
	m.lock.Unlock()
}

func (m *Memory) StatusTree(_ context.Context, root pipeline.ID) (*pipeline.StatusTree, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if _, ok := m.rootIndex[root]; !ok {
		return nil, errors.Wrapf(pipeline.ErrNoSuchPipeline, "root pipeline %q", root)
	}

	tree := &pipeline.StatusTree{
		RootPipelineID: root,
		Slots:          make(map[pipeline.ID]pipeline.Slot),
		Pipelines:      make(map[pipeline.ID]pipeline.Record),
	}

	pending := []pipeline.ID{root}
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]
		if _, seen := tree.Pipelines[id]; seen {
			continue
		}

		r := m.records[id]
		tree.Pipelines[id] = r
		pending = append(pending, r.Children...)
		for _, slotID := range r.Outputs {
			if s, ok := m.slots[slotID]; ok {
				tree.Slots[slotID] = s
			}
		}
	}

	return tree, nil
}

func (m *Memory) PipelineNames(context.Context) ([]string, error) {
	m.lock.RLock()
	names := make([]string, 0, len(m.classes))
	for cp := range m.classes {
		names = append(names, cp)
	}

	m.lock.RUnlock()
	sort.Strings(names)
	return names, nil
}

func encodeCursor(id pipeline.ID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func (m *Memory) decodeCursor(cursor string) (int, error) {
	if len(cursor) == 0 {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, errors.Wrapf(pipeline.ErrInvalidCursor, "%q", cursor)
	}

	position, ok := m.rootIndex[pipeline.ID(raw)]
	if !ok {
		return 0, errors.Wrapf(pipeline.ErrInvalidCursor, "%q", cursor)
	}

	return position + 1, nil
}

func (m *Memory) RootList(_ context.Context, classPath, cursor string) (*pipeline.RootList, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	start, err := m.decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	list := &pipeline.RootList{
		Pipelines: []pipeline.RootRecord{},
	}

	for position := start; position < len(m.roots); position++ {
		id := m.roots[position]
		r := m.records[id]
		if len(classPath) > 0 && r.ClassPath != classPath {
			continue
		}

		if len(list.Pipelines) == m.pageSize {
			list.Cursor = encodeCursor(list.Pipelines[len(list.Pipelines)-1].PipelineID)
			break
		}

		list.Pipelines = append(list.Pipelines, pipeline.RootRecord{PipelineID: id, Record: r})
	}

	return list, nil
}
