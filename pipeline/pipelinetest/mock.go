// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipelinetest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/statusui/pipeline"
)

// MockEngine is a testify mock for pipeline.Engine
type MockEngine struct {
	mock.Mock
}

var _ pipeline.Engine = (*MockEngine)(nil)

func (m *MockEngine) StatusTree(ctx context.Context, root pipeline.ID) (*pipeline.StatusTree, error) {
	arguments := m.Called(ctx, root)
	first, _ := arguments.Get(0).(*pipeline.StatusTree)
	return first, arguments.Error(1)
}

func (m *MockEngine) PipelineNames(ctx context.Context) ([]string, error) {
	arguments := m.Called(ctx)
	first, _ := arguments.Get(0).([]string)
	return first, arguments.Error(1)
}

func (m *MockEngine) RootList(ctx context.Context, classPath, cursor string) (*pipeline.RootList, error) {
	arguments := m.Called(ctx, classPath, cursor)
	first, _ := arguments.Get(0).(*pipeline.RootList)
	return first, arguments.Error(1)
}
