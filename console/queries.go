// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/xmidt-org/statusui/pipeline"
)

const (
	TreeStatusEndpoint    = "treestatus"
	ClassPathListEndpoint = "classpathlist"
	RootListEndpoint      = "rootlist"
)

// ErrNoRootList indicates that an engine returned neither a root list nor an error
var ErrNoRootList = errors.New("the engine returned no root list")

// ClassPathList is the result of the classpathlist query
type ClassPathList struct {
	ClassPaths []string `json:"classPaths"`
}

type treeStatusRequest struct {
	// RootPipelineID is passed through to the engine as is.  A missing identifier
	// is reported by the engine as an unknown pipeline.
	RootPipelineID pipeline.ID `schema:"root_pipeline_id"`
}

type rootListRequest struct {
	ClassPath string `schema:"class_path"`
	Cursor    string `schema:"cursor"`
}

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// queries adapts an Engine onto the console's rpc functions
type queries struct {
	engine  pipeline.Engine
	decoder *schema.Decoder
}

func (q queries) decode(dst interface{}, request *http.Request) error {
	return errors.Wrap(
		q.decoder.Decode(dst, request.URL.Query()),
		"invalid query parameters",
	)
}

func (q queries) treeStatus(request *http.Request) (interface{}, error) {
	var tsr treeStatusRequest
	if err := q.decode(&tsr, request); err != nil {
		return nil, err
	}

	tree, err := q.engine.StatusTree(request.Context(), tsr.RootPipelineID)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func (q queries) classPathList(request *http.Request) (interface{}, error) {
	names, err := q.engine.PipelineNames(request.Context())
	if err != nil {
		return nil, err
	}

	if names == nil {
		names = []string{}
	}

	return ClassPathList{ClassPaths: names}, nil
}

func (q queries) rootList(request *http.Request) (interface{}, error) {
	var rlr rootListRequest
	if err := q.decode(&rlr, request); err != nil {
		return nil, err
	}

	list, err := q.engine.RootList(request.Context(), rlr.ClassPath, rlr.Cursor)
	if err != nil {
		return nil, err
	}

	if list == nil {
		return nil, ErrNoRootList
	}

	if list.Pipelines == nil {
		list.Pipelines = []pipeline.RootRecord{}
	}

	return list, nil
}
