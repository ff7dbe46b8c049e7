// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
)

// queryError is a well-known query failure with a stable class name
type queryError struct {
	class string
	text  string
}

func (qe *queryError) Error() string      { return qe.text }
func (qe *queryError) ErrorClass() string { return qe.class }

var (
	// ErrNoSuchPipeline indicates that a root pipeline identifier is unknown to the engine
	ErrNoSuchPipeline error = &queryError{class: "NoSuchPipelineError", text: "no such root pipeline"}

	// ErrInvalidCursor indicates that a pagination cursor was not issued by the engine
	ErrInvalidCursor error = &queryError{class: "InvalidCursorError", text: "invalid cursor"}
)

// Engine is the query surface of the pipeline execution engine.  Implementations must
// return an error rather than a partial or malformed result.
type Engine interface {
	// StatusTree returns the given root pipeline and all of its descendants
	StatusTree(ctx context.Context, root ID) (*StatusTree, error)

	// PipelineNames returns the class paths of every known pipeline class
	PipelineNames(ctx context.Context) ([]string, error)

	// RootList returns one page of root pipelines, optionally restricted to a class path.
	// An empty cursor starts from the first page.
	RootList(ctx context.Context, classPath, cursor string) (*RootList, error)
}

// EngineError is a failure reported by a remote engine
type EngineError struct {
	// Code is the HTTP status code the engine responded with
	Code int

	// Class is the engine's own name for the failure, if it supplied one
	Class string

	Message string
}

// ErrorClass reports the engine's failure class, falling back to a generic name
func (ee *EngineError) ErrorClass() string {
	if len(ee.Class) > 0 {
		return ee.Class
	}

	return "EngineError"
}

func (ee *EngineError) Error() string {
	if len(ee.Message) > 0 {
		return fmt.Sprintf("engine responded with %d: %s", ee.Code, ee.Message)
	}

	return fmt.Sprintf("engine responded with %d", ee.Code)
}

// Is matches the well-known query errors by class, so that a remote engine's
// NoSuchPipelineError satisfies errors.Is(err, ErrNoSuchPipeline)
func (ee *EngineError) Is(target error) bool {
	qe, ok := target.(*queryError)
	return ok && qe.class == ee.Class
}
