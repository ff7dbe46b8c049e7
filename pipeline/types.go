// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"time"
)

// ID is the opaque identifier the engine assigns to pipelines and slots
type ID string

func (id ID) String() string {
	return string(id)
}

// Status is the lifecycle state of a single pipeline
type Status int

const (
	StatusWaiting Status = iota
	StatusRun
	StatusDone
	StatusAborted
)

var statusNames = [...]string{
	StatusWaiting: "waiting",
	StatusRun:     "run",
	StatusDone:    "done",
	StatusAborted: "aborted",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus is the inverse of Status.String
func ParseStatus(v string) (Status, error) {
	for i, name := range statusNames {
		if name == v {
			return Status(i), nil
		}
	}

	return StatusWaiting, fmt.Errorf("invalid pipeline status: %q", v)
}

func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid pipeline status: %d", int(s))
	}

	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) (err error) {
	*s, err = ParseStatus(string(b))
	return
}

// SlotStatus indicates whether a slot has been filled by its producing pipeline
type SlotStatus string

const (
	SlotWaiting SlotStatus = "waiting"
	SlotFilled  SlotStatus = "filled"
)

// Slot is an output value of a pipeline
type Slot struct {
	Status           SlotStatus  `json:"status"`
	Value            interface{} `json:"value,omitempty"`
	FillTime         time.Time   `json:"fillTime,omitempty"`
	FillerPipelineID ID          `json:"fillerPipelineId,omitempty"`
}

// Record is the reported state of a single pipeline
type Record struct {
	ClassPath      string                 `json:"classPath"`
	Status         Status                 `json:"status"`
	Args           []interface{}          `json:"args,omitempty"`
	Kwargs         map[string]interface{} `json:"kwargs,omitempty"`
	Outputs        map[string]ID          `json:"outputs,omitempty"`
	Children       []ID                   `json:"children,omitempty"`
	StartTime      time.Time              `json:"startTime,omitempty"`
	EndTime        time.Time              `json:"endTime,omitempty"`
	LastRetryTime  time.Time              `json:"lastRetryTime,omitempty"`
	CurrentAttempt int                    `json:"currentAttempt"`
	MaxAttempts    int                    `json:"maxAttempts"`
	AbortMessage   string                 `json:"abortMessage,omitempty"`
	RetryMessage   string                 `json:"retryMessage,omitempty"`
	StatusMessage  string                 `json:"statusMessage,omitempty"`
	StatusLinks    map[string]string      `json:"statusLinks,omitempty"`
}

// StatusTree is a root pipeline together with all of its descendants and their slots
type StatusTree struct {
	RootPipelineID ID            `json:"rootPipelineId"`
	Slots          map[ID]Slot   `json:"slots"`
	Pipelines      map[ID]Record `json:"pipelines"`
}

// RootRecord is a Record in a root listing, carrying its own identifier
type RootRecord struct {
	PipelineID ID `json:"pipelineId"`
	Record
}

// RootList is one page of root pipelines.  An empty Cursor means there are no further pages.
type RootList struct {
	Pipelines []RootRecord `json:"pipelines"`
	Cursor    string       `json:"cursor,omitempty"`
}
