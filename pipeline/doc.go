// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package pipeline describes the read-only view of the pipeline execution engine
that the status console depends upon.

The engine itself is an external service.  This package defines the Engine
contract, the records the engine reports, and a Client that reaches a remote
engine's JSON API.
*/
package pipeline
