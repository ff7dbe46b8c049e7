// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package console is the front door of the pipeline status console.

It routes the fixed set of console pages to a resource.Resolver and the three
status queries (treestatus, classpathlist, rootlist) to a pipeline.Engine, each
behind the appropriate authorization gate.
*/
package console
