// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package pipelinetest provides pipeline.Engine implementations for testing and local development.
package pipelinetest
