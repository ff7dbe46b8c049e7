// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

const (
	// DefaultApplicationName is used for the configuration file name and environment prefix
	// when no other name is supplied.
	DefaultApplicationName = "statusui"

	// FileFlag is the long name of the command line flag that names a configuration file
	FileFlag = "file"

	// FileShorthand is the short name of FileFlag
	FileShorthand = "f"

	// DebugFlag is the long name of the command line flag that forces the console into debug mode
	DebugFlag = "debug"

	// DefaultAddress is the listen address used when the configuration supplies none
	DefaultAddress = ":8080"
)
