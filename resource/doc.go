// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package resource resolves the static assets of the status console.

A fixed Table maps logical request paths onto physical asset names and content
types.  The bytes behind each physical name are obtained through a Loader, which
hides how the console was deployed:  as a loose directory tree, packed into a zip
archive, or compiled into the binary as an fs.FS.  The Loader strategy is chosen
once, at startup, by NewLoader or a Factory.
*/
package resource
