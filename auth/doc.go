// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package auth establishes who is making a console request and whether they may see it.

A Provider extracts a Principal from a request and decides whether that principal
is an administrator.  Gate decorates handlers so that only administrators reach them,
either by redirecting to a login page (pages) or by refusing outright (rpc calls).
*/
package auth
