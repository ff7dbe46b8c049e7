// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package rpc wraps console query functions as JSON http.Handlers.

Every call passes an authorization gate and an anti-forgery gate before the wrapped
function runs.  Whatever the function does, including panicking, the client receives
a 200 response with either the encoded result or an Error document.
*/
package rpc
