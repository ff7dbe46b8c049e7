// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

// Config holds the process-wide switches of the console.  It is built once at startup
// and passed by value to every component.
type Config struct {
	// EnforceAuth requires an administrator for every page and query
	EnforceAuth bool `json:"enforceAuth"`

	// Debug disables asset caching and the anti-forgery check, and exposes tracebacks
	Debug bool `json:"debug"`

	// ExposeTraceback includes error tracebacks in query responses even outside of debug mode
	ExposeTraceback bool `json:"exposeTraceback"`
}

// Tracebacks reports whether query failures disclose their tracebacks
func (c Config) Tracebacks() bool {
	return c.ExposeTraceback || c.Debug
}
