// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	ContentTypeHeader        = "Content-Type"
	ContentTypeOptionsHeader = "X-Content-Type-Options"
	ContentLengthHeader      = "Content-Length"
	CacheControlHeader       = "Cache-Control"

	TextContentType = "text/plain; charset=utf-8"
	NoSniff         = "nosniff"
	NoCacheValue    = "no-cache"
)

// PublicCacheControl formats a Cache-Control value that lets shared caches keep a response
// for maxAge, truncated to whole seconds.  A nonpositive maxAge yields max-age=0.
func PublicCacheControl(maxAge time.Duration) string {
	seconds := int64(maxAge / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("public, max-age=%d", seconds)
}

// NoCache is an Alice-style constructor that forbids caching of every response,
// including responses written by decorators further down the chain.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		response.Header().Set(CacheControlHeader, NoCacheValue)
		next.ServeHTTP(response, request)
	})
}

// Text is an http.Handler that writes a short, fixed plain text response, e.g. the reason
// a request was denied.  Headers already set on the response, such as Cache-Control, are kept.
type Text struct {
	Code int
	Body string
}

func (t Text) ServeHTTP(response http.ResponseWriter, _ *http.Request) {
	header := response.Header()
	header.Set(ContentTypeHeader, TextContentType)
	header.Set(ContentTypeOptionsHeader, NoSniff)
	header.Set(ContentLengthHeader, strconv.Itoa(len(t.Body)))

	response.WriteHeader(t.Code)
	if len(t.Body) > 0 {
		response.Write([]byte(t.Body)) //nolint:errcheck
	}
}
