// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/statusui/xhttp"
	"go.uber.org/zap"
)

const (
	// DefaultMaxAge is the public cache lifetime of assets outside of debug mode
	DefaultMaxAge = 5 * time.Minute

	OutcomeLabel    = "outcome"
	OutcomeServed   = "served"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// PathFunc extracts the logical resource path from a request
type PathFunc func(*http.Request) string

func defaultPath(request *http.Request) string {
	return request.URL.Path
}

// Handler serves resolved assets over HTTP.
type Handler struct {
	Resolver *Resolver

	// Debug disables public caching of assets, so that fresh content is always fetched
	Debug bool

	// MaxAge is the cache lifetime advertised outside of debug mode.  DefaultMaxAge is used if unset.
	MaxAge time.Duration

	// Path extracts the logical path.  If unset, the request's URL path is used as is.
	Path PathFunc

	// Requests counts responses by outcome.  Optional.
	Requests metrics.Counter
}

func (h *Handler) cacheControl() string {
	maxAge := h.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	return xhttp.PublicCacheControl(maxAge)
}

func (h *Handler) path(request *http.Request) string {
	if h.Path != nil {
		return h.Path(request)
	}

	return defaultPath(request)
}

func (h *Handler) requests() metrics.Counter {
	if h.Requests != nil {
		return h.Requests
	}

	return discard.NewCounter()
}

func (h *Handler) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	var (
		logger      = sallust.Get(request.Context())
		logicalPath = h.path(request)
	)

	asset, err := h.Resolver.Resolve(logicalPath)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug("could not find resource", zap.String("resource", logicalPath))
		h.requests().With(OutcomeLabel, OutcomeNotFound).Add(1)
		http.NotFound(response, request)
		return

	case err != nil:
		logger.Error("unable to load mapped resource", zap.String("resource", logicalPath), zap.Error(err))
		h.requests().With(OutcomeLabel, OutcomeFailed).Add(1)
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	header := response.Header()
	header.Set(xhttp.ContentTypeHeader, asset.ContentType)
	header.Set(xhttp.ContentLengthHeader, strconv.Itoa(len(asset.Data)))
	if !h.Debug {
		header.Set(xhttp.CacheControlHeader, h.cacheControl())
	}

	h.requests().With(OutcomeLabel, OutcomeServed).Add(1)
	response.WriteHeader(http.StatusOK)
	if request.Method != http.MethodHead {
		response.Write(asset.Data)
	}
}
