// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/statusui/auth"
	"github.com/xmidt-org/statusui/pipeline"
	"github.com/xmidt-org/statusui/resource"
	"github.com/xmidt-org/statusui/rpc"
	"github.com/xmidt-org/statusui/xhttp"
	"go.uber.org/zap"
)

const (
	// DefaultPrefix is the URL path under which the console is mounted
	DefaultPrefix = "/_ah/pipeline"

	// LandingPage is the logical path that the bare prefix redirects to
	LandingPage = "/list"

	TreeStatusPath    = "/rpc/tree"
	ClassPathListPath = "/rpc/class_paths"
	RootListPath      = "/rpc/list"
)

var (
	ErrNoResolver = errors.New("a resource resolver is required")
	ErrNoEngine   = errors.New("a pipeline engine is required")
)

// Options describes a console
type Options struct {
	// Prefix is the mount point.  DefaultPrefix is used if unset.
	Prefix string

	Config   Config
	Resolver *resource.Resolver
	Provider auth.Provider
	Engine   pipeline.Engine

	// Logger is the base logger for requests.  If unset, sallust.Default() is used.
	Logger *zap.Logger

	Metrics Metrics

	// Timeout bounds the handling of each request, including calls to the engine.  Nonpositive means no limit.
	Timeout time.Duration
}

// NormalizePrefix produces a prefix with a leading slash and no trailing slash.  The root
// mount point normalizes to the empty string.
func NormalizePrefix(prefix string) string {
	if len(prefix) == 0 {
		prefix = DefaultPrefix
	}

	return strings.TrimRight("/"+strings.TrimLeft(prefix, "/"), "/")
}

// New creates the console's http.Handler
func New(o Options) (http.Handler, error) {
	if o.Resolver == nil {
		return nil, ErrNoResolver
	}

	if o.Engine == nil {
		return nil, ErrNoEngine
	}

	logger := o.Logger
	if logger == nil {
		logger = sallust.Default()
	}

	provider := o.Provider
	if provider == nil {
		provider = auth.None{}
	}

	if _, none := provider.(auth.None); none && o.Config.EnforceAuth {
		logger.Warn("authorization is enforced without a provider; every request will be refused")
	}

	var (
		prefix  = NormalizePrefix(o.Prefix)
		router  = mux.NewRouter()
		methods = []string{http.MethodGet, http.MethodHead}

		q = queries{
			engine:  o.Engine,
			decoder: newDecoder(),
		}

		endpoint = rpc.Endpoint{
			EnforceAuth:     o.Config.EnforceAuth,
			Debug:           o.Config.Debug,
			ExposeTraceback: o.Config.Tracebacks(),
			Provider:        provider,
			Requests:        o.Metrics.rpcRequests(),
		}

		pageGate = auth.Gate{
			Provider: provider,
			Enforce:  o.Config.EnforceAuth,
			Redirect: true,
			Outcomes: o.Metrics.assetRequests(),
		}

		assets = &resource.Handler{
			Resolver: o.Resolver,
			Debug:    o.Config.Debug,
			Path: func(request *http.Request) string {
				return strings.TrimPrefix(request.URL.Path, prefix)
			},
			Requests: o.Metrics.assetRequests(),
		}
	)

	router.Handle(prefix+TreeStatusPath, endpoint.Decorate(TreeStatusEndpoint, q.treeStatus)).Methods(methods...)
	router.Handle(prefix+ClassPathListPath, endpoint.Decorate(ClassPathListEndpoint, q.classPathList)).Methods(methods...)
	router.Handle(prefix+RootListPath, endpoint.Decorate(RootListEndpoint, q.rootList)).Methods(methods...)

	landing := http.RedirectHandler(prefix+LandingPage, http.StatusFound)
	router.Handle(prefix+"/", landing).Methods(methods...)
	if len(prefix) > 0 {
		router.Handle(prefix, landing).Methods(methods...)
	}

	router.Handle(prefix+"/{resource:.+}", pageGate.Decorate(assets)).Methods(methods...)

	logger.Info(
		"console configured",
		zap.String("prefix", prefix),
		zap.String("assets", o.Resolver.Location()),
		zap.Bool("enforceAuth", o.Config.EnforceAuth),
		zap.Bool("debug", o.Config.Debug),
		zap.Bool("exposeTraceback", o.Config.Tracebacks()),
	)

	return alice.New(
		requestLogging(logger),
		xhttp.Timeout(o.Timeout),
	).Then(router), nil
}
