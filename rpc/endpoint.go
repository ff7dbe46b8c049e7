// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/justinas/alice"
	"github.com/pkg/errors"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/statusui/auth"
	"github.com/xmidt-org/statusui/xhttp"
	"go.uber.org/zap"
)

const (
	// RequestedWithHeader must accompany every call outside of debug mode.  Browsers will not
	// let a cross-site form or image set it.
	RequestedWithHeader = "X-Requested-With"

	MissingRequestedWithText = "Request missing X-Requested-With header"

	EndpointLabel = "endpoint"
	OutcomeLabel  = auth.OutcomeLabel

	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomePanic     = "panic"
	OutcomeForbidden = auth.OutcomeForbidden
)

var (
	missingRequestedWith = xhttp.Text{Code: http.StatusForbidden, Body: MissingRequestedWithText}

	// fallbackBody is sent if even an Error document cannot be encoded
	fallbackBody = []byte(`{"error_class":"InternalError","error_message":"internal error","error_traceback":""}`)
)

// Func is a console query.  The returned value is encoded as the response body.
type Func func(*http.Request) (interface{}, error)

// Endpoint holds the process-wide settings shared by every rpc handler
type Endpoint struct {
	// EnforceAuth requires an administrator for every call
	EnforceAuth bool

	// Debug disables the anti-forgery check
	Debug bool

	// ExposeTraceback includes error tracebacks in responses.  Debug implies this.
	ExposeTraceback bool

	Provider auth.Provider

	// Requests counts calls by endpoint and outcome.  Optional.
	Requests metrics.Counter
}

func (e Endpoint) requests() metrics.Counter {
	if e.Requests != nil {
		return e.Requests
	}

	return discard.NewCounter()
}

// Decorate produces the handler for the named query.  The gates run in order: authorization,
// then anti-forgery, then the query itself.
func (e Endpoint) Decorate(name string, f Func) http.Handler {
	requests := e.requests().With(EndpointLabel, name)

	return alice.New(
		xhttp.NoCache,
		auth.Gate{
			Provider: e.Provider,
			Enforce:  e.EnforceAuth,
			Outcomes: requests,
		}.Decorate,
		e.requireRequestedWith(requests),
	).Then(&invoker{
		name:            name,
		f:               f,
		exposeTraceback: e.ExposeTraceback || e.Debug,
		requests:        requests,
	})
}

func (e Endpoint) requireRequestedWith(requests metrics.Counter) alice.Constructor {
	return func(next http.Handler) http.Handler {
		if e.Debug {
			return next
		}

		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			if len(request.Header.Get(RequestedWithHeader)) == 0 {
				sallust.Get(request.Context()).Info(
					"request denied",
					zap.String("reason", "missing header"),
					zap.String("name", RequestedWithHeader),
					zap.String("url", request.URL.String()),
				)

				requests.With(OutcomeLabel, OutcomeForbidden).Add(1)
				missingRequestedWith.ServeHTTP(response, request)
				return
			}

			next.ServeHTTP(response, request)
		})
	}
}

type invoker struct {
	name            string
	f               Func
	exposeTraceback bool
	requests        metrics.Counter
}

// call runs the query, converting a panic into an error
func (i *invoker) call(request *http.Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()

	return i.f(request)
}

func (i *invoker) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	logger := sallust.Get(request.Context()).With(zap.String(EndpointLabel, i.name))

	result, err := i.call(request)

	var body []byte
	if err == nil {
		body, err = Marshal(result)
		if err != nil {
			err = errors.Wrap(err, "unable to encode result")
		}
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError

		var pe *panicError
		if errors.As(err, &pe) {
			outcome = OutcomePanic
			logger.Error("rpc handler panicked", zap.Any("panic", pe.value), zap.ByteString("stack", pe.stack))
		} else {
			logger.Error("rpc handler failed", zap.String("class", ClassOf(err)), zap.Error(err), zap.String("traceback", Traceback(err)))
		}

		var encodeErr error
		if body, encodeErr = Marshal(NewError(err, i.exposeTraceback)); encodeErr != nil {
			logger.Error("unable to encode rpc error", zap.Error(encodeErr))
			body = fallbackBody
		}
	}

	i.requests.With(OutcomeLabel, outcome).Add(1)

	header := response.Header()
	header.Set(xhttp.ContentTypeHeader, JSONContentType)
	header.Set(xhttp.ContentLengthHeader, strconv.Itoa(len(body)))
	response.WriteHeader(http.StatusOK)
	response.Write(body)
}
