// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const DefaultRetryInterval = time.Second

// temporaryError is the expected interface for a (possibly) temporary error
type temporaryError interface {
	Temporary() bool
}

// ShouldRetryFunc is a predicate for determining if the error returned from an HTTP transaction
// should be retried.
type ShouldRetryFunc func(error) bool

// ShouldRetryStatusFunc is a predicate for determining if the status code returned from an HTTP transaction
// should be retried.
type ShouldRetryStatusFunc func(int) bool

// WaitFunc blocks for an interval, returning early with an error if the context ends first
type WaitFunc func(context.Context, time.Duration) error

// ShouldRetry returns true if err is temporary.  Deadlines and cancellations are never retried,
// since the caller has already given up on the transaction.
func ShouldRetry(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var temp temporaryError
	if errors.As(err, &temp) {
		return temp.Temporary()
	}

	return false
}

// RetryCodes reports whether a status code indicates a transient condition on the server
func RetryCodes(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Wait is the default WaitFunc
func Wait(ctx context.Context, interval time.Duration) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TransactorFunc is the signature of http.Client.Do.  It implements go-kit's HTTPClient.
type TransactorFunc func(*http.Request) (*http.Response, error)

func (tf TransactorFunc) Do(request *http.Request) (*http.Response, error) {
	return tf(request)
}

// RetryOptions are the configuration options for a retry transactor
type RetryOptions struct {
	// Logger is the zap logger to use.  If nil, sallust.Default() is used.
	Logger *zap.Logger `json:"-"`

	// Retries is the count of retries.  If not positive, then no transactor decoration is performed.
	Retries int `json:"retries"`

	// Interval is the time between attempts.  If not set, DefaultRetryInterval is used.
	Interval time.Duration `json:"interval"`

	// Wait waits out the interval between attempts.  If unset, Wait is used.
	Wait WaitFunc `json:"-"`

	// ShouldRetry is the retry predicate for errors.  Defaults to ShouldRetry if unset.
	ShouldRetry ShouldRetryFunc `json:"-"`

	// ShouldRetryStatus is the retry predicate for status codes.  Defaults to RetryCodes if unset.
	ShouldRetryStatus ShouldRetryStatusFunc `json:"-"`

	// Counter is incremented for each retry.  Optional.
	Counter metrics.Counter `json:"-"`
}

func (o RetryOptions) retryable(response *http.Response, err error) bool {
	if err != nil {
		return o.ShouldRetry(err)
	}

	return response != nil && o.ShouldRetryStatus(response.StatusCode)
}

// RetryTransactor returns an HTTP transactor function, of the same signature as http.Client.Do, that
// retries transient failures a certain number of times.  Retries stop as soon as the request's context
// ends, so a request never outlives the deadline of the caller.  Requests with a body are rewound through
// GetBody before each retry.
//
// If o.Retries is nonpositive, next is returned undecorated.
func RetryTransactor(o RetryOptions, next func(*http.Request) (*http.Response, error)) func(*http.Request) (*http.Response, error) {
	if o.Retries < 1 {
		return next
	}

	if o.Logger == nil {
		o.Logger = sallust.Default()
	}

	if o.Counter == nil {
		o.Counter = discard.NewCounter()
	}

	if o.ShouldRetry == nil {
		o.ShouldRetry = ShouldRetry
	}

	if o.ShouldRetryStatus == nil {
		o.ShouldRetryStatus = RetryCodes
	}

	if o.Interval < 1 {
		o.Interval = DefaultRetryInterval
	}

	if o.Wait == nil {
		o.Wait = Wait
	}

	return func(request *http.Request) (*http.Response, error) {
		response, err := next(request)
		for attempt := 1; attempt <= o.Retries && o.retryable(response, err); attempt++ {
			if waitErr := o.Wait(request.Context(), o.Interval); waitErr != nil {
				o.Logger.Debug("abandoning retries", zap.String("url", request.URL.String()), zap.Error(waitErr))
				break
			}

			if response != nil && response.Body != nil {
				response.Body.Close()
			}

			if request.GetBody != nil {
				body, rewindErr := request.GetBody()
				if rewindErr != nil {
					return nil, rewindErr
				}

				request.Body = body
			}

			o.Counter.Add(1)
			o.Logger.Debug("retrying HTTP transaction", zap.String("url", request.URL.String()), zap.Error(err), zap.Int("retry", attempt))
			response, err = next(request)
		}

		if err != nil {
			o.Logger.Error("HTTP transaction failed", zap.String("url", request.URL.String()), zap.Error(err))
		}

		return response, err
	}
}
