// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// TimeoutExceededMessage is logged for requests whose handling outlived the deadline
const TimeoutExceededMessage = "request exceeded timeout"

// Timeout returns an Alice-style constructor that bounds each request's context.  Outbound calls made
// with the request context, such as queries against a remote engine, are canceled once the timeout elapses.
// If timeout is nonpositive, the returned constructor simply returns the next http.Handler undecorated.
//
// The deadline is not enforced against the decorated handler itself.  When a handler returns after its
// deadline has passed, that fact is logged with the request-scoped logger.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			ctx, cancel := context.WithTimeout(request.Context(), timeout)
			defer cancel()

			next.ServeHTTP(response, request.WithContext(ctx))
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				sallust.Get(ctx).Warn(
					TimeoutExceededMessage,
					zap.Duration("timeout", timeout),
					zap.String("path", request.URL.Path),
				)
			}
		})
	}
}
