// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"net/http"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// requestLogging places a request-scoped logger into each request's context
func requestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			requestLogger := logger.With(
				zap.String("method", request.Method),
				zap.String("path", request.URL.Path),
				zap.String("remoteAddress", request.RemoteAddr),
			)

			next.ServeHTTP(response, request.WithContext(sallust.With(request.Context(), requestLogger)))
		})
	}
}
