// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/statusui/xhttp"
	"go.uber.org/zap"
)

const (
	OutcomeLabel      = "outcome"
	OutcomeForbidden  = "forbidden"
	OutcomeRedirected = "redirected"
	OutcomeChallenged = "challenged"

	// ForbiddenText is the entire body of a refused request
	ForbiddenText = "Forbidden"
)

var (
	forbidden    = xhttp.Text{Code: http.StatusForbidden, Body: ForbiddenText}
	unauthorized = xhttp.Text{Code: http.StatusUnauthorized, Body: http.StatusText(http.StatusUnauthorized)}
)

// Gate provides decoration for http.Handler instances and ensures that only administrators
// reach the decorated handler.  Admitted requests carry their Principal in the request context.
type Gate struct {
	// Provider authenticates requests.  If unset, no request is ever authenticated.
	Provider Provider

	// Enforce turns the gate on.  When false, requests pass through undecorated.
	Enforce bool

	// Redirect sends anonymous callers to the provider's login page rather than refusing them.
	// Pages use this mode; rpc calls never do.
	Redirect bool

	// Outcomes counts refused requests by outcome.  Optional.
	Outcomes metrics.Counter
}

func (g Gate) provider() Provider {
	if g.Provider != nil {
		return g.Provider
	}

	return None{}
}

func (g Gate) outcomes() metrics.Counter {
	if g.Outcomes != nil {
		return g.Outcomes
	}

	return discard.NewCounter()
}

// Decorate provides an Alice-compatible constructor that gates requests
// using the configuration specified.
func (g Gate) Decorate(next http.Handler) http.Handler {
	if !g.Enforce {
		return next
	}

	var (
		provider = g.provider()
		outcomes = g.outcomes()
	)

	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		logger := sallust.Get(request.Context())
		principal, ok := provider.Principal(request)
		switch {
		case ok && provider.IsAdmin(principal):
			next.ServeHTTP(response, request.WithContext(NewContext(request.Context(), principal)))

		case ok || !g.Redirect:
			logger.Info(
				"request denied",
				zap.Bool("authenticated", ok),
				zap.String("principal", principal.Name),
				zap.String("method", request.Method),
				zap.String("url", request.URL.String()),
				zap.String("remoteAddress", request.RemoteAddr),
			)

			outcomes.With(OutcomeLabel, OutcomeForbidden).Add(1)
			forbidden.ServeHTTP(response, request)

		default:
			g.login(provider, outcomes, logger, response, request)
		}
	})
}

// login sends an anonymous page request to the login page, falling back to a challenge
// or a refusal when the provider has no login page
func (g Gate) login(provider Provider, outcomes metrics.Counter, logger *zap.Logger, response http.ResponseWriter, request *http.Request) {
	loginURL, err := provider.LoginURL(RequestURL(request))
	if err == nil {
		outcomes.With(OutcomeLabel, OutcomeRedirected).Add(1)
		http.Redirect(response, request, loginURL, http.StatusFound)
		return
	}

	if challenger, ok := provider.(Challenger); ok {
		outcomes.With(OutcomeLabel, OutcomeChallenged).Add(1)
		challenger.Challenge(response.Header())
		unauthorized.ServeHTTP(response, request)
		return
	}

	logger.Warn("unable to produce a login URL", zap.Error(err))
	outcomes.With(OutcomeLabel, OutcomeForbidden).Add(1)
	forbidden.ServeHTTP(response, request)
}

// RequestURL reconstructs the absolute URL the client used to reach the server
func RequestURL(request *http.Request) string {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}

	if proto := request.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + request.Host + request.URL.RequestURI()
}
