// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"errors"
	"net/http"

	"github.com/jtacoma/uritemplates"
)

const (
	// ReturnToVariable is the login template variable that receives the URL to return to
	ReturnToVariable = "return_to"
)

// ErrNoLoginURL indicates that a provider has no way to send a user to a login page
var ErrNoLoginURL = errors.New("no login URL is configured")

// Provider is the strategy for authenticating console requests
type Provider interface {
	// Principal extracts the authenticated caller.  The boolean is false for anonymous requests.
	Principal(*http.Request) (Principal, bool)

	// IsAdmin decides whether the principal may use the console
	IsAdmin(Principal) bool

	// LoginURL produces the URL of a login page that returns to the given absolute URL afterward
	LoginURL(returnTo string) (string, error)
}

// Challenger is implemented by providers that authenticate through the HTTP challenge
// mechanism rather than a login page
type Challenger interface {
	Challenge(http.Header)
}

// LoginTemplate builds login URLs from an RFC 6570 template, e.g. https://login.example.com/{?return_to}
type LoginTemplate struct {
	template *uritemplates.UriTemplate
}

// NewLoginTemplate parses a login URL template.  An empty template yields a nil LoginTemplate,
// which reports ErrNoLoginURL.
func NewLoginTemplate(raw string) (*LoginTemplate, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	t, err := uritemplates.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &LoginTemplate{template: t}, nil
}

// Expand produces the login URL for the given return URL
func (lt *LoginTemplate) Expand(returnTo string) (string, error) {
	if lt == nil {
		return "", ErrNoLoginURL
	}

	return lt.template.Expand(map[string]interface{}{
		ReturnToVariable: returnTo,
	})
}

// None is a Provider that never authenticates anybody.  It is only useful when authorization
// is not enforced.
type None struct{}

func (None) Principal(*http.Request) (Principal, bool) { return Principal{}, false }

func (None) IsAdmin(Principal) bool { return false }

func (None) LoginURL(string) (string, error) { return "", ErrNoLoginURL }
