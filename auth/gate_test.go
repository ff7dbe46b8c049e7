// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateFixture is a decorated handler that records whether, and as whom, it was reached
type gateFixture struct {
	called    bool
	principal Principal
	outcomes  *outcomeCounter
	handler   http.Handler
}

func newGateFixture(g Gate) *gateFixture {
	f := &gateFixture{outcomes: newOutcomeCounter()}
	g.Outcomes = f.outcomes
	f.handler = g.Decorate(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		f.called = true
		f.principal, _ = FromContext(request.Context())
		response.WriteHeader(http.StatusOK)
	}))

	return f
}

func (f *gateFixture) serve(request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	f.handler.ServeHTTP(response, request)
	return response
}

func headerProvider(t *testing.T, loginURL string) *Header {
	login, err := NewLoginTemplate(loginURL)
	require.NoError(t, err)
	return &Header{AdminGroups: []string{"ops"}, Login: login}
}

func asUser(request *http.Request, name string, groups string) *http.Request {
	request.Header.Set(DefaultUserHeader, name)
	request.Header.Set(DefaultGroupsHeader, groups)
	return request
}

func testGateNotEnforced(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newGateFixture(Gate{Provider: None{}, Redirect: true})
	)

	response := f.serve(httptest.NewRequest("GET", "/_ah/pipeline/list", nil))
	assert.Equal(http.StatusOK, response.Code)
	assert.True(f.called)
	assert.Empty(f.principal.Name)
}

func testGateAdmin(t *testing.T, redirect bool) {
	var (
		assert = assert.New(t)
		f      = newGateFixture(Gate{Provider: headerProvider(t, "/login{?return_to}"), Enforce: true, Redirect: redirect})
	)

	response := f.serve(asUser(httptest.NewRequest("GET", "/_ah/pipeline/list", nil), "jane", "dev,ops"))
	assert.Equal(http.StatusOK, response.Code)
	assert.True(f.called)
	assert.Equal("jane", f.principal.Name)
	assert.Empty(f.outcomes.totals)
}

func testGateNotAdmin(t *testing.T, redirect bool) {
	var (
		assert = assert.New(t)
		f      = newGateFixture(Gate{Provider: headerProvider(t, "/login{?return_to}"), Enforce: true, Redirect: redirect})
	)

	response := f.serve(asUser(httptest.NewRequest("GET", "/_ah/pipeline/list", nil), "joe", "dev"))
	assert.Equal(http.StatusForbidden, response.Code)
	assert.Equal("Forbidden", response.Body.String())
	assert.Empty(response.Header().Get("Location"))
	assert.False(f.called)
	assert.Equal(1.0, f.outcomes.total("outcome=forbidden"))
}

func testGateAnonymousRPC(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newGateFixture(Gate{Provider: headerProvider(t, "/login{?return_to}"), Enforce: true})
	)

	response := f.serve(httptest.NewRequest("GET", "/_ah/pipeline/rpc/list", nil))
	assert.Equal(http.StatusForbidden, response.Code)
	assert.Equal("Forbidden", response.Body.String())
	assert.Equal("text/plain; charset=utf-8", response.Header().Get("Content-Type"))
	assert.Empty(response.Header().Get("Location"))
	assert.False(f.called)
	assert.Equal(1.0, f.outcomes.total("outcome=forbidden"))
}

func testGateAnonymousPage(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		f       = newGateFixture(Gate{Provider: headerProvider(t, "https://login.example.com/{?return_to}"), Enforce: true, Redirect: true})
	)

	response := f.serve(httptest.NewRequest("GET", "/_ah/pipeline/status?root=abc", nil))
	assert.Equal(http.StatusFound, response.Code)
	assert.False(f.called)

	location, err := url.Parse(response.Header().Get("Location"))
	require.NoError(err)
	assert.Equal("login.example.com", location.Host)
	assert.Equal("http://example.com/_ah/pipeline/status?root=abc", location.Query().Get("return_to"))
	assert.Equal(1.0, f.outcomes.total("outcome=redirected"))
}

func testGateAnonymousPageChallenge(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newGateFixture(Gate{Provider: &Basic{Admins: []string{"jane"}}, Enforce: true, Redirect: true})
	)

	response := f.serve(httptest.NewRequest("GET", "/_ah/pipeline/list", nil))
	assert.Equal(http.StatusUnauthorized, response.Code)
	assert.NotEmpty(response.Header().Get("WWW-Authenticate"))
	assert.False(f.called)
	assert.Equal(1.0, f.outcomes.total("outcome=challenged"))
}

func testGateAnonymousPageNoLogin(t *testing.T) {
	for _, provider := range []Provider{nil, None{}, headerProvider(t, "")} {
		var (
			assert = assert.New(t)
			f      = newGateFixture(Gate{Provider: provider, Enforce: true, Redirect: true})
		)

		response := f.serve(httptest.NewRequest("GET", "/_ah/pipeline/list", nil))
		assert.Equal(http.StatusForbidden, response.Code)
		assert.Equal("Forbidden", response.Body.String())
		assert.False(f.called)
	}
}

func TestGate(t *testing.T) {
	t.Run("NotEnforced", testGateNotEnforced)
	t.Run("AdminPage", func(t *testing.T) { testGateAdmin(t, true) })
	t.Run("AdminRPC", func(t *testing.T) { testGateAdmin(t, false) })
	t.Run("NotAdminPage", func(t *testing.T) { testGateNotAdmin(t, true) })
	t.Run("NotAdminRPC", func(t *testing.T) { testGateNotAdmin(t, false) })
	t.Run("AnonymousRPC", testGateAnonymousRPC)
	t.Run("AnonymousPage", testGateAnonymousPage)
	t.Run("AnonymousPageChallenge", testGateAnonymousPageChallenge)
	t.Run("AnonymousPageNoLogin", testGateAnonymousPageNoLogin)
}

func TestRequestURL(t *testing.T) {
	assert := assert.New(t)

	request := httptest.NewRequest("GET", "/_ah/pipeline/list?class_path=main.Root", nil)
	assert.Equal("http://example.com/_ah/pipeline/list?class_path=main.Root", RequestURL(request))

	request.TLS = new(tls.ConnectionState)
	assert.Equal("https://example.com/_ah/pipeline/list?class_path=main.Root", RequestURL(request))

	request.TLS = nil
	request.Header.Set("X-Forwarded-Proto", "https")
	request.Host = "console.example.com:8443"
	assert.Equal("https://console.example.com:8443/_ah/pipeline/list?class_path=main.Root", RequestURL(request))

	request.Header.Set("X-Forwarded-Proto", "gopher")
	assert.Equal("http://console.example.com:8443/_ah/pipeline/list?class_path=main.Root", RequestURL(request))
}
